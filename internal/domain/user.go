// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailAlreadyExists indicates that a user with the given email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// User owns accounts. Accounts is a denormalized count of owned accounts
// maintained by the account repository; it is never decremented because
// accounts are not deleted.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Accounts  int32     `json:"accounts"`
	CreatedAt time.Time `json:"created_at"`
}
