package domain

import (
	"errors"
	"time"
)

// ErrAccountNotFound indicates that the account is not found.
var ErrAccountNotFound = errors.New("account not found")

// Account holds the money of a single user.
//
// Amount is a derived value: outside an in-flight mutation it always equals
// the account's opening amount plus the signed sum of the effects of its
// transactions. Transactions is a denormalized count of the account's
// transactions.
type Account struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Amount       string    `json:"amount"`
	UserID       int64     `json:"user_id"`
	Transactions int32     `json:"transactions"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateAccountParams is the input data to create an account.
type CreateAccountParams struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	UserID int64  `json:"user_id"`
}
