// Package userservice manages business logic layer of users.
package userservice

import (
	"context"

	"github.com/vm-it-consulting/moneyapp/internal/domain"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, name, email string) (domain.User, error)
	Get(ctx context.Context, id int64) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New returns user service struct to manage user bussines logic.
func New(ur Repo) *Service {
	return &Service{repo: ur}
}

// Create creates and returns the user.
func (s *Service) Create(ctx context.Context, name, email string) (domain.User, error) {
	user, err := s.repo.Create(ctx, name, email)
	if err != nil {
		return user, err
	}

	return user, nil
}

// Get returns the user with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return user, err
	}

	return user, nil
}

// List returns all users.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return users, nil
}
