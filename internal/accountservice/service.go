// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/vm-it-consulting/moneyapp/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create creates and returns an account with the given opening amount for
// the given user.
func (s *Service) Create(ctx context.Context, name, amount string, userID int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if _, err := decimal.NewFromString(amount); err != nil {
		l.Info().Err(err).Send()
		return domain.Account{}, domain.ErrInvalidAmount
	}

	account, err := s.repo.Create(ctx, domain.CreateAccountParams{
		Name:   name,
		Amount: amount,
		UserID: userID,
	})
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// ListByUser returns the accounts owned by the given user.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]domain.Account, error) {
	accounts, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}
