// Package transactionservice manages business logic layer of transactions.
//
// It validates every mutation before it reaches the repository, so an
// invalid type or amount is rejected with nothing partially applied, and
// derives the stored transaction name on insert.
package transactionservice

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/vm-it-consulting/moneyapp/internal/domain"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error)
	Update(ctx context.Context, arg domain.UpdateTransactionParams) (domain.Transaction, error)
	Delete(ctx context.Context, id int64) (domain.Transaction, error)
	Get(ctx context.Context, id int64) (domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error)
	ListWithinBudget(ctx context.Context, accountID int64, budget string) ([]domain.Transaction, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo Repo
}

// New returns transaction service struct to manage transaction bussines logic.
func New(tr Repo) *Service {
	return &Service{repo: tr}
}

func validate(ctx context.Context, txType domain.TransactionType, amount string) error {
	l := zerolog.Ctx(ctx)

	if !txType.Valid() {
		return domain.ErrInvalidTransactionType
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.ErrInvalidAmount
	}

	if d.IsNegative() {
		return domain.ErrNegativeAmount
	}

	return nil
}

// Create validates the input, derives the stored name from the raw one and
// inserts the transaction together with its balance effect.
func (s *Service) Create(ctx context.Context, rawName, amount string, txType domain.TransactionType, accountID int64) (domain.Transaction, error) {
	if err := validate(ctx, txType, amount); err != nil {
		return domain.Transaction{}, err
	}

	name, err := domain.FormatTransactionName(txType, rawName)
	if err != nil {
		return domain.Transaction{}, err
	}

	transaction, err := s.repo.Create(ctx, domain.CreateTransactionParams{
		Name:      name,
		Amount:    amount,
		Type:      txType,
		AccountID: accountID,
	})
	if err != nil {
		return transaction, err
	}

	return transaction, nil
}

// Update validates the input and amends the transaction's amount and type
// together with the balance delta.
func (s *Service) Update(ctx context.Context, id int64, amount string, txType domain.TransactionType) (domain.Transaction, error) {
	if err := validate(ctx, txType, amount); err != nil {
		return domain.Transaction{}, err
	}

	transaction, err := s.repo.Update(ctx, domain.UpdateTransactionParams{
		ID:     id,
		Amount: amount,
		Type:   txType,
	})
	if err != nil {
		return transaction, err
	}

	return transaction, nil
}

// Delete removes the transaction together with the reversal of its balance
// effect and returns the removed transaction.
func (s *Service) Delete(ctx context.Context, id int64) (domain.Transaction, error) {
	transaction, err := s.repo.Delete(ctx, id)
	if err != nil {
		return transaction, err
	}

	return transaction, nil
}

// Get returns the transaction with the given id.
func (s *Service) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	transaction, err := s.repo.Get(ctx, id)
	if err != nil {
		return transaction, err
	}

	return transaction, nil
}

// ListByAccount returns the account's transactions in creation order.
func (s *Service) ListByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	transactions, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// ListWithinBudget returns the ordered prefix of the account's transactions
// whose running total of amount magnitudes stays within the given budget.
func (s *Service) ListWithinBudget(ctx context.Context, accountID int64, budget string) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	if _, err := decimal.NewFromString(budget); err != nil {
		l.Info().Err(err).Send()
		return nil, domain.ErrInvalidAmount
	}

	transactions, err := s.repo.ListWithinBudget(ctx, accountID, budget)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}
