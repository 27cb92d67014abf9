// Package statementservice manages export and read-back of account
// statements as CSV artifacts.
package statementservice

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/vm-it-consulting/moneyapp/internal/domain"
)

// AccountGetter provides the account lookup needed to reject exports for
// unknown accounts.
//
//go:generate mockgen -source service.go -destination service_mock.go -package statementservice
type AccountGetter interface {
	Get(ctx context.Context, id int64) (domain.Account, error)
}

// TransactionLister provides the ordered transaction read used to build
// the artifact.
type TransactionLister interface {
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error)
}

// Store provides durable storage of the artifact.
type Store interface {
	Write(ctx context.Context, content string) error
	Read(ctx context.Context) (string, error)
}

// Service facilitates statement export/read logic.
type Service struct {
	accounts     AccountGetter
	transactions TransactionLister
	store        Store
}

// New returns statement service struct.
func New(ag AccountGetter, tl TransactionLister, st Store) *Service {
	return &Service{
		accounts:     ag,
		transactions: tl,
		store:        st,
	}
}

// Render builds the CSV content for the given transactions: the fixed
// header followed by one row per transaction in the given order. Fields
// are comma-joined without quoting, so embedded commas in names are not
// escaped. Known limitation kept for compatibility with existing
// consumers of the artifact.
func Render(transactions []domain.Transaction) string {
	var sb strings.Builder

	sb.WriteString(domain.StatementHeader)
	sb.WriteByte('\n')

	for _, t := range transactions {
		fields := []string{
			strconv.FormatInt(t.ID, 10),
			t.Name,
			t.Amount,
			strconv.Itoa(int(t.Type)),
			strconv.FormatInt(t.AccountID, 10),
			t.CreatedAt.Format(time.RFC3339Nano),
		}

		sb.WriteString(strings.Join(fields, ","))
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Export writes the account's transaction history to the shared artifact,
// replacing whatever export was there before. The write is all-or-nothing.
func (s *Service) Export(ctx context.Context, accountID int64) error {
	if _, err := s.accounts.Get(ctx, accountID); err != nil {
		return err
	}

	transactions, err := s.transactions.ListByAccount(ctx, accountID)
	if err != nil {
		return err
	}

	return s.store.Write(ctx, Render(transactions))
}

// Read returns the artifact content verbatim as a CSV payload.
func (s *Service) Read(ctx context.Context) (string, error) {
	content, err := s.store.Read(ctx)
	if err != nil {
		return "", err
	}

	return content, nil
}
