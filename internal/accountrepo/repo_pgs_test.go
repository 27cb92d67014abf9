package accountrepo

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/vm-it-consulting/moneyapp/internal/domain"
)

var (
	insertPattern     = regexp.QuoteMeta("INSERT INTO\n    accounts")
	bumpUserPattern   = regexp.QuoteMeta("SET accounts = accounts + 1")
	addAmountPattern  = regexp.QuoteMeta("SET amount = amount + $1")
	getPattern        = regexp.QuoteMeta("FROM accounts\nWHERE id = $1")
	listByUserPattern = regexp.QuoteMeta("WHERE user_id = $1")
)

func accountRows(a domain.Account) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "amount", "user_id", "transactions", "created_at"}).
		AddRow(a.ID, a.Name, a.Amount, a.UserID, a.Transactions, a.CreatedAt)
}

func newMock(t *testing.T) (*RepoPGS, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() returned error: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return NewRepoPGS(db), mock
}

func TestCreateBumpsUserCounter(t *testing.T) {
	created := domain.Account{
		ID:        1,
		Name:      "checking",
		Amount:    "2000",
		UserID:    3,
		CreatedAt: time.Now(),
	}

	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(insertPattern).
		WithArgs("checking", "2000", int64(3)).
		WillReturnRows(accountRows(created))
	mock.ExpectExec(bumpUserPattern).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := repo.Create(context.Background(), domain.CreateAccountParams{
		Name:   "checking",
		Amount: "2000",
		UserID: 3,
	})

	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, created.Amount, got.Amount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUnknownUser(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(insertPattern).
		WithArgs("checking", "2000", int64(404)).
		WillReturnError(&pq.Error{Constraint: "accounts_user_id_fkey"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), domain.CreateAccountParams{
		Name:   "checking",
		Amount: "2000",
		UserID: 404,
	})

	require.ErrorIs(t, err, domain.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRollsBackWhenCounterFails(t *testing.T) {
	created := domain.Account{
		ID:        1,
		Name:      "checking",
		Amount:    "2000",
		UserID:    3,
		CreatedAt: time.Now(),
	}

	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(insertPattern).
		WithArgs("checking", "2000", int64(3)).
		WillReturnRows(accountRows(created))
	mock.ExpectExec(bumpUserPattern).
		WithArgs(int64(3)).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), domain.CreateAccountParams{
		Name:   "checking",
		Amount: "2000",
		UserID: 3,
	})

	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddAmount(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(addAmountPattern).
		WithArgs("-500", int64(7)).
		WillReturnRows(accountRows(domain.Account{ID: 7, Amount: "-500"}))

	got, err := repo.AddAmount(context.Background(), "-500", 7)

	require.NoError(t, err)
	require.Equal(t, "-500", got.Amount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddAmountMissingAccount(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(addAmountPattern).
		WithArgs("-500", int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.AddAmount(context.Background(), "-500", 404)

	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissingAccount(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(getPattern).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 404)

	require.ErrorIs(t, err, domain.ErrAccountNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser(t *testing.T) {
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "amount", "user_id", "transactions", "created_at"}).
		AddRow(int64(1), "checking", "2000", int64(3), int32(0), now).
		AddRow(int64(2), "savings", "100", int64(3), int32(0), now)

	repo, mock := newMock(t)

	mock.ExpectQuery(listByUserPattern).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "checking", got[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}
