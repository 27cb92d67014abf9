package userrepo

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
	insertPattern = regexp.QuoteMeta("INSERT INTO\n    users")
	getPattern    = regexp.QuoteMeta("FROM users\nWHERE id = $1")
	listPattern   = regexp.QuoteMeta("FROM users\nORDER BY id")
)

func userRows(u domain.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "accounts", "created_at"}).
		AddRow(u.ID, u.Name, u.Email, u.Accounts, u.CreatedAt)
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

func TestCreate(t *testing.T) {
	created := domain.User{
		ID:        1,
		Name:      "Valentin Montagne",
		Email:     "contact@vm-it-consulting.com",
		CreatedAt: time.Now(),
	}

	repo, mock := newMock(t)

	mock.ExpectQuery(insertPattern).
		WithArgs(created.Name, created.Email).
		WillReturnRows(userRows(created))

	got, err := repo.Create(context.Background(), created.Name, created.Email)

	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, created.Email, got.Email)
	require.Zero(t, got.Accounts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(insertPattern).
		WithArgs("Valentin Montagne", "contact@vm-it-consulting.com").
		WillReturnError(&pq.Error{Constraint: "users_email_key"})

	_, err := repo.Create(context.Background(), "Valentin Montagne", "contact@vm-it-consulting.com")

	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissingUser(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(getPattern).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 404)

	require.ErrorIs(t, err, domain.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "accounts", "created_at"}).
		AddRow(int64(1), "Valentin Montagne", "contact@vm-it-consulting.com", int32(1), now).
		AddRow(int64(2), "Amelie Dal", "amelie.dal@gmail.com", int32(0), now)

	repo, mock := newMock(t)

	mock.ExpectQuery(listPattern).WillReturnRows(rows)

	got, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, int32(1), got[0].Accounts)
	require.NoError(t, mock.ExpectationsWereMet())
}
