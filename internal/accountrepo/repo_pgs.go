// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/vm-it-consulting/moneyapp/internal/domain"
	"github.com/vm-it-consulting/moneyapp/pkg/dbpkg"
	"github.com/vm-it-consulting/moneyapp/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns account RepoPGS bound to an existing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns account RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (name, amount, user_id)
VALUES
    ($1, $2, $3)
RETURNING id, name, amount, user_id, transactions, created_at
`

const incrementUserAccountsQuery = `
UPDATE users
SET accounts = accounts + 1
WHERE id = $1
`

// Create creates the account and increments the owning user's account
// count within a single database transaction, so the inserted row and the
// bumped counter land together or not at all.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var a domain.Account

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return a, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	row := tx.QueryRowContext(ctx, createQuery, arg.Name, arg.Amount, arg.UserID)

	err = row.Scan(
		&a.ID,
		&a.Name,
		&a.Amount,
		&a.UserID,
		&a.Transactions,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_user_id_fkey" {
				return domain.Account{}, domain.ErrUserNotFound
			}
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	if _, err := tx.ExecContext(ctx, incrementUserAccountsQuery, arg.UserID); err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

const addAmountQuery = `
UPDATE accounts
SET amount = amount + $1
WHERE id = $2
RETURNING id, name, amount, user_id, transactions, created_at
`

// AddAmount applies a signed delta to the account's balance and returns the
// changed account. The row lock taken by the UPDATE serializes concurrent
// balance adjustments targeting the same account.
func (r *RepoPGS) AddAmount(ctx context.Context, delta string, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addAmountQuery, delta, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Amount,
		&a.UserID,
		&a.Transactions,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const addTransactionCountQuery = `
UPDATE accounts
SET transactions = transactions + $1
WHERE id = $2
`

// AddTransactionCount adjusts the denormalized transaction counter.
func (r *RepoPGS) AddTransactionCount(ctx context.Context, delta int32, id int64) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, addTransactionCountQuery, delta, id)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

const getQuery = `
SELECT
	id, name, amount, user_id, transactions, created_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Amount,
		&a.UserID,
		&a.Transactions,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT
	id, name, amount, user_id, transactions, created_at
FROM accounts
ORDER BY id
`

// List returns all accounts ordered by id.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Account, error) {
	return r.scanList(ctx, listQuery)
}

const listByUserQuery = `
SELECT
	id, name, amount, user_id, transactions, created_at
FROM accounts
WHERE user_id = $1
ORDER BY id
`

// ListByUser returns the accounts owned by the given user.
func (r *RepoPGS) ListByUser(ctx context.Context, userID int64) ([]domain.Account, error) {
	return r.scanList(ctx, listByUserQuery, userID)
}

func (r *RepoPGS) scanList(ctx context.Context, query string, args ...interface{}) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Amount, &a.UserID, &a.Transactions, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
