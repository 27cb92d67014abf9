// Package transactionrepo manages repository layer of transactions.
//
// All mutating operations are composed: the transaction row change and the
// owning account's balance adjustment commit as a single database
// transaction. The row lock taken by the balance UPDATE serializes
// concurrent mutations targeting the same account, while mutations on
// different accounts proceed independently.
package transactionrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/vm-it-consulting/moneyapp/internal/accountrepo"
	"github.com/vm-it-consulting/moneyapp/internal/domain"
	"github.com/vm-it-consulting/moneyapp/pkg/dbpkg"
	"github.com/vm-it-consulting/moneyapp/pkg/errorspkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewRepoPGS returns transaction RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

func mapConstraintErr(err error) error {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return errorspkg.ErrInternal
	}

	switch pqErr.Constraint {
	case "transactions_account_id_fkey":
		return domain.ErrAccountNotFound
	case "transactions_type_check":
		return domain.ErrInvalidTransactionType
	case "transactions_amount_check":
		return domain.ErrNegativeAmount
	}

	return errorspkg.ErrInternal
}

const createQuery = `
INSERT INTO
    transactions (name, amount, type, account_id)
VALUES
    ($1, $2, $3, $4)
RETURNING id, name, amount, type, account_id, created_at
`

// Create inserts the transaction, applies its effect to the owning
// account's balance and increments the account's transaction count, all
// within one database transaction. Name must carry the already formatted
// name.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	effect, err := domain.Effect(arg.Type, arg.Amount)
	if err != nil {
		return domain.Transaction{}, err
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	row := tx.QueryRowContext(ctx, createQuery, arg.Name, arg.Amount, arg.Type, arg.AccountID)

	var t domain.Transaction

	err = row.Scan(
		&t.ID,
		&t.Name,
		&t.Amount,
		&t.Type,
		&t.AccountID,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, mapConstraintErr(err)
	}

	accountRepo := accountrepo.NewTxRepoPGS(tx)

	if _, err := accountRepo.AddAmount(ctx, effect.String(), arg.AccountID); err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, err
	}

	if err := accountRepo.AddTransactionCount(ctx, 1, arg.AccountID); err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	return t, nil
}

const lockQuery = `
SELECT
	id, name, amount, type, account_id, created_at
FROM transactions
WHERE id = $1
FOR UPDATE
`

const updateQuery = `
UPDATE transactions
SET amount = $1, type = $2
WHERE id = $3
RETURNING id, name, amount, type, account_id, created_at
`

// Update amends the transaction's amount and type and applies the effect
// delta effect(new) - effect(old) to the owning account's balance, all
// within one database transaction. The transaction count is unaffected.
func (r *RepoPGS) Update(ctx context.Context, arg domain.UpdateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	newEffect, err := domain.Effect(arg.Type, arg.Amount)
	if err != nil {
		return domain.Transaction{}, err
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	var old domain.Transaction

	row := tx.QueryRowContext(ctx, lockQuery, arg.ID)
	err = row.Scan(
		&old.ID,
		&old.Name,
		&old.Amount,
		&old.Type,
		&old.AccountID,
		&old.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return domain.Transaction{}, domain.ErrTransactionNotFound
		}

		return domain.Transaction{}, errorspkg.ErrInternal
	}

	oldEffect, err := domain.Effect(old.Type, old.Amount)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, err
	}

	var t domain.Transaction

	row = tx.QueryRowContext(ctx, updateQuery, arg.Amount, arg.Type, arg.ID)
	err = row.Scan(
		&t.ID,
		&t.Name,
		&t.Amount,
		&t.Type,
		&t.AccountID,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, mapConstraintErr(err)
	}

	accountRepo := accountrepo.NewTxRepoPGS(tx)

	delta := newEffect.Sub(oldEffect)
	if _, err := accountRepo.AddAmount(ctx, delta.String(), old.AccountID); err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	return t, nil
}

const deleteQuery = `
DELETE FROM transactions
WHERE id = $1
RETURNING id, name, amount, type, account_id, created_at
`

// Delete removes the transaction, reverses its effect on the owning
// account's balance and decrements the account's transaction count, all
// within one database transaction.
func (r *RepoPGS) Delete(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	var t domain.Transaction

	row := tx.QueryRowContext(ctx, deleteQuery, id)
	err = row.Scan(
		&t.ID,
		&t.Name,
		&t.Amount,
		&t.Type,
		&t.AccountID,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return domain.Transaction{}, domain.ErrTransactionNotFound
		}

		return domain.Transaction{}, errorspkg.ErrInternal
	}

	effect, err := domain.Effect(t.Type, t.Amount)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, err
	}

	accountRepo := accountrepo.NewTxRepoPGS(tx)

	if _, err := accountRepo.AddAmount(ctx, effect.Neg().String(), t.AccountID); err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, err
	}

	if err := accountRepo.AddTransactionCount(ctx, -1, t.AccountID); err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT
	id, name, amount, type, account_id, created_at
FROM transactions
WHERE id = $1
`

// Get returns the transaction with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Amount,
		&t.Type,
		&t.AccountID,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listByAccountQuery = `
SELECT
	id, name, amount, type, account_id, created_at
FROM transactions
WHERE account_id = $1
ORDER BY created_at, id
`

// ListByAccount returns the account's transactions in creation order,
// ties broken by id.
func (r *RepoPGS) ListByAccount(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	return r.scanList(ctx, listByAccountQuery, accountID)
}

const listWithinBudgetQuery = `
SELECT
	id, name, amount, type, account_id, created_at
FROM (
	SELECT
		id, name, amount, type, account_id, created_at,
		SUM(amount) OVER (ORDER BY created_at, id) AS running_total
	FROM transactions
	WHERE account_id = $1
) t
WHERE running_total <= $2
ORDER BY created_at, id
`

// ListWithinBudget returns the transactions whose running total of amount
// magnitudes, accumulated in creation order (ties broken by id), stays
// within the given budget. The running total uses the stored magnitude,
// not the signed effect. An account with no fitting transactions yields an
// empty slice.
func (r *RepoPGS) ListWithinBudget(ctx context.Context, accountID int64, budget string) ([]domain.Transaction, error) {
	return r.scanList(ctx, listWithinBudgetQuery, accountID, budget)
}

func (r *RepoPGS) scanList(ctx context.Context, query string, args ...interface{}) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.Name, &t.Amount, &t.Type, &t.AccountID, &t.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
