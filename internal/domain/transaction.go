package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrTransactionNotFound indicates that the transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrInvalidTransactionType indicates a transaction type outside {0,1}.
	ErrInvalidTransactionType = errors.New("transaction type must be 0 (out) or 1 (in)")
	// ErrInvalidAmount indicates an amount that is not a valid number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates a negative amount magnitude.
	ErrNegativeAmount = errors.New("negative amount")
)

// TransactionType tells whether money leaves or enters the account.
type TransactionType int16

const (
	// TypeOut is money leaving the account.
	TypeOut TransactionType = 0
	// TypeIn is money entering the account.
	TypeIn TransactionType = 1
)

// Valid reports whether t is one of the two known types.
func (t TransactionType) Valid() bool {
	return t == TypeOut || t == TypeIn
}

// Transaction holds a single money movement on an account.
//
// Amount is always a non-negative magnitude; the sign of its balance effect
// is implied by Type. Name is the formatted name, not the raw one.
type Transaction struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Amount    string          `json:"amount"`
	Type      TransactionType `json:"type"`
	AccountID int64           `json:"account_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateTransactionParams is the input data to create a transaction.
// Name carries the already formatted name.
type CreateTransactionParams struct {
	Name      string          `json:"name"`
	Amount    string          `json:"amount"`
	Type      TransactionType `json:"type"`
	AccountID int64           `json:"account_id"`
}

// UpdateTransactionParams is the input data to amend a transaction's
// amount and type.
type UpdateTransactionParams struct {
	ID     int64           `json:"id"`
	Amount string          `json:"amount"`
	Type   TransactionType `json:"type"`
}

// Effect returns the signed contribution of a transaction to its account
// balance: +amount for TypeIn, -amount for TypeOut.
func Effect(txType TransactionType, amount string) (decimal.Decimal, error) {
	if !txType.Valid() {
		return decimal.Zero, ErrInvalidTransactionType
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}

	if d.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}

	if txType == TypeOut {
		return d.Neg(), nil
	}

	return d, nil
}

// FormatTransactionName derives the canonical display name of a
// transaction: "T{type}-{UPPER(raw)}".
func FormatTransactionName(txType TransactionType, raw string) (string, error) {
	if !txType.Valid() {
		return "", ErrInvalidTransactionType
	}

	return "T" + strconv.Itoa(int(txType)) + "-" + strings.ToUpper(raw), nil
}
