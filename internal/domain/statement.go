package domain

import "errors"

var (
	// ErrStatementNotFound indicates that no exported statement artifact exists.
	ErrStatementNotFound = errors.New("statement not found")
	// ErrStatementRead indicates that the statement artifact could not be read.
	ErrStatementRead = errors.New("statement read error")
)

// StatementFileName is the fixed name of the CSV artifact. Exports for any
// account share this single artifact; a new export overwrites the previous
// one. Callers must treat export followed by read as a request/response
// pair.
const StatementFileName = "transactions.csv"

// StatementHeader is the first line of every exported artifact.
const StatementHeader = "ID,NAME,AMOUNT,TYPE,ACCOUNT_ID,CREATION_TS"
