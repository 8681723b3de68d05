package uow

import (
	"errors"
	"fmt"
)

var (
	// ErrNilDatabaseConnection is returned when a nil database connection is supplied to a provider factory.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrNilStores is returned when the persistence stores are incomplete or nil.
	ErrNilStores = errors.New("persistence stores must not be nil")

	// ErrTransactionAlreadyStarted is returned when Begin is called on a session with an open transaction.
	ErrTransactionAlreadyStarted = errors.New("transaction is already started")

	// ErrTransactionNotStarted is returned when Commit or Rollback is called on a session without an open transaction.
	ErrTransactionNotStarted = errors.New("transaction is not started")

	// ErrBeginTransactionFailed is returned when opening a database transaction fails.
	ErrBeginTransactionFailed = errors.New("beginning transaction failed")

	// ErrTransactionFailed is returned when replaying staged commands fails and the transaction was rolled back.
	ErrTransactionFailed = errors.New("transaction failed, all staged commands were rolled back")

	// ErrCommitTransactionFailed is returned when the transaction manager fails at commit time itself.
	ErrCommitTransactionFailed = errors.New("committing transaction failed")

	// ErrRollbackTransactionFailed is returned when rolling back fails; the transaction end state is
	// undefined and callers must treat this as fatal.
	ErrRollbackTransactionFailed = errors.New("rolling back transaction failed, transaction end state is undefined")

	// ErrUnknownAggregateKind is returned when replay encounters an aggregate kind it has no dispatch for.
	ErrUnknownAggregateKind = errors.New("unknown aggregate kind")
)

// CommandError describes the first staged command that failed during commit replay.
// It carries enough context to identify the failing command: the aggregate variant,
// the operation, and the position in the staged batch.
type CommandError struct {
	Position  int
	Kind      AggregateKind
	Operation Operation
	Err       error
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("command %d (%s %s) failed: %s", e.Position, e.Operation, e.Kind, e.Err)
}

// Unwrap returns the underlying persistence error.
func (e *CommandError) Unwrap() error {
	return e.Err
}
