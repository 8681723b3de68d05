package adapters

import (
	"context"
	"database/sql"
	"errors"

	"github.com/poi2/unit-of-work-go/uow"
)

// SQLStarter implements uow.TransactionStarter for the standard library sql.DB.
type SQLStarter struct {
	db *sql.DB
}

// NewSQLStarter creates a new standard library starter with the given database handle.
func NewSQLStarter(db *sql.DB) *SQLStarter {
	return &SQLStarter{db: db}
}

// Begin opens a new transaction with default options and returns the wrapped handle.
func (s *SQLStarter) Begin(ctx context.Context) (uow.Transaction, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &stdTx{tx: tx}, nil
}

// stdTx wraps sql.Tx to implement the uow.Transaction interface.
type stdTx struct {
	tx *sql.Tx
}

// Query executes a query inside the transaction.
func (t *stdTx) Query(ctx context.Context, query string) (uow.Rows, error) {
	rows, err := t.tx.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdRows{rows: rows}, nil
}

// Exec executes a statement inside the transaction and returns the wrapped result.
func (t *stdTx) Exec(ctx context.Context, query string) (uow.Result, error) {
	result, err := t.tx.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdResult{result: result}, nil
}

// Commit commits the transaction.
func (t *stdTx) Commit(_ context.Context) error {
	return t.tx.Commit()
}

// Rollback rolls the transaction back; a no-op if it is already resolved.
func (t *stdTx) Rollback(_ context.Context) error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}

	return nil
}

// stdRows wraps standard library sql.Rows to implement the uow.Rows interface.
type stdRows struct {
	rows *sql.Rows
}

// Next advances to the next row.
func (r *stdRows) Next() bool {
	return r.rows.Next()
}

// Scan copies row values into provided destinations.
func (r *stdRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

// Close closes the rows iterator.
func (r *stdRows) Close() error {
	return r.rows.Close()
}

// stdResult wraps standard library sql.Result to implement the uow.Result interface.
type stdResult struct {
	result sql.Result
}

// RowsAffected returns the number of rows affected by the command.
func (r *stdResult) RowsAffected() (int64, error) {
	return r.result.RowsAffected()
}
