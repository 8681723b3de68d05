package adapters

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/poi2/unit-of-work-go/uow"
)

// SQLXStarter implements uow.TransactionStarter for sqlx.DB.
type SQLXStarter struct {
	db *sqlx.DB
}

// NewSQLXStarter creates a new sqlx starter with the given database handle.
func NewSQLXStarter(db *sqlx.DB) *SQLXStarter {
	return &SQLXStarter{db: db}
}

// Begin opens a new transaction with default options and returns the wrapped handle.
func (s *SQLXStarter) Begin(ctx context.Context) (uow.Transaction, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &sqlxTx{tx: tx}, nil
}

// sqlxTx wraps sqlx.Tx to implement the uow.Transaction interface.
type sqlxTx struct {
	tx *sqlx.Tx
}

// Query executes a query inside the transaction.
func (t *sqlxTx) Query(ctx context.Context, query string) (uow.Rows, error) {
	rows, err := t.tx.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdRows{rows: rows}, nil
}

// Exec executes a statement inside the transaction and returns the wrapped result.
func (t *sqlxTx) Exec(ctx context.Context, query string) (uow.Result, error) {
	result, err := t.tx.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdResult{result: result}, nil
}

// Commit commits the transaction.
func (t *sqlxTx) Commit(_ context.Context) error {
	return t.tx.Commit()
}

// Rollback rolls the transaction back; a no-op if it is already resolved.
func (t *sqlxTx) Rollback(_ context.Context) error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}

	return nil
}
