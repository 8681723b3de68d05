package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/poi2/unit-of-work-go/uow"
)

// PGXStarter implements uow.TransactionStarter for pgxpool.Pool.
type PGXStarter struct {
	pool *pgxpool.Pool
}

// NewPGXStarter creates a new PGX starter with the given pool.
func NewPGXStarter(pool *pgxpool.Pool) *PGXStarter {
	return &PGXStarter{pool: pool}
}

// Begin opens a new transaction on the pool and returns the wrapped handle.
func (s *PGXStarter) Begin(ctx context.Context) (uow.Transaction, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return &pgxTx{tx: tx}, nil
}

// pgxTx wraps pgx.Tx to implement the uow.Transaction interface.
type pgxTx struct {
	tx pgx.Tx
}

// Query executes a query inside the transaction.
func (t *pgxTx) Query(ctx context.Context, query string) (uow.Rows, error) {
	rows, err := t.tx.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return &pgxRows{rows: rows}, nil
}

// Exec executes a statement inside the transaction and returns the wrapped result.
func (t *pgxTx) Exec(ctx context.Context, query string) (uow.Result, error) {
	tag, err := t.tx.Exec(ctx, query)
	if err != nil {
		return nil, err
	}

	return &pgxResult{tag: tag}, nil
}

// Commit commits the transaction.
func (t *pgxTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls the transaction back; a no-op if it is already resolved.
func (t *pgxTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}

	return nil
}

// pgxRows wraps pgx.Rows to implement the uow.Rows interface.
type pgxRows struct {
	rows pgx.Rows
}

// Next advances to the next row.
func (r *pgxRows) Next() bool {
	return r.rows.Next()
}

// Scan copies row values into provided destinations.
func (r *pgxRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

// Close closes the rows iterator.
func (r *pgxRows) Close() error {
	r.rows.Close()
	return nil
}

// pgxResult wraps pgconn.CommandTag to implement the uow.Result interface.
type pgxResult struct {
	tag pgconn.CommandTag
}

// RowsAffected returns the number of rows affected by the command.
func (r *pgxResult) RowsAffected() (int64, error) {
	return r.tag.RowsAffected(), nil
}
