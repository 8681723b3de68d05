package helper

import (
	"context"
	"sync"

	"github.com/poi2/unit-of-work-go/uow"
)

// FakeStarter is a TransactionStarter implementation backed by in-memory state.
// Statements executed inside a transaction become part of Visible only when
// that transaction commits; a rollback discards them. This makes atomicity
// observable without a real database.
type FakeStarter struct {
	BeginErr        error // returned by Begin when set
	NextCommitErr   error // set as CommitErr on transactions handed out
	NextRollbackErr error // set as RollbackErr on transactions handed out
	NextExecErr     error // set as ExecErr on transactions handed out

	Started []*FakeTransaction // every transaction handed out, in order
	Visible []string           // statements from committed transactions, in order
	mu      sync.Mutex
}

// NewFakeStarter creates a FakeStarter with no transactions started.
func NewFakeStarter() *FakeStarter {
	return &FakeStarter{}
}

// Begin implements the TransactionStarter interface.
func (s *FakeStarter) Begin(_ context.Context) (uow.Transaction, error) {
	if s.BeginErr != nil {
		return nil, s.BeginErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &FakeTransaction{
		starter:     s,
		CommitErr:   s.NextCommitErr,
		RollbackErr: s.NextRollbackErr,
		ExecErr:     s.NextExecErr,
	}
	s.Started = append(s.Started, tx)

	return tx, nil
}

// LastTransaction returns the most recently started transaction, or nil.
func (s *FakeStarter) LastTransaction() *FakeTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.Started) == 0 {
		return nil
	}

	return s.Started[len(s.Started)-1]
}

func (s *FakeStarter) promote(statements []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Visible = append(s.Visible, statements...)
}

// FakeTransaction is a Transaction implementation that records executed
// statements and resolves exactly once. Rollback after Commit (and vice
// versa) is a no-op, matching the contract real adapters provide.
type FakeTransaction struct {
	CommitErr   error // returned by Commit when set
	RollbackErr error // returned by Rollback when set
	ExecErr     error // returned by Exec when set

	Statements []string // statements executed inside this transaction, in order
	Committed  bool
	RolledBack bool

	starter  *FakeStarter
	resolved bool
	mu       sync.Mutex
}

// Exec implements the DBHandle interface, recording the statement.
func (t *FakeTransaction) Exec(_ context.Context, query string) (uow.Result, error) {
	if t.ExecErr != nil {
		return nil, t.ExecErr
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.Statements = append(t.Statements, query)

	return fakeResult{rowsAffected: 1}, nil
}

// Query implements the DBHandle interface, returning an empty result set.
func (t *FakeTransaction) Query(_ context.Context, _ string) (uow.Rows, error) {
	return emptyRows{}, nil
}

// Commit implements the Transaction interface. The recorded statements
// become visible on the starter. Committing a resolved transaction is a no-op.
func (t *FakeTransaction) Commit(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.resolved {
		return nil
	}
	if t.CommitErr != nil {
		return t.CommitErr
	}

	t.resolved = true
	t.Committed = true
	if t.starter != nil {
		t.starter.promote(t.Statements)
	}

	return nil
}

// Rollback implements the Transaction interface, discarding the recorded
// statements. Rolling back a resolved transaction is a no-op returning nil,
// so a deferred rollback is safe on every exit path.
func (t *FakeTransaction) Rollback(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.resolved {
		return nil
	}
	if t.RollbackErr != nil {
		return t.RollbackErr
	}

	t.resolved = true
	t.RolledBack = true

	return nil
}

type fakeResult struct {
	rowsAffected int64
}

func (r fakeResult) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}

type emptyRows struct{}

func (emptyRows) Next() bool          { return false }
func (emptyRows) Scan(_ ...any) error { return nil }
func (emptyRows) Close() error        { return nil }

// FakeDBHandle is a standalone DBHandle for store tests that do not need a
// full transaction lifecycle. It records executed statements and answers
// with a configurable rows-affected count.
type FakeDBHandle struct {
	ExecErr      error
	RowsAffected int64
	Statements   []string
}

// NewFakeDBHandle creates a FakeDBHandle reporting one affected row per statement.
func NewFakeDBHandle() *FakeDBHandle {
	return &FakeDBHandle{RowsAffected: 1}
}

// Exec implements the DBHandle interface.
func (h *FakeDBHandle) Exec(_ context.Context, query string) (uow.Result, error) {
	if h.ExecErr != nil {
		return nil, h.ExecErr
	}

	h.Statements = append(h.Statements, query)

	return fakeResult{rowsAffected: h.RowsAffected}, nil
}

// Query implements the DBHandle interface.
func (h *FakeDBHandle) Query(_ context.Context, _ string) (uow.Rows, error) {
	return emptyRows{}, nil
}
