package postgresengine

import (
	"context"
	"errors"

	"github.com/poi2/unit-of-work-go/uow"
)

// Session is the practical unit-of-work variant: an explicit transaction
// state machine. Begin moves the session from Idle to Active; Commit and
// Rollback move it back to Idle. Between Begin and Commit/Rollback the
// per-aggregate operations are issued immediately against the open
// transaction and return the persisted entity, which lets the caller
// inspect results and branch before deciding commit vs rollback.
//
// The presence of the transaction handle is the sole truth for "transaction
// in progress". A Session is single-owner, like the Coordinator.
type Session struct {
	db     uow.TransactionStarter
	stores uow.Stores
	tx     uow.Transaction
	instrumentation
}

var (
	_ uow.TransactionControl = (*Session)(nil)
	_ uow.UserRepository     = (*Session)(nil)
	_ uow.ShopRepository     = (*Session)(nil)
	_ uow.OrderRepository    = (*Session)(nil)
)

// Begin opens a new transaction and moves the session to Active.
// It fails with uow.ErrTransactionAlreadyStarted when one is already open.
func (s *Session) Begin(ctx context.Context) error {
	if s.tx != nil {
		return uow.ErrTransactionAlreadyStarted
	}

	ctx, span := s.startTraceSpan(ctx, spanNameBegin, map[string]string{spanAttrOperation: operationBegin})

	tx, beginErr := s.db.Begin(ctx)
	if beginErr != nil {
		s.logError(ctx, logMsgBeginTransactionFailed, beginErr)
		s.recordErrorMetrics(ctx, operationBegin, errorTypeOf(uow.ErrBeginTransactionFailed))
		s.finishSpanError(span, errorTypeOf(uow.ErrBeginTransactionFailed))

		return errors.Join(uow.ErrBeginTransactionFailed, beginErr)
	}

	s.tx = tx
	s.logOperation(ctx, logMsgTransactionStarted)
	s.finishSpanSuccess(span, 0)

	return nil
}

// Commit commits the open transaction and moves the session to Idle.
// It fails with uow.ErrTransactionNotStarted when the session is Idle.
// When the commit itself fails, rollback is still attempted so the
// transaction is resolved; a rollback failure is joined in as
// uow.ErrRollbackTransactionFailed.
func (s *Session) Commit(ctx context.Context) error {
	if s.tx == nil {
		return uow.ErrTransactionNotStarted
	}

	tx := s.tx
	s.tx = nil

	if commitErr := tx.Commit(ctx); commitErr != nil {
		s.logError(ctx, logMsgCommitTransactionFailed, commitErr)
		s.recordErrorMetrics(ctx, operationCommit, errorTypeOf(uow.ErrCommitTransactionFailed))

		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			s.logError(ctx, logMsgRollbackFailed, rollbackErr)
			return errors.Join(uow.ErrRollbackTransactionFailed, rollbackErr, uow.ErrCommitTransactionFailed, commitErr)
		}

		return errors.Join(uow.ErrCommitTransactionFailed, commitErr)
	}

	s.logOperation(ctx, logMsgTransactionCommitted)

	return nil
}

// Rollback rolls back the open transaction and moves the session to Idle.
// It fails with uow.ErrTransactionNotStarted when the session is Idle.
func (s *Session) Rollback(ctx context.Context) error {
	if s.tx == nil {
		return uow.ErrTransactionNotStarted
	}

	tx := s.tx
	s.tx = nil

	ctx, span := s.startTraceSpan(ctx, spanNameRollback, map[string]string{spanAttrOperation: operationRollback})
	s.recordRollbackMetrics(ctx, operationRollback)

	if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
		s.logError(ctx, logMsgRollbackFailed, rollbackErr)
		s.finishSpanError(span, errorTypeOf(uow.ErrRollbackTransactionFailed))

		return errors.Join(uow.ErrRollbackTransactionFailed, rollbackErr)
	}

	s.logOperation(ctx, logMsgTransactionRolledBack)
	s.finishSpanSuccess(span, 0)

	return nil
}

// InTransaction reports whether the session is Active.
func (s *Session) InTransaction() bool {
	return s.tx != nil
}

// CreateUser inserts the user through the open transaction and returns the persisted instance.
func (s *Session) CreateUser(ctx context.Context, user uow.User) (uow.User, error) {
	if s.tx == nil {
		return uow.User{}, uow.ErrTransactionNotStarted
	}

	return s.stores.Users.CreateUser(ctx, s.tx, user)
}

// UpdateUser updates the user through the open transaction and returns the persisted instance.
func (s *Session) UpdateUser(ctx context.Context, user uow.User) (uow.User, error) {
	if s.tx == nil {
		return uow.User{}, uow.ErrTransactionNotStarted
	}

	return s.stores.Users.UpdateUser(ctx, s.tx, user)
}

// DeleteUser deletes the user through the open transaction.
func (s *Session) DeleteUser(ctx context.Context, user uow.User) error {
	if s.tx == nil {
		return uow.ErrTransactionNotStarted
	}

	return s.stores.Users.DeleteUser(ctx, s.tx, user)
}

// CreateShop inserts the shop through the open transaction and returns the persisted instance.
func (s *Session) CreateShop(ctx context.Context, shop uow.Shop) (uow.Shop, error) {
	if s.tx == nil {
		return uow.Shop{}, uow.ErrTransactionNotStarted
	}

	return s.stores.Shops.CreateShop(ctx, s.tx, shop)
}

// UpdateShop updates the shop through the open transaction and returns the persisted instance.
func (s *Session) UpdateShop(ctx context.Context, shop uow.Shop) (uow.Shop, error) {
	if s.tx == nil {
		return uow.Shop{}, uow.ErrTransactionNotStarted
	}

	return s.stores.Shops.UpdateShop(ctx, s.tx, shop)
}

// DeleteShop deletes the shop through the open transaction.
func (s *Session) DeleteShop(ctx context.Context, shop uow.Shop) error {
	if s.tx == nil {
		return uow.ErrTransactionNotStarted
	}

	return s.stores.Shops.DeleteShop(ctx, s.tx, shop)
}

// CreateOrder inserts the order through the open transaction and returns the persisted instance.
func (s *Session) CreateOrder(ctx context.Context, order uow.Order) (uow.Order, error) {
	if s.tx == nil {
		return uow.Order{}, uow.ErrTransactionNotStarted
	}

	return s.stores.Orders.CreateOrder(ctx, s.tx, order)
}

// UpdateOrder updates the order through the open transaction and returns the persisted instance.
func (s *Session) UpdateOrder(ctx context.Context, order uow.Order) (uow.Order, error) {
	if s.tx == nil {
		return uow.Order{}, uow.ErrTransactionNotStarted
	}

	return s.stores.Orders.UpdateOrder(ctx, s.tx, order)
}

// DeleteOrder deletes the order through the open transaction.
func (s *Session) DeleteOrder(ctx context.Context, order uow.Order) error {
	if s.tx == nil {
		return uow.ErrTransactionNotStarted
	}

	return s.stores.Orders.DeleteOrder(ctx, s.tx, order)
}
