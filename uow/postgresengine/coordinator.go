package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/poi2/unit-of-work-go/uow"
)

// Coordinator is the classical unit-of-work variant. Commands are staged in
// an ordered in-memory queue and replayed in strict insertion order inside
// one database transaction when Commit is called.
//
// A Coordinator is single-owner: it belongs to one logical unit of work and
// must not be shared between goroutines. Concurrent use requires one
// Coordinator per unit of work, obtained fresh from the Provider.
type Coordinator struct {
	db     uow.TransactionStarter
	stores uow.Stores
	queue  uow.Commands
	instrumentation
}

var _ uow.UnitOfWork = (*Coordinator)(nil)

// Create stages a create command for the aggregate; infallible, no I/O.
func (c *Coordinator) Create(aggregate uow.Aggregate) {
	c.stage(aggregate, uow.OperationCreate)
}

// Update stages an update command for the aggregate; infallible, no I/O.
func (c *Coordinator) Update(aggregate uow.Aggregate) {
	c.stage(aggregate, uow.OperationUpdate)
}

// Delete stages a delete command for the aggregate; infallible, no I/O.
func (c *Coordinator) Delete(aggregate uow.Aggregate) {
	c.stage(aggregate, uow.OperationDelete)
}

// Staged returns the number of commands currently queued for replay.
func (c *Coordinator) Staged() int {
	return len(c.queue)
}

func (c *Coordinator) stage(aggregate uow.Aggregate, operation uow.Operation) {
	c.queue = append(c.queue, uow.BuildCommand(aggregate, operation))
}

// Commit atomically replays all staged commands against the persistence
// ports inside one transaction, in staging order. The queue is drained
// before the transaction is opened, so it is empty afterwards regardless of
// the outcome; a failed commit never retries its batch.
//
// Committing an empty queue is deterministic: no transaction is opened and
// no persistence-port call is made.
//
// On any replay failure the transaction is rolled back, no partial writes
// remain observable, and the returned error wraps a uow.CommandError
// identifying the first failing command. A rollback failure is joined in as
// uow.ErrRollbackTransactionFailed and must be treated as fatal.
func (c *Coordinator) Commit(ctx context.Context) (err error) {
	commands := c.drainQueue()
	if len(commands) == 0 {
		c.logOperation(ctx, logMsgCommitSkippedEmptyQueue)
		return nil
	}

	start := time.Now()
	ctx, span := c.startTraceSpan(ctx, spanNameCommit, map[string]string{
		spanAttrOperation:    operationCommit,
		spanAttrCommandCount: fmt.Sprintf("%d", len(commands)),
	})

	tx, beginErr := c.db.Begin(ctx)
	if beginErr != nil {
		c.logError(ctx, logMsgBeginTransactionFailed, beginErr)
		c.recordErrorMetrics(ctx, operationCommit, errorTypeOf(uow.ErrBeginTransactionFailed))
		c.finishSpanError(span, errorTypeOf(uow.ErrBeginTransactionFailed))

		return errors.Join(uow.ErrBeginTransactionFailed, beginErr)
	}

	// The transaction must be resolved on every exit path. Rollback is a
	// no-op once the transaction is committed, so one deferred guard covers
	// every failure path, including cancellation during replay.
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			c.logError(ctx, logMsgRollbackFailed, rollbackErr)
			err = errors.Join(uow.ErrRollbackTransactionFailed, rollbackErr, err)
		}
	}()

	if replayErr := c.replay(ctx, tx, commands); replayErr != nil {
		c.recordRollbackMetrics(ctx, operationCommit)
		c.recordErrorMetrics(ctx, operationCommit, errorTypeOf(uow.ErrTransactionFailed))
		c.finishSpanError(span, errorTypeOf(uow.ErrTransactionFailed))

		return errors.Join(uow.ErrTransactionFailed, replayErr)
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		c.logError(ctx, logMsgCommitTransactionFailed, commitErr)
		c.recordRollbackMetrics(ctx, operationCommit)
		c.recordErrorMetrics(ctx, operationCommit, errorTypeOf(uow.ErrCommitTransactionFailed))
		c.finishSpanError(span, errorTypeOf(uow.ErrCommitTransactionFailed))

		return errors.Join(uow.ErrCommitTransactionFailed, commitErr)
	}

	duration := time.Since(start)
	c.logOperation(ctx, logMsgStagedCommandsCommitted,
		logAttrCommandCount, len(commands),
		logAttrDurationMS, toMilliseconds(duration))
	c.recordDurationMetrics(ctx, metricCommitDuration, duration, operationCommit, statusSuccess)
	c.recordValueMetrics(ctx, metricCommandsApplied, float64(len(commands)), operationCommit, statusSuccess)
	c.finishSpanSuccess(span, duration)

	return nil
}

// drainQueue empties the queue before the transaction is opened.
func (c *Coordinator) drainQueue() uow.Commands {
	commands := c.queue
	c.queue = nil

	return commands
}

// replay applies the drained commands in strict insertion order and stops
// at the first failure.
func (c *Coordinator) replay(ctx context.Context, tx uow.Transaction, commands uow.Commands) error {
	for position, command := range commands {
		c.logDebug(ctx, logMsgApplyingCommand,
			logAttrPosition, position,
			logAttrAggregateKind, command.Aggregate().Kind().String(),
			logAttrOperation, command.Operation().String())

		if applyErr := c.apply(ctx, tx, command); applyErr != nil {
			commandErr := &uow.CommandError{
				Position:  position,
				Kind:      command.Aggregate().Kind(),
				Operation: command.Operation(),
				Err:       applyErr,
			}

			c.logError(ctx, logMsgReplayCommandFailed, commandErr,
				logAttrPosition, position,
				logAttrAggregateKind, command.Aggregate().Kind().String(),
				logAttrOperation, command.Operation().String())

			return commandErr
		}
	}

	return nil
}

// apply is the single dispatch site over the closed (aggregate, operation)
// union. Adding an aggregate variant extends this switch together with the
// union itself.
func (c *Coordinator) apply(ctx context.Context, tx uow.Transaction, command uow.Command) error {
	aggregate := command.Aggregate()

	switch aggregate.Kind() {
	case uow.KindUser:
		user, _ := aggregate.User()
		switch command.Operation() {
		case uow.OperationCreate:
			_, err := c.stores.Users.CreateUser(ctx, tx, user)
			return err
		case uow.OperationUpdate:
			_, err := c.stores.Users.UpdateUser(ctx, tx, user)
			return err
		case uow.OperationDelete:
			return c.stores.Users.DeleteUser(ctx, tx, user)
		}

	case uow.KindShop:
		shop, _ := aggregate.Shop()
		switch command.Operation() {
		case uow.OperationCreate:
			_, err := c.stores.Shops.CreateShop(ctx, tx, shop)
			return err
		case uow.OperationUpdate:
			_, err := c.stores.Shops.UpdateShop(ctx, tx, shop)
			return err
		case uow.OperationDelete:
			return c.stores.Shops.DeleteShop(ctx, tx, shop)
		}

	case uow.KindOrder:
		order, _ := aggregate.Order()
		switch command.Operation() {
		case uow.OperationCreate:
			_, err := c.stores.Orders.CreateOrder(ctx, tx, order)
			return err
		case uow.OperationUpdate:
			_, err := c.stores.Orders.UpdateOrder(ctx, tx, order)
			return err
		case uow.OperationDelete:
			return c.stores.Orders.DeleteOrder(ctx, tx, order)
		}
	}

	return uow.ErrUnknownAggregateKind
}
