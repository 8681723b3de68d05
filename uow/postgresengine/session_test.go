package postgresengine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poi2/unit-of-work-go/testutil/helper"
	"github.com/poi2/unit-of-work-go/uow"
	"github.com/poi2/unit-of-work-go/uow/postgresengine"
)

func Test_Session_Begin_ShouldFail_WhenATransactionIsAlreadyOpen(t *testing.T) {
	// setup
	ctx := context.Background()
	starter := helper.NewFakeStarter()
	recorder := helper.NewRecordingStores()
	provider, err := postgresengine.NewProvider(starter, postgresengine.WithStores(recorder.Stores()))
	require.NoError(t, err)

	// arrange
	session := provider.Session()
	require.NoError(t, session.Begin(ctx))

	// act
	err = session.Begin(ctx)

	// assert
	assert.ErrorIs(t, err, uow.ErrTransactionAlreadyStarted)
	assert.True(t, session.InTransaction())
	assert.Len(t, starter.Started, 1)
}

func Test_Session_CommitAndRollback_ShouldFail_WhenIdle(t *testing.T) {
	// setup
	ctx := context.Background()
	starter := helper.NewFakeStarter()
	recorder := helper.NewRecordingStores()
	provider, err := postgresengine.NewProvider(starter, postgresengine.WithStores(recorder.Stores()))
	require.NoError(t, err)

	// arrange
	session := provider.Session()

	// assert
	assert.ErrorIs(t, session.Commit(ctx), uow.ErrTransactionNotStarted)
	assert.ErrorIs(t, session.Rollback(ctx), uow.ErrTransactionNotStarted)
	assert.False(t, session.InTransaction())
}

func Test_Session_EntityOperations_ShouldFail_WhenIdle(t *testing.T) {
	// setup
	ctx := context.Background()
	starter := helper.NewFakeStarter()
	recorder := helper.NewRecordingStores()
	provider, err := postgresengine.NewProvider(starter, postgresengine.WithStores(recorder.Stores()))
	require.NoError(t, err)

	// arrange
	session := provider.Session()
	user := helper.GivenUser(t)
	shop := helper.GivenShop(t)
	order := helper.GivenOrder(t, user.ID, shop.ID)

	// assert
	_, err = session.CreateUser(ctx, user)
	assert.ErrorIs(t, err, uow.ErrTransactionNotStarted)
	_, err = session.UpdateUser(ctx, user)
	assert.ErrorIs(t, err, uow.ErrTransactionNotStarted)
	assert.ErrorIs(t, session.DeleteUser(ctx, user), uow.ErrTransactionNotStarted)

	_, err = session.CreateShop(ctx, shop)
	assert.ErrorIs(t, err, uow.ErrTransactionNotStarted)
	_, err = session.UpdateShop(ctx, shop)
	assert.ErrorIs(t, err, uow.ErrTransactionNotStarted)
	assert.ErrorIs(t, session.DeleteShop(ctx, shop), uow.ErrTransactionNotStarted)

	_, err = session.CreateOrder(ctx, order)
	assert.ErrorIs(t, err, uow.ErrTransactionNotStarted)
	_, err = session.UpdateOrder(ctx, order)
	assert.ErrorIs(t, err, uow.ErrTransactionNotStarted)
	assert.ErrorIs(t, session.DeleteOrder(ctx, order), uow.ErrTransactionNotStarted)

	assert.Equal(t, 0, recorder.CallCount())
}

func Test_Session_ShouldRunOperationsInsideTheOpenTransaction_AndCommitThem(t *testing.T) {
	// setup
	ctx := context.Background()
	starter := helper.NewFakeStarter()
	recorder := helper.NewRecordingStores()
	provider, err := postgresengine.NewProvider(starter, postgresengine.WithStores(recorder.Stores()))
	require.NoError(t, err)

	// arrange
	session := provider.Session()
	user := helper.GivenUser(t)
	shop := helper.GivenShop(t)
	order := helper.GivenOrder(t, user.ID, shop.ID)

	// act
	require.NoError(t, session.Begin(ctx))

	persistedUser, err := session.UpdateUser(ctx, user)
	require.NoError(t, err)
	_, err = session.UpdateShop(ctx, shop)
	require.NoError(t, err)
	_, err = session.CreateOrder(ctx, order)
	require.NoError(t, err)

	require.NoError(t, session.Commit(ctx))

	// assert
	assert.Equal(t, user, persistedUser)
	assert.False(t, session.InTransaction())
	assert.Equal(t, []string{
		helper.CallUpdateUser,
		helper.CallUpdateShop,
		helper.CallCreateOrder,
	}, recorder.Calls)
	assert.Len(t, starter.Visible, 3)
}

func Test_Session_Rollback_ShouldDiscardOperations_AndAllowAFreshBegin(t *testing.T) {
	// setup
	ctx := context.Background()
	starter := helper.NewFakeStarter()
	recorder := helper.NewRecordingStores()
	provider, err := postgresengine.NewProvider(starter, postgresengine.WithStores(recorder.Stores()))
	require.NoError(t, err)

	// arrange
	session := provider.Session()
	user := helper.GivenUser(t)

	require.NoError(t, session.Begin(ctx))
	_, err = session.UpdateUser(ctx, user)
	require.NoError(t, err)

	// act
	require.NoError(t, session.Rollback(ctx))

	// assert
	assert.False(t, session.InTransaction())
	assert.Empty(t, starter.Visible)

	// the session is reusable after rollback
	require.NoError(t, session.Begin(ctx))
	_, err = session.UpdateUser(ctx, user)
	require.NoError(t, err)
	require.NoError(t, session.Commit(ctx))
	assert.Len(t, starter.Visible, 1)
}

func Test_Session_Begin_ShouldFail_WhenTheDatabaseRefusesTheTransaction(t *testing.T) {
	// setup
	ctx := context.Background()
	starter := helper.NewFakeStarter()
	starter.BeginErr = errors.New("connection refused")
	recorder := helper.NewRecordingStores()
	provider, err := postgresengine.NewProvider(starter, postgresengine.WithStores(recorder.Stores()))
	require.NoError(t, err)

	// act
	err = provider.Session().Begin(ctx)

	// assert
	assert.ErrorIs(t, err, uow.ErrBeginTransactionFailed)
}

func Test_Session_Commit_ShouldResolveTheTransaction_WhenTheCommitItselfFails(t *testing.T) {
	// setup
	ctx := context.Background()
	starter := helper.NewFakeStarter()
	starter.NextCommitErr = errors.New("server closed the connection unexpectedly")
	recorder := helper.NewRecordingStores()
	provider, err := postgresengine.NewProvider(starter, postgresengine.WithStores(recorder.Stores()))
	require.NoError(t, err)

	// arrange
	session := provider.Session()
	require.NoError(t, session.Begin(ctx))

	// act
	err = session.Commit(ctx)

	// assert
	assert.ErrorIs(t, err, uow.ErrCommitTransactionFailed)
	assert.False(t, session.InTransaction())

	tx := starter.LastTransaction()
	require.NotNil(t, tx)
	assert.True(t, tx.RolledBack)
	assert.Empty(t, starter.Visible)
}

func Test_Session_Rollback_ShouldSurfaceARollbackFailure(t *testing.T) {
	// setup
	ctx := context.Background()
	starter := helper.NewFakeStarter()
	starter.NextRollbackErr = errors.New("driver: bad connection")
	recorder := helper.NewRecordingStores()
	provider, err := postgresengine.NewProvider(starter, postgresengine.WithStores(recorder.Stores()))
	require.NoError(t, err)

	// arrange
	session := provider.Session()
	require.NoError(t, session.Begin(ctx))

	// act
	err = session.Rollback(ctx)

	// assert
	assert.ErrorIs(t, err, uow.ErrRollbackTransactionFailed)
	assert.False(t, session.InTransaction())
}
