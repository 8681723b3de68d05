package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poi2/unit-of-work-go/example/usecase"
	"github.com/poi2/unit-of-work-go/testutil/helper"
	"github.com/poi2/unit-of-work-go/uow/postgresengine"
)

func Test_PlaceOrderWithStagedCommands_ShouldCommitAllWritesAtomically(t *testing.T) {
	// setup
	ctx := context.Background()
	starter := helper.NewFakeStarter()
	recorder := helper.NewRecordingStores()
	provider, err := postgresengine.NewProvider(starter, postgresengine.WithStores(recorder.Stores()))
	require.NoError(t, err)

	// arrange
	user := helper.GivenUser(t)
	shop := helper.GivenShop(t)
	order := helper.GivenOrder(t, user.ID, shop.ID)

	// act
	err = usecase.PlaceOrderWithStagedCommands(ctx, provider, user, shop, order)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, []string{
		helper.CallUpdateUser,
		helper.CallUpdateShop,
		helper.CallCreateOrder,
	}, recorder.Calls)
	assert.Len(t, starter.Visible, 3)
}

func Test_PlaceOrderWithTypedStaging_ShouldCommitAllWritesAtomically(t *testing.T) {
	// setup
	ctx := context.Background()
	starter := helper.NewFakeStarter()
	recorder := helper.NewRecordingStores()
	provider, err := postgresengine.NewProvider(starter, postgresengine.WithStores(recorder.Stores()))
	require.NoError(t, err)

	// arrange
	user := helper.GivenUser(t)
	shop := helper.GivenShop(t)
	order := helper.GivenOrder(t, user.ID, shop.ID)

	// act
	err = usecase.PlaceOrderWithTypedStaging(ctx, provider, user, shop, order)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, []string{
		helper.CallUpdateUser,
		helper.CallUpdateShop,
		helper.CallCreateOrder,
	}, recorder.Calls)
	assert.Len(t, starter.Visible, 3)
}

func Test_PlaceOrderInteractively_ShouldCommit_WhenTheUserIsValid(t *testing.T) {
	// setup
	ctx := context.Background()
	starter := helper.NewFakeStarter()
	recorder := helper.NewRecordingStores()
	provider, err := postgresengine.NewProvider(starter, postgresengine.WithStores(recorder.Stores()))
	require.NoError(t, err)

	// arrange
	user := helper.GivenUser(t)
	shop := helper.GivenShop(t)
	order := helper.GivenOrder(t, user.ID, shop.ID)

	// act
	err = usecase.PlaceOrderInteractively(ctx, provider, user, shop, order)

	// assert
	assert.NoError(t, err)

	tx := starter.LastTransaction()
	require.NotNil(t, tx)
	assert.True(t, tx.Committed)
	assert.Len(t, starter.Visible, 3)
}

func Test_PlaceOrderInteractively_ShouldRollBack_WhenTheUserIsInvalid(t *testing.T) {
	// setup
	ctx := context.Background()
	starter := helper.NewFakeStarter()
	recorder := helper.NewRecordingStores()
	provider, err := postgresengine.NewProvider(starter, postgresengine.WithStores(recorder.Stores()))
	require.NoError(t, err)

	// arrange
	user := helper.GivenInvalidUser(t)
	shop := helper.GivenShop(t)
	order := helper.GivenOrder(t, user.ID, shop.ID)

	// act
	err = usecase.PlaceOrderInteractively(ctx, provider, user, shop, order)

	// assert
	assert.NoError(t, err)

	tx := starter.LastTransaction()
	require.NotNil(t, tx)
	assert.True(t, tx.RolledBack)
	assert.Empty(t, starter.Visible)

	// the operations still ran inside the transaction before the rollback
	assert.Equal(t, 3, recorder.CallCount())
}

func Test_PlaceOrderInteractively_ShouldRollBack_WhenAnOperationFails(t *testing.T) {
	// setup
	ctx := context.Background()
	starter := helper.NewFakeStarter()
	recorder := helper.NewRecordingStores()
	cause := errors.New("duplicate key value violates unique constraint")
	recorder.FailOn[helper.CallUpdateShop] = cause
	provider, err := postgresengine.NewProvider(starter, postgresengine.WithStores(recorder.Stores()))
	require.NoError(t, err)

	// arrange
	user := helper.GivenUser(t)
	shop := helper.GivenShop(t)
	order := helper.GivenOrder(t, user.ID, shop.ID)

	// act
	err = usecase.PlaceOrderInteractively(ctx, provider, user, shop, order)

	// assert
	assert.ErrorIs(t, err, cause)

	tx := starter.LastTransaction()
	require.NotNil(t, tx)
	assert.True(t, tx.RolledBack)
	assert.Empty(t, starter.Visible)
}
