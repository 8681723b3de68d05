package postgresengine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poi2/unit-of-work-go/testutil/helper"
	"github.com/poi2/unit-of-work-go/uow"
	"github.com/poi2/unit-of-work-go/uow/postgresengine"
)

func Test_TypedStaging_ShouldBehaveLikeGenericStaging(t *testing.T) {
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

	coordinator := provider.Coordinator()
	coordinator.CreateUser(user)
	coordinator.UpdateUser(user)
	coordinator.DeleteUser(user)
	coordinator.CreateShop(shop)
	coordinator.UpdateShop(shop)
	coordinator.DeleteShop(shop)
	coordinator.CreateOrder(order)
	coordinator.UpdateOrder(order)
	coordinator.DeleteOrder(order)
	require.Equal(t, 9, coordinator.Staged())

	// act
	err = coordinator.Commit(ctx)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, []string{
		helper.CallCreateUser,
		helper.CallUpdateUser,
		helper.CallDeleteUser,
		helper.CallCreateShop,
		helper.CallUpdateShop,
		helper.CallDeleteShop,
		helper.CallCreateOrder,
		helper.CallUpdateOrder,
		helper.CallDeleteOrder,
	}, recorder.Calls)
}

func Test_TypedStaging_ShouldInterleaveWithGenericStaging_InStagingOrder(t *testing.T) {
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

	coordinator := provider.Coordinator()
	coordinator.UpdateUser(user)
	coordinator.Update(uow.ShopAggregate(shop))
	coordinator.CreateOrder(order)

	// act
	err = coordinator.Commit(ctx)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, []string{
		helper.CallUpdateUser,
		helper.CallUpdateShop,
		helper.CallCreateOrder,
	}, recorder.Calls)
}
