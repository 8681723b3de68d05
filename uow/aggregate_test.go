package uow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poi2/unit-of-work-go/uow"
)

func Test_Aggregate_ShouldExposeOnlyThePopulatedVariant(t *testing.T) {
	// arrange
	user := uow.User{Name: "Ada Lovelace", Email: "ada@example.com"}

	// act
	aggregate := uow.UserAggregate(user)

	// assert
	assert.Equal(t, uow.KindUser, aggregate.Kind())

	gotUser, ok := aggregate.User()
	assert.True(t, ok)
	assert.Equal(t, user, gotUser)

	_, ok = aggregate.Shop()
	assert.False(t, ok)

	_, ok = aggregate.Order()
	assert.False(t, ok)
}

func Test_Aggregate_ShouldRoundTripEachVariant(t *testing.T) {
	// arrange
	shop := uow.Shop{Name: "Analytical Engines Ltd"}
	order := uow.Order{TotalCents: 4200}

	// act
	shopAggregate := uow.ShopAggregate(shop)
	orderAggregate := uow.OrderAggregate(order)

	// assert
	assert.Equal(t, uow.KindShop, shopAggregate.Kind())
	gotShop, ok := shopAggregate.Shop()
	assert.True(t, ok)
	assert.Equal(t, shop, gotShop)

	assert.Equal(t, uow.KindOrder, orderAggregate.Kind())
	gotOrder, ok := orderAggregate.Order()
	assert.True(t, ok)
	assert.Equal(t, order, gotOrder)
}

func Test_AggregateKind_String(t *testing.T) {
	tests := []struct {
		kind     uow.AggregateKind
		expected string
	}{
		{kind: uow.KindUser, expected: "user"},
		{kind: uow.KindShop, expected: "shop"},
		{kind: uow.KindOrder, expected: "order"},
		{kind: uow.AggregateKind(99), expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func Test_Operation_String(t *testing.T) {
	tests := []struct {
		operation uow.Operation
		expected  string
	}{
		{operation: uow.OperationCreate, expected: "create"},
		{operation: uow.OperationUpdate, expected: "update"},
		{operation: uow.OperationDelete, expected: "delete"},
		{operation: uow.Operation(99), expected: "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.operation.String())
		})
	}
}
