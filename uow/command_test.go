package uow_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poi2/unit-of-work-go/testutil/helper"
	"github.com/poi2/unit-of-work-go/uow"
)

func Test_BuildCommand_ShouldPreserveAggregateAndOperation(t *testing.T) {
	// arrange
	aggregate := uow.ShopAggregate(uow.Shop{Name: "Analytical Engines Ltd"})

	// act
	command := uow.BuildCommand(aggregate, uow.OperationUpdate)

	// assert
	assert.Equal(t, aggregate, command.Aggregate())
	assert.Equal(t, uow.OperationUpdate, command.Operation())
}

func Test_CommandError_ShouldIdentifyTheFailingCommand(t *testing.T) {
	// arrange
	cause := errors.New("duplicate key value violates unique constraint")
	commandErr := &uow.CommandError{
		Position:  2,
		Kind:      uow.KindOrder,
		Operation: uow.OperationCreate,
		Err:       cause,
	}

	// assert
	assert.Equal(t, "command 2 (create order) failed: duplicate key value violates unique constraint", commandErr.Error())
	assert.ErrorIs(t, commandErr, cause)
}

func Test_Stores_Validate_ShouldFailWhenAnyPortIsMissing(t *testing.T) {
	// arrange
	recorder := helper.NewRecordingStores()

	tests := []struct {
		name   string
		stores uow.Stores
	}{
		{name: "all_nil", stores: uow.Stores{}},
		{name: "missing_users", stores: uow.Stores{Shops: recorder, Orders: recorder}},
		{name: "missing_shops", stores: uow.Stores{Users: recorder, Orders: recorder}},
		{name: "missing_orders", stores: uow.Stores{Users: recorder, Shops: recorder}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.stores.Validate(), uow.ErrNilStores)
		})
	}

	assert.NoError(t, recorder.Stores().Validate())
}
