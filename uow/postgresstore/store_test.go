package postgresstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/uuid"

	"github.com/poi2/unit-of-work-go/testutil/helper"
	"github.com/poi2/unit-of-work-go/uow"
	"github.com/poi2/unit-of-work-go/uow/postgresstore"
)

func Test_NewStore_ShouldRejectEmptyTableNames(t *testing.T) {
	tests := []struct {
		name   string
		option postgresstore.Option
	}{
		{name: "users", option: postgresstore.WithUsersTableName("")},
		{name: "shops", option: postgresstore.WithShopsTableName("")},
		{name: "orders", option: postgresstore.WithOrdersTableName("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// act
			store, err := postgresstore.NewStore(tt.option)

			// assert
			assert.ErrorIs(t, err, postgresstore.ErrEmptyTableName)
			assert.Nil(t, store)
		})
	}
}

func Test_CreateUser_ShouldAssignAnID_WhenTheEntityComesWithoutOne(t *testing.T) {
	// setup
	ctx := context.Background()
	store, err := postgresstore.NewStore()
	require.NoError(t, err)
	db := helper.NewFakeDBHandle()

	// arrange
	user := uow.User{Name: "Ada Lovelace", Email: "ada@example.com"}

	// act
	persisted, err := store.CreateUser(ctx, db, user)

	// assert
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, persisted.ID)

	require.Len(t, db.Statements, 1)
	assert.Contains(t, db.Statements[0], `INSERT INTO "users"`)
	assert.Contains(t, db.Statements[0], persisted.ID.String())
}

func Test_CreateUser_ShouldKeepAnExistingID(t *testing.T) {
	// setup
	ctx := context.Background()
	store, err := postgresstore.NewStore()
	require.NoError(t, err)
	db := helper.NewFakeDBHandle()

	// arrange
	user := helper.GivenUser(t)

	// act
	persisted, err := store.CreateUser(ctx, db, user)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, user.ID, persisted.ID)
}

func Test_CreateUser_ShouldRejectInvalidAttributesJSON(t *testing.T) {
	// setup
	ctx := context.Background()
	store, err := postgresstore.NewStore()
	require.NoError(t, err)
	db := helper.NewFakeDBHandle()

	// arrange
	user := uow.User{
		Name:       "Ada Lovelace",
		Email:      "ada@example.com",
		Attributes: json.RawMessage(`{"tier":`),
	}

	// act
	_, err = store.CreateUser(ctx, db, user)

	// assert
	assert.ErrorIs(t, err, uow.ErrInvalidAttributesJSON)
	assert.Empty(t, db.Statements)
}

func Test_UpdateUser_ShouldFail_WhenNoRowsWereAffected(t *testing.T) {
	// setup
	ctx := context.Background()
	store, err := postgresstore.NewStore()
	require.NoError(t, err)
	db := helper.NewFakeDBHandle()
	db.RowsAffected = 0

	// act
	_, err = store.UpdateUser(ctx, db, helper.GivenUser(t))

	// assert
	assert.ErrorIs(t, err, postgresstore.ErrEntityNotFound)
}

func Test_UpdateUser_ShouldTargetTheEntityByID_AndNotRewriteIt(t *testing.T) {
	// setup
	ctx := context.Background()
	store, err := postgresstore.NewStore()
	require.NoError(t, err)
	db := helper.NewFakeDBHandle()

	// arrange
	user := helper.GivenUser(t)

	// act
	_, err = store.UpdateUser(ctx, db, user)

	// assert
	assert.NoError(t, err)

	require.Len(t, db.Statements, 1)
	assert.Contains(t, db.Statements[0], `UPDATE "users" SET`)
	assert.Contains(t, db.Statements[0], user.ID.String())
	assert.NotContains(t, db.Statements[0], `"id"=`)
}

func Test_DeleteUser_ShouldIssueADeleteByID(t *testing.T) {
	// setup
	ctx := context.Background()
	store, err := postgresstore.NewStore()
	require.NoError(t, err)
	db := helper.NewFakeDBHandle()

	// arrange
	user := helper.GivenUser(t)

	// act
	err = store.DeleteUser(ctx, db, user)

	// assert
	assert.NoError(t, err)

	require.Len(t, db.Statements, 1)
	assert.Contains(t, db.Statements[0], `DELETE FROM "users"`)
	assert.Contains(t, db.Statements[0], user.ID.String())
}

func Test_Store_ShouldUseTheConfiguredTableNames(t *testing.T) {
	// setup
	ctx := context.Background()
	store, err := postgresstore.NewStore(
		postgresstore.WithUsersTableName("accounts"),
		postgresstore.WithShopsTableName("merchants"),
		postgresstore.WithOrdersTableName("purchases"),
	)
	require.NoError(t, err)
	db := helper.NewFakeDBHandle()

	// arrange
	user := helper.GivenUser(t)
	shop := helper.GivenShop(t)
	order := helper.GivenOrder(t, user.ID, shop.ID)

	// act
	_, err = store.CreateUser(ctx, db, user)
	require.NoError(t, err)
	_, err = store.CreateShop(ctx, db, shop)
	require.NoError(t, err)
	_, err = store.CreateOrder(ctx, db, order)
	require.NoError(t, err)

	// assert
	require.Len(t, db.Statements, 3)
	assert.Contains(t, db.Statements[0], `INSERT INTO "accounts"`)
	assert.Contains(t, db.Statements[1], `INSERT INTO "merchants"`)
	assert.Contains(t, db.Statements[2], `INSERT INTO "purchases"`)
}

func Test_CreateOrder_ShouldPersistReferencesAndTotal(t *testing.T) {
	// setup
	ctx := context.Background()
	store, err := postgresstore.NewStore()
	require.NoError(t, err)
	db := helper.NewFakeDBHandle()

	// arrange
	user := helper.GivenUser(t)
	shop := helper.GivenShop(t)
	order := helper.GivenOrder(t, user.ID, shop.ID)

	// act
	persisted, err := store.CreateOrder(ctx, db, order)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, order, persisted)

	require.Len(t, db.Statements, 1)
	assert.Contains(t, db.Statements[0], `INSERT INTO "orders"`)
	assert.Contains(t, db.Statements[0], user.ID.String())
	assert.Contains(t, db.Statements[0], shop.ID.String())
	assert.Contains(t, db.Statements[0], "4200")
}

func Test_Store_ShouldWrapExecutionFailures(t *testing.T) {
	// setup
	ctx := context.Background()
	store, err := postgresstore.NewStore()
	require.NoError(t, err)
	db := helper.NewFakeDBHandle()
	cause := errors.New("driver: bad connection")
	db.ExecErr = cause

	// act
	_, err = store.CreateUser(ctx, db, helper.GivenUser(t))

	// assert
	assert.ErrorIs(t, err, postgresstore.ErrExecutingQueryFailed)
	assert.ErrorIs(t, err, cause)
}

func Test_Store_ShouldDefaultEmptyAttributesToAnEmptyObject(t *testing.T) {
	// setup
	ctx := context.Background()
	store, err := postgresstore.NewStore()
	require.NoError(t, err)
	db := helper.NewFakeDBHandle()

	// arrange
	shop := uow.Shop{ID: helper.GivenUniqueID(t), Name: "Analytical Engines Ltd"}

	// act
	_, err = store.CreateShop(ctx, db, shop)

	// assert
	assert.NoError(t, err)

	require.Len(t, db.Statements, 1)
	assert.Contains(t, db.Statements[0], `'{}'::jsonb`)
}
