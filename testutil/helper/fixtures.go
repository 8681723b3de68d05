package helper

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/poi2/unit-of-work-go/uow"
)

// GivenUniqueID returns a fresh time-ordered UUID for test entities.
func GivenUniqueID(t *testing.T) uuid.UUID {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err)

	return id
}

// GivenUser returns a valid User fixture with a fresh identity.
func GivenUser(t *testing.T) uow.User {
	t.Helper()

	user, err := uow.BuildUser(GivenUniqueID(t), "Ada Lovelace", "ada@example.com", json.RawMessage(`{"tier":"gold"}`))
	require.NoError(t, err)

	return user
}

// GivenInvalidUser returns a User fixture that fails the IsValid hook.
func GivenInvalidUser(t *testing.T) uow.User {
	t.Helper()

	user, err := uow.BuildUser(GivenUniqueID(t), "", "", nil)
	require.NoError(t, err)

	return user
}

// GivenShop returns a Shop fixture with a fresh identity.
func GivenShop(t *testing.T) uow.Shop {
	t.Helper()

	shop, err := uow.BuildShop(GivenUniqueID(t), "Analytical Engines Ltd", json.RawMessage(`{"open":true}`))
	require.NoError(t, err)

	return shop
}

// GivenOrder returns an Order fixture referencing the given user and shop.
func GivenOrder(t *testing.T, userID uuid.UUID, shopID uuid.UUID) uow.Order {
	t.Helper()

	order, err := uow.BuildOrder(GivenUniqueID(t), userID, shopID, 4200, json.RawMessage(`{"currency":"EUR"}`))
	require.NoError(t, err)

	return order
}
