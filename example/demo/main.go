// Command demo runs the three order-placement styles against a local
// Postgres instance. It expects the users, shops and orders tables to exist;
// see the repository README for the schema.
package main

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/poi2/unit-of-work-go/example/usecase"
	"github.com/poi2/unit-of-work-go/testutil/config"
	"github.com/poi2/unit-of-work-go/uow"
	"github.com/poi2/unit-of-work-go/uow/postgresengine"
)

func main() {
	ctx := context.Background()

	pool, err := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolConfig())
	if err != nil {
		log.Fatal("Failed to create a database connection pool, error: ", err)
	}
	defer pool.Close()

	provider, err := postgresengine.NewProviderFromPGXPool(pool)
	if err != nil {
		log.Fatal("Failed to create a provider, error: ", err)
	}

	user, shop := seedEntities()
	order := seedOrder(user, shop)

	if err = usecase.PlaceOrderWithStagedCommands(ctx, provider, user, shop, order); err != nil {
		log.Fatal("Staged command style failed, error: ", err)
	}
	log.Println("staged command style committed")

	order = seedOrder(user, shop)
	if err = usecase.PlaceOrderWithTypedStaging(ctx, provider, user, shop, order); err != nil {
		log.Fatal("Typed staging style failed, error: ", err)
	}
	log.Println("typed staging style committed")

	order = seedOrder(user, shop)
	if err = usecase.PlaceOrderInteractively(ctx, provider, user, shop, order); err != nil {
		log.Fatal("Interactive session style failed, error: ", err)
	}
	log.Println("interactive session style committed")
}

func seedEntities() (uow.User, uow.Shop) {
	user, err := uow.BuildUser(mustNewID(), "Ada Lovelace", "ada@example.com", nil)
	if err != nil {
		log.Fatal("Failed to build a user, error: ", err)
	}

	shop, err := uow.BuildShop(mustNewID(), "Analytical Engines Ltd", nil)
	if err != nil {
		log.Fatal("Failed to build a shop, error: ", err)
	}

	return user, shop
}

func seedOrder(user uow.User, shop uow.Shop) uow.Order {
	order, err := uow.BuildOrder(mustNewID(), user.ID, shop.ID, 4200, nil)
	if err != nil {
		log.Fatal("Failed to build an order, error: ", err)
	}

	return order
}

func mustNewID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		log.Fatal("Failed to generate an id, error: ", err)
	}

	return id
}
