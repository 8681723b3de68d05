package usecase

import (
	"context"
	"errors"

	"github.com/poi2/unit-of-work-go/uow"
	"github.com/poi2/unit-of-work-go/uow/postgresengine"
)

// PlaceOrderWithStagedCommands places an order in the classical coordinator
// style: mutations are staged as generic commands and nothing touches the
// database until Commit replays the whole batch in one transaction.
func PlaceOrderWithStagedCommands(
	ctx context.Context,
	provider *postgresengine.Provider,
	user uow.User,
	shop uow.Shop,
	order uow.Order,
) error {
	coordinator := provider.Coordinator()

	coordinator.Update(uow.UserAggregate(user))
	coordinator.Update(uow.ShopAggregate(shop))
	coordinator.Create(uow.OrderAggregate(order))

	return coordinator.Commit(ctx)
}

// PlaceOrderWithTypedStaging places an order through the typed staging
// repositories. The staged batch and commit semantics are identical to the
// generic style; only the staging surface differs.
func PlaceOrderWithTypedStaging(
	ctx context.Context,
	provider *postgresengine.Provider,
	user uow.User,
	shop uow.Shop,
	order uow.Order,
) error {
	coordinator := provider.Coordinator()

	coordinator.UpdateUser(user)
	coordinator.UpdateShop(shop)
	coordinator.CreateOrder(order)

	return coordinator.Commit(ctx)
}

// PlaceOrderInteractively places an order on a session with an explicit
// transaction lifecycle. Each operation runs immediately inside the open
// transaction and returns the persisted entity, so the caller can inspect
// intermediate state and decide between commit and rollback.
func PlaceOrderInteractively(
	ctx context.Context,
	provider *postgresengine.Provider,
	user uow.User,
	shop uow.Shop,
	order uow.Order,
) error {
	session := provider.Session()

	if err := session.Begin(ctx); err != nil {
		return err
	}

	persistedUser, err := session.UpdateUser(ctx, user)
	if err != nil {
		return rollbackAfter(ctx, session, err)
	}

	if _, err = session.UpdateShop(ctx, shop); err != nil {
		return rollbackAfter(ctx, session, err)
	}

	if _, err = session.CreateOrder(ctx, order); err != nil {
		return rollbackAfter(ctx, session, err)
	}

	if persistedUser.IsValid() {
		return session.Commit(ctx)
	}

	return session.Rollback(ctx)
}

func rollbackAfter(ctx context.Context, session *postgresengine.Session, cause error) error {
	if rollbackErr := session.Rollback(ctx); rollbackErr != nil {
		return errors.Join(cause, rollbackErr)
	}

	return cause
}
