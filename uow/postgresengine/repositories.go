package postgresengine

import (
	"github.com/poi2/unit-of-work-go/uow"
)

// Typed staging methods for the refactored classical variant. Each stages
// the same (Aggregate, Operation) pair as the generic Create/Update/Delete,
// so commit behavior, ordering, and failure semantics are identical.
// Callers can depend on just the uow.*StagingRepository interface for the
// aggregate types they use instead of the full union.

var (
	_ uow.UserStagingRepository  = (*Coordinator)(nil)
	_ uow.ShopStagingRepository  = (*Coordinator)(nil)
	_ uow.OrderStagingRepository = (*Coordinator)(nil)
)

// CreateUser stages a create command for the user.
func (c *Coordinator) CreateUser(user uow.User) {
	c.Create(uow.UserAggregate(user))
}

// UpdateUser stages an update command for the user.
func (c *Coordinator) UpdateUser(user uow.User) {
	c.Update(uow.UserAggregate(user))
}

// DeleteUser stages a delete command for the user.
func (c *Coordinator) DeleteUser(user uow.User) {
	c.Delete(uow.UserAggregate(user))
}

// CreateShop stages a create command for the shop.
func (c *Coordinator) CreateShop(shop uow.Shop) {
	c.Create(uow.ShopAggregate(shop))
}

// UpdateShop stages an update command for the shop.
func (c *Coordinator) UpdateShop(shop uow.Shop) {
	c.Update(uow.ShopAggregate(shop))
}

// DeleteShop stages a delete command for the shop.
func (c *Coordinator) DeleteShop(shop uow.Shop) {
	c.Delete(uow.ShopAggregate(shop))
}

// CreateOrder stages a create command for the order.
func (c *Coordinator) CreateOrder(order uow.Order) {
	c.Create(uow.OrderAggregate(order))
}

// UpdateOrder stages an update command for the order.
func (c *Coordinator) UpdateOrder(order uow.Order) {
	c.Update(uow.OrderAggregate(order))
}

// DeleteOrder stages a delete command for the order.
func (c *Coordinator) DeleteOrder(order uow.Order) {
	c.Delete(uow.OrderAggregate(order))
}
