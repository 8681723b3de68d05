package uow

import "context"

// UnitOfWork is the classical coordinator contract: stage commands for any
// aggregate, then apply them atomically. Staging is infallible and
// synchronous; Commit is the only operation that can fail or block.
type UnitOfWork interface {
	Create(aggregate Aggregate)
	Update(aggregate Aggregate)
	Delete(aggregate Aggregate)
	Commit(ctx context.Context) error
}

// TransactionControl is the explicit transaction lifecycle contract of the
// practical coordinator variant: Idle -> Active via Begin, back to Idle via
// Commit or Rollback.
type TransactionControl interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UserStagingRepository stages typed commands for the User aggregate.
// Callers depending only on this interface cannot touch other aggregates.
type UserStagingRepository interface {
	CreateUser(user User)
	UpdateUser(user User)
	DeleteUser(user User)
}

// ShopStagingRepository stages typed commands for the Shop aggregate.
type ShopStagingRepository interface {
	CreateShop(shop Shop)
	UpdateShop(shop Shop)
	DeleteShop(shop Shop)
}

// OrderStagingRepository stages typed commands for the Order aggregate.
type OrderStagingRepository interface {
	CreateOrder(order Order)
	UpdateOrder(order Order)
	DeleteOrder(order Order)
}

// UserRepository issues User operations immediately against the open
// transaction of a practical-variant session, returning the persisted entity.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	DeleteUser(ctx context.Context, user User) error
}

// ShopRepository issues Shop operations immediately against the open transaction.
type ShopRepository interface {
	CreateShop(ctx context.Context, shop Shop) (Shop, error)
	UpdateShop(ctx context.Context, shop Shop) (Shop, error)
	DeleteShop(ctx context.Context, shop Shop) error
}

// OrderRepository issues Order operations immediately against the open transaction.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order Order) (Order, error)
	UpdateOrder(ctx context.Context, order Order) (Order, error)
	DeleteOrder(ctx context.Context, order Order) error
}
