package uow

import "context"

// DBHandle is the narrowed query surface of an open transaction that
// persistence ports execute against. Ports cannot resolve the transaction;
// only the coordinator that opened it can.
type DBHandle interface {
	Query(ctx context.Context, query string) (Rows, error)
	Exec(ctx context.Context, query string) (Result, error)
}

// Transaction is an open database transaction, exclusively owned by the
// coordinator that opened it for its entire lifetime. Rollback must be a
// no-op when the transaction is already resolved, so that a deferred
// rollback is safe on every exit path.
type Transaction interface {
	DBHandle
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionStarter opens a new database transaction on a live connection.
// It is the sole boundary between the coordinator and the underlying
// database driver.
type TransactionStarter interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Rows defines the interface for query result rows.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

// Result defines the interface for execution results.
type Result interface {
	RowsAffected() (int64, error)
}

// UserStore is the persistence port for the User aggregate.
// Create and Update return the persisted instance; all operations run
// inside the open transaction represented by the DBHandle.
type UserStore interface {
	CreateUser(ctx context.Context, db DBHandle, user User) (User, error)
	UpdateUser(ctx context.Context, db DBHandle, user User) (User, error)
	DeleteUser(ctx context.Context, db DBHandle, user User) error
}

// ShopStore is the persistence port for the Shop aggregate.
type ShopStore interface {
	CreateShop(ctx context.Context, db DBHandle, shop Shop) (Shop, error)
	UpdateShop(ctx context.Context, db DBHandle, shop Shop) (Shop, error)
	DeleteShop(ctx context.Context, db DBHandle, shop Shop) error
}

// OrderStore is the persistence port for the Order aggregate.
type OrderStore interface {
	CreateOrder(ctx context.Context, db DBHandle, order Order) (Order, error)
	UpdateOrder(ctx context.Context, db DBHandle, order Order) (Order, error)
	DeleteOrder(ctx context.Context, db DBHandle, order Order) error
}

// Stores bundles the persistence ports for all aggregate variants.
type Stores struct {
	Users  UserStore
	Shops  ShopStore
	Orders OrderStore
}

// Validate ensures every port is populated.
func (s Stores) Validate() error {
	if s.Users == nil || s.Shops == nil || s.Orders == nil {
		return ErrNilStores
	}

	return nil
}
