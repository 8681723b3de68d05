package helper

import (
	"context"
	"fmt"
	"sync"

	"github.com/poi2/unit-of-work-go/uow"
)

// Call names recorded by RecordingStores, also usable as FailOn keys.
const (
	CallCreateUser  = "create_user"
	CallUpdateUser  = "update_user"
	CallDeleteUser  = "delete_user"
	CallCreateShop  = "create_shop"
	CallUpdateShop  = "update_shop"
	CallDeleteShop  = "delete_shop"
	CallCreateOrder = "create_order"
	CallUpdateOrder = "update_order"
	CallDeleteOrder = "delete_order"
)

// RecordingStores implements all three persistence ports, recording every
// call in order and executing a synthetic statement through the supplied
// DBHandle so that transaction doubles can observe the write. Individual
// calls can be made to fail via FailOn.
type RecordingStores struct {
	FailOn map[string]error // call name -> error to return instead of executing
	Calls  []string         // call names in invocation order
	mu     sync.Mutex
}

// NewRecordingStores creates a RecordingStores with no failures configured.
func NewRecordingStores() *RecordingStores {
	return &RecordingStores{FailOn: make(map[string]error)}
}

// Stores bundles the recorder into a Stores value serving all three ports.
func (r *RecordingStores) Stores() uow.Stores {
	return uow.Stores{Users: r, Shops: r, Orders: r}
}

// CallCount returns the number of recorded calls.
func (r *RecordingStores) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.Calls)
}

func (r *RecordingStores) record(ctx context.Context, db uow.DBHandle, call, id string) error {
	r.mu.Lock()
	r.Calls = append(r.Calls, call)
	failErr := r.FailOn[call]
	r.mu.Unlock()

	if failErr != nil {
		return failErr
	}

	_, execErr := db.Exec(ctx, fmt.Sprintf("%s %s", call, id))

	return execErr
}

// CreateUser implements the UserStore interface.
func (r *RecordingStores) CreateUser(ctx context.Context, db uow.DBHandle, user uow.User) (uow.User, error) {
	return user, r.record(ctx, db, CallCreateUser, user.ID.String())
}

// UpdateUser implements the UserStore interface.
func (r *RecordingStores) UpdateUser(ctx context.Context, db uow.DBHandle, user uow.User) (uow.User, error) {
	return user, r.record(ctx, db, CallUpdateUser, user.ID.String())
}

// DeleteUser implements the UserStore interface.
func (r *RecordingStores) DeleteUser(ctx context.Context, db uow.DBHandle, user uow.User) error {
	return r.record(ctx, db, CallDeleteUser, user.ID.String())
}

// CreateShop implements the ShopStore interface.
func (r *RecordingStores) CreateShop(ctx context.Context, db uow.DBHandle, shop uow.Shop) (uow.Shop, error) {
	return shop, r.record(ctx, db, CallCreateShop, shop.ID.String())
}

// UpdateShop implements the ShopStore interface.
func (r *RecordingStores) UpdateShop(ctx context.Context, db uow.DBHandle, shop uow.Shop) (uow.Shop, error) {
	return shop, r.record(ctx, db, CallUpdateShop, shop.ID.String())
}

// DeleteShop implements the ShopStore interface.
func (r *RecordingStores) DeleteShop(ctx context.Context, db uow.DBHandle, shop uow.Shop) error {
	return r.record(ctx, db, CallDeleteShop, shop.ID.String())
}

// CreateOrder implements the OrderStore interface.
func (r *RecordingStores) CreateOrder(ctx context.Context, db uow.DBHandle, order uow.Order) (uow.Order, error) {
	return order, r.record(ctx, db, CallCreateOrder, order.ID.String())
}

// UpdateOrder implements the OrderStore interface.
func (r *RecordingStores) UpdateOrder(ctx context.Context, db uow.DBHandle, order uow.Order) (uow.Order, error) {
	return order, r.record(ctx, db, CallUpdateOrder, order.ID.String())
}

// DeleteOrder implements the OrderStore interface.
func (r *RecordingStores) DeleteOrder(ctx context.Context, db uow.DBHandle, order uow.Order) error {
	return r.record(ctx, db, CallDeleteOrder, order.ID.String())
}
