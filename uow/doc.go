// Package uow provides core abstractions and types for the unit-of-work
// transaction coordinator.
//
// This package defines the fundamental types used across the coordinator
// implementations: the closed Aggregate and Operation tagged unions, the
// staged Command, the per-aggregate persistence ports, the transaction
// handle interfaces, and common error definitions.
//
// The coordinator lets application code stage mutations against
// heterogeneous aggregates and apply them as one atomic database
// transaction. Staging is infallible and synchronous; commit is the only
// place that can fail or block.
//
// Key types:
//   - Aggregate: closed tagged union over the supported entity variants
//   - Operation: Create, Update or Delete
//   - Command: an aggregate paired with an operation, queued for replay
//   - UserStore, ShopStore, OrderStore: persistence ports consumed during replay
//   - Transaction, DBHandle: the open transaction and its narrowed query surface
//
// Common usage pattern:
//
//	coordinator := provider.Coordinator()
//	coordinator.Update(uow.UserAggregate(user))
//	coordinator.Update(uow.ShopAggregate(shop))
//	coordinator.Create(uow.OrderAggregate(order))
//	if err := coordinator.Commit(ctx); err != nil {
//		// the whole batch was rolled back
//	}
package uow
