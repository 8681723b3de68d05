// Package adapters provides database adapter implementations for the PostgreSQL coordinator engine.
//
// This package implements the adapter pattern to support multiple PostgreSQL database libraries:
// pgxpool.Pool, sql.DB, and sqlx.DB. All adapters provide equivalent functionality through
// the common uow.TransactionStarter interface, allowing the coordinator to work seamlessly
// with any supported database connection type.
//
// Every adapter maps its driver's "transaction already closed" error to nil on Rollback,
// so the coordinator can defer a rollback on every exit path without special-casing
// already-resolved transactions.
package adapters
