// Package postgresstore provides a PostgreSQL implementation of the
// persistence ports consumed by the coordinator during commit replay.
//
// The store builds its SQL with goqu and executes it through the
// uow.DBHandle it is given, so every statement runs inside the open
// transaction owned by the coordinator. The store never opens, commits,
// or rolls back a transaction itself.
//
// Table names are configurable via functional options; the defaults are
// "users", "shops", and "orders".
package postgresstore
