// Package postgresengine provides the PostgreSQL unit-of-work coordinator.
//
// Two coordinator variants share the same Provider:
//
//   - Coordinator: stages commands in an ordered queue and replays them
//     inside one transaction on Commit. Staging is exposed both generically
//     (Create/Update/Delete on the Aggregate union) and as typed
//     per-aggregate repository methods (CreateUser, UpdateShop, ...).
//   - Session: an explicit Begin/Commit/Rollback state machine whose
//     per-aggregate operations are issued immediately against the open
//     transaction and return the persisted entity.
//
// A Provider is bound to one live connection through a pgxpool.Pool, sql.DB,
// or sqlx.DB adapter and hands out a fresh Coordinator or Session per
// logical unit of work. Coordinators and sessions are single-owner: one
// instance per request or use case, never shared between goroutines.
package postgresengine
