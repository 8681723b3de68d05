// Package helper provides test doubles and fixtures for unit of work tests:
// a fake transaction starter with commit-visible state, recording persistence
// ports with injectable failures, and spies for the dependency-free
// observability interfaces (logging, metrics, tracing).
package helper
