// Package database provides the shared database engine: connection string
// classification, per-kind pool profiles, scoped sessions with explicit
// transactions, idempotent table creation, table introspection, error
// classification and logging, built on top of Bun.
package database
