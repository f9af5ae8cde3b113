// Package sqlite implements store.TaskStore on top of an embedded SQLite
// database through the pure-Go modernc.org/sqlite driver.
//
// It serves local development (DB_DRIVER=sqlite) and the end-to-end tests,
// which run against an in-memory database opened with Open(ctx, ":memory:", nil).
// Queries mirror the PostgreSQL backend with "?" placeholders.
package sqlite
