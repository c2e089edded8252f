// Package sqlite provides a persistent driven.CacheStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Entries survive restarts, which keeps geocoding and
// restaurant listings warm between CLI invocations.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files; applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.hopwise/data/cache.db
//
// # Thread Safety
//
// All operations are thread-safe. The store relies on SQLite's WAL mode and
// a busy timeout for concurrent writers.
package sqlite
