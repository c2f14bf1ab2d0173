// Package sqlite persists document block sets in SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Each block is one row of the document_blocks table, keyed
// by document ID and position, with the block itself stored as JSON.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files; applied versions are recorded in schema_migrations. A store opened
// WithoutMigrations leaves the schema alone, and writes against a database
// without the table fail with domain.ErrSchemaAbsent.
//
// # Data Location
//
// By default, the database is stored at ~/.docblocks/data/blocks.db
//
// # Thread Safety
//
// All operations are thread-safe. Replacing a block set runs in a single
// transaction, so readers see either the old set or the new one.
package sqlite
