// Package archive exports the corpus into a SQL database so it can be
// searched and joined with other data.
//
// Two drivers are supported: "sqlite3" (github.com/mattn/go-sqlite3) for a
// local archive file and "pgx" (github.com/jackc/pgx/v5/stdlib) for Postgres.
// Exports are upserts keyed by transcript ID; a transcript's quotes are
// replaced as a unit, so re-exporting after re-extraction leaves no stale rows.
package archive
