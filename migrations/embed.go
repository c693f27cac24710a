// Package migrations embeds the schema for every supported database driver.
package migrations

import "embed"

// Postgres holds the golang-migrate files for PostgreSQL.
//
//go:embed postgres/*.sql
var Postgres embed.FS

// SQLite holds the golang-migrate files for SQLite.
//
//go:embed sqlite/*.sql
var SQLite embed.FS
