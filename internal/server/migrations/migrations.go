// Package migrations embeds the goose migrations of the users store, one
// directory per SQL dialect.
package migrations

import "embed"

// Directories inside FS.
const (
	DirPostgres = "postgres"
	DirSQLite   = "sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
