package sqlite

import (
	"embed"

	"github.com/phrazzld/tasklist-api/internal/platform/migrations"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations is the SQLite schema.
var Migrations = migrations.Set{
	Dialect: "sqlite3",
	FS:      migrationFiles,
	Dir:     "migrations",
}
