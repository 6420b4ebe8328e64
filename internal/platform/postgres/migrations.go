package postgres

import (
	"embed"

	"github.com/phrazzld/tasklist-api/internal/platform/migrations"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations is the PostgreSQL schema.
var Migrations = migrations.Set{
	Dialect: "postgres",
	FS:      migrationFiles,
	Dir:     "migrations",
}
