package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasklist-api/internal/config"
	"github.com/phrazzld/tasklist-api/internal/platform/migrations"
	"github.com/phrazzld/tasklist-api/internal/platform/postgres"
	"github.com/phrazzld/tasklist-api/internal/platform/sqlite"
	"github.com/phrazzld/tasklist-api/internal/redact"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// pingTimeout bounds the connectivity check performed at startup.
const pingTimeout = 5 * time.Second

// setupAppDatabase opens the configured database, applies pool settings and
// verifies connectivity.
func setupAppDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = sqlx.Open("pgx", cfg.URL)
	case config.DriverSQLite:
		db, err = sqlite.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		"driver", cfg.Driver,
		"url", redact.String(cfg.URL),
		"max_open_conns", cfg.MaxOpenConns)
	return db, nil
}

// migrationSet returns the embedded migrations for a driver.
func migrationSet(driver string) (migrations.Set, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.Migrations, nil
	case config.DriverSQLite:
		return sqlite.Migrations, nil
	default:
		return migrations.Set{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// newTaskStore returns the task store implementation for a driver.
func newTaskStore(driver string, db *sqlx.DB, logger *slog.Logger) (store.TaskStore, error) {
	switch driver {
	case config.DriverPostgres:
		return postgres.NewPostgresTaskStore(db, logger), nil
	case config.DriverSQLite:
		return sqlite.NewSQLiteTaskStore(db, logger), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
