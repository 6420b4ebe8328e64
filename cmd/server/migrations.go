package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasklist-api/internal/config"
	"github.com/phrazzld/tasklist-api/internal/platform/migrations"
)

// runMigrations executes a single migration command against the configured
// database and closes the connection afterwards.
func runMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	set, err := migrationSet(cfg.Database.Driver)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", "error", err)
		}
	}()

	logger.Info("Executing migrations", "command", command, "driver", cfg.Database.Driver)
	if err := migrations.NewRunner(db.DB, set, logger).Run(ctx, command); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}

// migrateUp applies all pending migrations on an open connection.
func migrateUp(ctx context.Context, driver string, db *sqlx.DB, logger *slog.Logger) error {
	set, err := migrationSet(driver)
	if err != nil {
		return err
	}
	if err := migrations.NewRunner(db.DB, set, logger).Up(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
