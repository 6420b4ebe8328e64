package main

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasklist-api/internal/cache"
	"github.com/phrazzld/tasklist-api/internal/config"
	"github.com/phrazzld/tasklist-api/internal/platform/metrics"
	"github.com/phrazzld/tasklist-api/internal/service"
	"github.com/phrazzld/tasklist-api/internal/store"
	"github.com/phrazzld/tasklist-api/web"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	logger  *slog.Logger
	db      *sqlx.DB
	metrics *metrics.Metrics

	taskStore   store.TaskStore
	taskCache   cache.Cache
	taskService service.TaskService

	templates *template.Template
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must already be open and migrated.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sqlx.DB) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		metrics: metrics.New(),
	}

	var err error
	app.taskStore, err = newTaskStore(cfg.Database.Driver, db, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Cache.Enabled {
		app.taskCache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.CleanupInterval)
		logger.Info("Task list cache enabled", "ttl", cfg.Cache.TTL)
	} else {
		app.taskCache = cache.NoopCache{}
		logger.Info("Task list cache disabled")
	}

	app.taskService, err = service.NewTaskService(
		app.taskStore,
		app.taskCache,
		app.metrics,
		logger,
		cfg.Cache.TTL,
		service.WithHealthTimeout(cfg.Database.HealthTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.templates, err = web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	logger.Info("Application initialized successfully",
		"driver", cfg.Database.Driver,
		"csrf_enabled", cfg.Server.CSRFEnabled)
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// go-cache stops its janitor once the cache is unreachable; flushing
	// releases the cached listing right away.
	if mc, ok := app.taskCache.(*cache.MemoryCache); ok {
		mc.Flush()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
