package main

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/phrazzld/tasklist-api/internal/config"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/testutils"
	"github.com/stretchr/testify/require"
)

// testConfig returns a valid configuration pointing at a SQLite file in a
// temporary directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server: config.ServerConfig{
			Port:            0,
			LogLevel:        "debug",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: config.DatabaseConfig{
			Driver:          config.DriverSQLite,
			URL:             filepath.Join(t.TempDir(), "tasks.db"),
			MaxOpenConns:    4,
			MaxIdleConns:    2,
			ConnMaxLifetime: time.Minute,
			AutoMigrate:     true,
			HealthTimeout:   time.Second,
		},
		Cache: config.CacheConfig{
			Enabled:         true,
			TTL:             30 * time.Second,
			CleanupInterval: time.Minute,
		},
	}
}

// newTestApp builds an application on a migrated SQLite database.
func newTestApp(t *testing.T, mutate func(*config.Config)) *application {
	t.Helper()

	cfg := testConfig(t)
	if mutate != nil {
		mutate(cfg)
	}
	_, log := logger.NewTestLogger()

	app, err := newApplication(cfg, log, testutils.NewSQLiteDB(t))
	require.NoError(t, err)
	return app
}

// newTestRouter returns the fully wired router of a fresh application.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return newTestApp(t, nil).setupRouter()
}
