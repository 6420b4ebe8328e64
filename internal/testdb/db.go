//go:build integration

package testdb

import (
	"context"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasklist-api/internal/platform/migrations"
	"github.com/phrazzld/tasklist-api/internal/redact"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds connection checks and migrations.
const TestTimeout = 10 * time.Second

// GetTestDBWithT opens the test database, applies set and registers
// cleanup. It skips the test when no database is configured.
func GetTestDBWithT(t *testing.T, set migrations.Set) *sqlx.DB {
	t.Helper()

	if ShouldSkipDatabaseTest() {
		t.Skip("Skipping integration test - DATABASE_URL environment variable required")
	}

	db, err := sqlx.Open("pgx", GetTestDatabaseURL())
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Database connection failed: %s", redact.Error(err))
	}

	runner := migrations.NewRunner(db.DB, set, nil)
	if err := runner.Up(ctx); err != nil {
		t.Fatalf("Migration failed: %s", redact.Error(err))
	}

	return db
}
