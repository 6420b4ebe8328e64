package testutils

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasklist-api/internal/platform/migrations"
	"github.com/phrazzld/tasklist-api/internal/platform/sqlite"
	"github.com/stretchr/testify/require"
)

// NewSQLiteDB opens a fresh SQLite database file under t.TempDir and applies
// the task schema. The handle is closed on cleanup.
func NewSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err, "Failed to open sqlite database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close sqlite database: %v", err)
		}
	})

	runner := migrations.NewRunner(db.DB, sqlite.Migrations, nil)
	require.NoError(t, runner.Up(context.Background()), "Failed to migrate sqlite database")

	return db
}

// NewSQLiteTaskStore returns a migrated database together with a task store on it.
func NewSQLiteTaskStore(t *testing.T) (*sqlx.DB, *sqlite.SQLiteTaskStore) {
	t.Helper()

	db := NewSQLiteDB(t)
	return db, sqlite.NewSQLiteTaskStore(db, nil)
}
