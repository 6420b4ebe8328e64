package migrations_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/platform/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func testSet() migrations.Set {
	return migrations.Set{
		Dialect: "sqlite3",
		Dir:     "migrations",
		FS: fstest.MapFS{
			"migrations/00001_create_notes.sql": &fstest.MapFile{Data: []byte(`-- +goose Up
CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT NOT NULL);

-- +goose Down
DROP TABLE notes;
`)},
			"migrations/00002_add_notes_index.sql": &fstest.MapFile{Data: []byte(`-- +goose Up
CREATE INDEX idx_notes_body ON notes (body);

-- +goose Down
DROP INDEX idx_notes_body;
`)},
		},
	}
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).
		Scan(&count)
	require.NoError(t, err)
	return count > 0
}

func TestRunnerLifecycle(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	buf, l := logger.NewTestLogger()
	runner := migrations.NewRunner(db, testSet(), l)

	version, err := runner.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), version)

	require.NoError(t, runner.Up(ctx))
	assert.True(t, tableExists(t, db, "notes"))
	assert.True(t, tableExists(t, db, migrations.TableName))

	version, err = runner.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	// Up is idempotent
	require.NoError(t, runner.Run(ctx, "UP"))

	require.NoError(t, runner.Run(ctx, migrations.CommandStatus))
	require.NoError(t, runner.Run(ctx, migrations.CommandVersion))

	require.NoError(t, runner.Run(ctx, migrations.CommandDown))
	version, err = runner.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	require.NoError(t, runner.Run(ctx, migrations.CommandReset))
	assert.False(t, tableExists(t, db, "notes"))

	assert.Contains(t, buf.String(), `"component":"migrations"`)
	assert.Contains(t, buf.String(), "migration command executed successfully")
}

func TestRunnerUnknownCommand(t *testing.T) {
	db := openDB(t)
	_, l := logger.NewTestLogger()
	runner := migrations.NewRunner(db, testSet(), l)

	err := runner.Run(context.Background(), "create")
	require.Error(t, err)
	assert.ErrorIs(t, err, migrations.ErrUnknownCommand)
}
