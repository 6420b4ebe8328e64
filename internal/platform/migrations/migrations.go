package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
)

// TableName is the name of the table used by goose to track migrations.
const TableName = "schema_migrations"

// Supported commands.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandVersion = "version"
	CommandReset   = "reset"
)

// Commands lists every command accepted by Runner.Run.
var Commands = []string{CommandUp, CommandDown, CommandStatus, CommandVersion, CommandReset}

// ErrUnknownCommand is returned by Run for anything not in Commands.
var ErrUnknownCommand = errors.New("unknown migration command")

// Set is an embedded set of migration files for one SQL dialect.
type Set struct {
	// Dialect is the goose dialect name, e.g. "postgres" or "sqlite3".
	Dialect string
	// FS holds the migration files.
	FS fs.FS
	// Dir is the directory inside FS containing the .sql files.
	Dir string
}

// goose keeps its dialect, base FS and logger in package globals.
var gooseMu sync.Mutex

// Runner applies a migration Set to a database.
type Runner struct {
	db     *sql.DB
	set    Set
	logger *slog.Logger
}

// NewRunner creates a Runner. A nil logger falls back to slog.Default.
func NewRunner(db *sql.DB, set Set, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		db:     db,
		set:    set,
		logger: logger.With(slog.String("component", "migrations"), slog.String("dialect", set.Dialect)),
	}
}

// Up applies all pending migrations.
func (r *Runner) Up(ctx context.Context) error {
	return r.Run(ctx, CommandUp)
}

// Version returns the current schema version, 0 for a clean database.
func (r *Runner) Version(ctx context.Context) (int64, error) {
	var version int64
	err := r.withGoose(func() error {
		v, err := goose.GetDBVersionContext(ctx, r.db)
		version = v
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, nil
}

// Run executes a single goose command.
func (r *Runner) Run(ctx context.Context, command string) error {
	command = strings.ToLower(strings.TrimSpace(command))

	var op func() error
	switch command {
	case CommandUp:
		op = func() error { return goose.UpContext(ctx, r.db, r.set.Dir) }
	case CommandDown:
		op = func() error { return goose.DownContext(ctx, r.db, r.set.Dir) }
	case CommandReset:
		op = func() error { return goose.ResetContext(ctx, r.db, r.set.Dir) }
	case CommandStatus:
		op = func() error { return goose.StatusContext(ctx, r.db, r.set.Dir) }
	case CommandVersion:
		op = func() error { return goose.VersionContext(ctx, r.db, r.set.Dir) }
	default:
		r.logger.Error("unknown migration command",
			slog.String("command", command),
			slog.Any("valid_commands", Commands))
		return fmt.Errorf("%w: %q (expected one of %s)",
			ErrUnknownCommand, command, strings.Join(Commands, ", "))
	}

	start := time.Now()
	r.logger.Info("starting migration command", slog.String("command", command))

	if err := r.withGoose(op); err != nil {
		r.logger.Error("migration command failed",
			slog.String("command", command),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	r.logger.Info("migration command executed successfully",
		slog.String("command", command),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

// withGoose configures the goose globals for this runner and calls fn while
// holding the lock.
func (r *Runner) withGoose(fn func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(r.set.FS)
	defer goose.SetBaseFS(nil)

	goose.SetLogger(&slogGooseLogger{logger: r.logger})
	goose.SetTableName(TableName)
	if err := goose.SetDialect(r.set.Dialect); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	return fn()
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf forwards goose progress output at info level.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf forwards at error level. It does not exit; goose returns the error
// to the caller as well.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
