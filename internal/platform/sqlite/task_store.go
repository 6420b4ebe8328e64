package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// TimestampLayout is the stored form of created_at. Fixed width keeps
// lexical and chronological order identical.
const TimestampLayout = "2006-01-02 15:04:05.000000000"

// taskRow is the database representation of a task.
type taskRow struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Title       string `db:"title"`
	Description string `db:"description"`
	DueDate     string `db:"due_date"`
	IsCompleted bool   `db:"is_completed"`
	CreatedAt   string `db:"created_at"`
}

func (r taskRow) toDomain() (domain.Task, error) {
	due, err := time.ParseInLocation(domain.DateLayout, r.DueDate, time.UTC)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %d has malformed due_date %q: %w", r.ID, r.DueDate, err)
	}
	created, err := time.ParseInLocation(TimestampLayout, r.CreatedAt, time.UTC)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %d has malformed created_at %q: %w", r.ID, r.CreatedAt, err)
	}
	return domain.Task{
		ID:          r.ID,
		Name:        r.Name,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     due,
		IsCompleted: r.IsCompleted,
		CreatedAt:   created,
	}, nil
}

const selectTaskColumns = `SELECT id, name, title, description, due_date, is_completed, created_at FROM tasks`

// SQLiteTaskStore implements the store.TaskStore interface on SQLite.
type SQLiteTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
	now    func() time.Time
}

// NewSQLiteTaskStore creates a new SQLite implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewSQLiteTaskStore(db store.DBTX, logger *slog.Logger) *SQLiteTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store"), slog.String("driver", "sqlite")),
		now:    time.Now,
	}
}

// WithClock replaces the source of created_at timestamps.
func (s *SQLiteTaskStore) WithClock(now func() time.Time) *SQLiteTaskStore {
	s.now = now
	return s
}

// Ensure SQLiteTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*SQLiteTaskStore)(nil)

// List implements store.TaskStore.List
func (s *SQLiteTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var rows []taskRow
	query := selectTaskColumns + ` ORDER BY created_at DESC, id DESC`
	if err := sqlx.SelectContext(ctx, s.db, &rows, query); err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, r := range rows {
		task, err := r.toDomain()
		if err != nil {
			log.Error("failed to decode task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "list", "decode failed", err)
		}
		tasks = append(tasks, task)
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Create implements store.TaskStore.Create
// The store assigns id and created_at, which are written back into task.
func (s *SQLiteTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return err
	}

	createdAt := s.now().UTC()

	query := `
		INSERT INTO tasks (name, title, description, due_date, is_completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Name,
		task.Title,
		task.Description,
		task.FormattedDueDate(),
		task.IsCompleted,
		createdAt.Format(TimestampLayout),
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrInvalidEntity) {
			log.Warn("task rejected by schema", slog.String("error", err.Error()))
			return mapped
		}
		log.Error("failed to create task", slog.String("error", err.Error()))
		return store.NewStoreError("task", "create", "insert failed", mapped)
	}

	id, err := result.LastInsertId()
	if err != nil {
		log.Error("failed to read inserted task id", slog.String("error", err.Error()))
		return store.NewStoreError("task", "create", "last insert id", err)
	}

	task.ID = id
	task.CreatedAt = createdAt

	log.Info("task created successfully", slog.Int64("task_id", task.ID))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *SQLiteTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var row taskRow
	if err := sqlx.GetContext(ctx, s.db, &row, selectTaskColumns+` WHERE id = ?`, id); err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrTaskNotFound) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task", slog.Int64("task_id", id), slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "get", "query failed", mapped)
	}

	task, err := row.toDomain()
	if err != nil {
		log.Error("failed to decode task row", slog.Int64("task_id", id), slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "get", "decode failed", err)
	}
	return &task, nil
}

// Update implements store.TaskStore.Update
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *SQLiteTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.Int64("task_id", task.ID),
			slog.String("error", err.Error()))
		return err
	}

	query := `
		UPDATE tasks
		SET name = ?, title = ?, description = ?, due_date = ?, is_completed = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Name,
		task.Title,
		task.Description,
		task.FormattedDueDate(),
		task.IsCompleted,
		task.ID,
	)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrInvalidEntity) {
			log.Warn("task update rejected by schema",
				slog.Int64("task_id", task.ID),
				slog.String("error", err.Error()))
			return mapped
		}
		log.Error("failed to update task",
			slog.Int64("task_id", task.ID),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "update", "update failed", mapped)
	}

	if err := CheckRowsAffected(result); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for update", slog.Int64("task_id", task.ID))
			return err
		}
		return store.NewStoreError("task", "update", "rows affected", err)
	}

	log.Info("task updated successfully", slog.Int64("task_id", task.ID))
	return nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *SQLiteTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete task", slog.Int64("task_id", id), slog.String("error", err.Error()))
		return store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}

	if err := CheckRowsAffected(result); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for delete", slog.Int64("task_id", id))
			return err
		}
		return store.NewStoreError("task", "delete", "rows affected", err)
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return nil
}

// Ping implements store.TaskStore.Ping with a SELECT 1 round-trip.
func (s *SQLiteTaskStore) Ping(ctx context.Context) error {
	var one int
	if err := s.db.QueryRowxContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
