package postgres

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

// taskRow is the database representation of a task.
type taskRow struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	DueDate     time.Time `db:"due_date"`
	IsCompleted bool      `db:"is_completed"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r taskRow) toDomain() domain.Task {
	y, m, d := r.DueDate.Date()
	return domain.Task{
		ID:          r.ID,
		Name:        r.Name,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		IsCompleted: r.IsCompleted,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

const selectTaskColumns = `SELECT id, name, title, description, due_date, is_completed, created_at FROM tasks`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store"), slog.String("driver", "postgres")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var rows []taskRow
	query := selectTaskColumns + ` ORDER BY created_at DESC, id DESC`
	if err := sqlx.SelectContext(ctx, s.db, &rows, query); err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "query failed", MapError(err))
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, r.toDomain())
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Create implements store.TaskStore.Create
// The database assigns id and created_at, which are written back into task.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO tasks (name, title, description, due_date, is_completed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	var createdAt time.Time
	err := s.db.QueryRowxContext(
		ctx,
		query,
		task.Name,
		task.Title,
		task.Description,
		task.DueDate,
		task.IsCompleted,
	).Scan(&task.ID, &createdAt)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrInvalidEntity) {
			log.Warn("task rejected by schema", slog.String("error", err.Error()))
			return mapped
		}
		log.Error("failed to create task", slog.String("error", err.Error()))
		return store.NewStoreError("task", "create", "insert failed", mapped)
	}
	task.CreatedAt = createdAt.UTC()

	log.Info("task created successfully", slog.Int64("task_id", task.ID))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var row taskRow
	if err := sqlx.GetContext(ctx, s.db, &row, selectTaskColumns+` WHERE id = $1`, id); err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrTaskNotFound) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task", slog.Int64("task_id", id), slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "get", "query failed", mapped)
	}

	task := row.toDomain()
	return &task, nil
}

// Update implements store.TaskStore.Update
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.Int64("task_id", task.ID),
			slog.String("error", err.Error()))
		return err
	}

	query := `
		UPDATE tasks
		SET name = $1, title = $2, description = $3, due_date = $4, is_completed = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Name,
		task.Title,
		task.Description,
		task.DueDate,
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
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
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
func (s *PostgresTaskStore) Ping(ctx context.Context) error {
	var one int
	if err := s.db.QueryRowxContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
