package store

import (
	"context"

	"github.com/phrazzld/tasklist-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Implementations must be safe for concurrent use.
type TaskStore interface {
	// List returns every task ordered by creation time, newest first.
	List(ctx context.Context) ([]domain.Task, error)

	// Create inserts a new task. The store assigns ID and CreatedAt and
	// writes them back into the provided task.
	// Returns ErrInvalidEntity if the row violates a schema constraint.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// Update persists name, title, description, due date and completion
	// flag of an existing task. ID and CreatedAt are never written.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete permanently removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// Ping performs a trivial round-trip to verify connectivity.
	Ping(ctx context.Context) error
}
