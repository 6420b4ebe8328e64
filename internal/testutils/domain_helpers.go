package testutils

import (
	"context"
	"testing"

	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/store"
	"github.com/stretchr/testify/require"
)

// CreateTestTask creates a new valid task for testing.
// It does not save the task to the database.
func CreateTestTask(t *testing.T, name, dueDate string) *domain.Task {
	t.Helper()

	details, err := domain.ParseTaskDetails(name, "Title for "+name, "Description for "+name, dueDate)
	require.NoError(t, err, "Failed to build test task")
	return domain.NewTask(details)
}

// MustInsertTask creates a task and saves it through s.
func MustInsertTask(
	ctx context.Context,
	t *testing.T,
	s store.TaskStore,
	name, dueDate string,
) *domain.Task {
	t.Helper()

	task := CreateTestTask(t, name, dueDate)
	require.NoError(t, s.Create(ctx, task), "Failed to insert test task")
	return task
}
