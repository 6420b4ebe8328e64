package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/tasklist-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockResult implements sql.Result for testing
type mockResult struct {
	rowsAffected int64
	err          error
}

func (m mockResult) LastInsertId() (int64, error) {
	return 0, nil
}

func (m mockResult) RowsAffected() (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.rowsAffected, nil
}

func TestMapError(t *testing.T) {
	genericErr := errors.New("connection reset by peer")

	tests := []struct {
		name          string
		err           error
		expectedError error
		expectedMsg   string
	}{
		{
			name:          "nil_error",
			err:           nil,
			expectedError: nil,
		},
		{
			name:          "sql_no_rows",
			err:           sql.ErrNoRows,
			expectedError: store.ErrTaskNotFound,
		},
		{
			name:          "wrapped_no_rows",
			err:           fmt.Errorf("scan: %w", sql.ErrNoRows),
			expectedError: store.ErrNotFound,
		},
		{
			name: "string_truncation",
			err: &pgconn.PgError{
				Code:    stringTruncationCode,
				Message: "value too long for type character varying(100)",
			},
			expectedError: store.ErrInvalidEntity,
			expectedMsg:   "value too long",
		},
		{
			name: "check_constraint_violation",
			err: &pgconn.PgError{
				Code:           checkViolationCode,
				ConstraintName: "tasks_name_check",
			},
			expectedError: store.ErrInvalidEntity,
			expectedMsg:   "tasks_name_check",
		},
		{
			name: "not_null_violation",
			err: &pgconn.PgError{
				Code:       notNullViolationCode,
				ColumnName: "title",
			},
			expectedError: store.ErrInvalidEntity,
			expectedMsg:   "not null violation (title)",
		},
		{
			name: "unmapped_pg_error",
			err: &pgconn.PgError{
				Code: "40001",
			},
		},
		{
			name:          "generic_error",
			err:           genericErr,
			expectedError: genericErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MapError(tt.err)

			if tt.err == nil {
				assert.NoError(t, result)
				return
			}

			require.Error(t, result)
			if tt.expectedError != nil {
				assert.ErrorIs(t, result, tt.expectedError)
			} else {
				assert.False(t, errors.Is(result, store.ErrInvalidEntity))
				assert.False(t, errors.Is(result, store.ErrNotFound))
			}
			if tt.expectedMsg != "" {
				assert.Contains(t, result.Error(), tt.expectedMsg)
			}
		})
	}
}

func TestCheckRowsAffected(t *testing.T) {
	t.Run("nil_result", func(t *testing.T) {
		err := CheckRowsAffected(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nil result")
	})

	t.Run("rows_affected_error", func(t *testing.T) {
		err := CheckRowsAffected(mockResult{err: errors.New("driver does not support it")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get rows affected")
		assert.False(t, store.IsNotFoundError(err))
	})

	t.Run("no_rows", func(t *testing.T) {
		err := CheckRowsAffected(mockResult{rowsAffected: 0})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("one_row", func(t *testing.T) {
		assert.NoError(t, CheckRowsAffected(mockResult{rowsAffected: 1}))
	})
}

func TestTaskRowToDomain(t *testing.T) {
	t.Parallel()

	row := taskRow{
		ID:          7,
		Name:        "n",
		Title:       "t",
		Description: "d",
		DueDate:     mustParse(t, "2024-03-05T00:00:00Z"),
		IsCompleted: true,
		CreatedAt:   mustParse(t, "2024-03-01T12:30:45+02:00"),
	}

	task := row.toDomain()
	assert.Equal(t, int64(7), task.ID)
	assert.Equal(t, "2024-03-05", task.FormattedDueDate())
	assert.Equal(t, "2024-03-01 10:30:45", task.FormattedCreatedAt())
	assert.True(t, task.IsCompleted)
}
