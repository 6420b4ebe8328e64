package domain

import (
	"fmt"
	"time"
)

// Wire layouts for task dates and timestamps.
const (
	// DateLayout is the calendar date format used for due dates.
	DateLayout = "2006-01-02"

	// TimestampLayout is the format used when rendering creation timestamps.
	TimestampLayout = "2006-01-02 15:04:05"
)

// Task is a single to-do item. ID and CreatedAt are assigned by the store
// and never change afterwards.
type Task struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskDetails holds the user-editable fields of a task after validation.
type TaskDetails struct {
	Name        string
	Title       string
	Description string
	DueDate     time.Time
}

// ParseTaskDetails validates raw field values and parses the due date.
// Fields are checked in the order name, title, description, due_date and
// the first failure is returned as a *ValidationError.
func ParseTaskDetails(name, title, description, dueDate string) (TaskDetails, error) {
	required := []struct {
		field string
		value string
	}{
		{"name", name},
		{"title", title},
		{"description", description},
		{"due_date", dueDate},
	}
	for _, r := range required {
		if r.value == "" {
			return TaskDetails{}, NewValidationError(r.field, "is required", ErrMissingField)
		}
	}

	due, err := ParseDate(dueDate)
	if err != nil {
		return TaskDetails{}, err
	}

	return TaskDetails{
		Name:        name,
		Title:       title,
		Description: description,
		DueDate:     due,
	}, nil
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, NewValidationError(
			"due_date",
			fmt.Sprintf("%q does not match format YYYY-MM-DD", value),
			ErrInvalidDate,
		)
	}
	return t, nil
}

// NewTask creates an uncompleted task from validated details.
// The store assigns ID and CreatedAt on insert.
func NewTask(details TaskDetails) *Task {
	t := &Task{}
	t.Apply(details)
	return t
}

// Apply overwrites the editable fields. ID, CreatedAt and IsCompleted are
// left untouched.
func (t *Task) Apply(details TaskDetails) {
	t.Name = details.Name
	t.Title = details.Title
	t.Description = details.Description
	t.DueDate = truncateToDate(details.DueDate)
}

// Toggle flips the completion flag and returns the new value.
func (t *Task) Toggle() bool {
	t.IsCompleted = !t.IsCompleted
	return t.IsCompleted
}

// Validate checks that the task carries every required field.
func (t *Task) Validate() error {
	switch {
	case t.Name == "":
		return NewValidationError("name", "is required", ErrMissingField)
	case t.Title == "":
		return NewValidationError("title", "is required", ErrMissingField)
	case t.Description == "":
		return NewValidationError("description", "is required", ErrMissingField)
	case t.DueDate.IsZero():
		return NewValidationError("due_date", "is required", ErrMissingField)
	}
	return nil
}

// FormattedDueDate renders the due date as YYYY-MM-DD.
func (t *Task) FormattedDueDate() string {
	return t.DueDate.Format(DateLayout)
}

// FormattedCreatedAt renders the creation time in UTC as YYYY-MM-DD HH:MM:SS.
func (t *Task) FormattedCreatedAt() string {
	return t.CreatedAt.UTC().Format(TimestampLayout)
}

// truncateToDate drops the clock component, keeping the calendar date as
// observed in the value's own location.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
