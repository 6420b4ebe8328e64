package api

import "github.com/phrazzld/tasklist-api/internal/domain"

// TaskRequest is the body of create and update requests. Field order is the
// order in which missing fields are reported.
type TaskRequest struct {
	Name        string `json:"name"        validate:"required"`
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	DueDate     string `json:"due_date"    validate:"required"`
}

// TaskResponse is the wire form of a task.
type TaskResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	IsCompleted bool   `json:"is_completed"`
	CreatedAt   string `json:"created_at"`
}

// TaskListResponse is the body of the list endpoint.
type TaskListResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// TaskEnvelope wraps a single task in a success envelope.
type TaskEnvelope struct {
	Success bool         `json:"success"`
	Task    TaskResponse `json:"task"`
}

// ToggleResponse reports the completion flag after a toggle.
type ToggleResponse struct {
	Success     bool `json:"success"`
	IsCompleted bool `json:"is_completed"`
}

// SuccessResponse is a bare acknowledgement.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// HealthResponse is the body of the health endpoint.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Server   string `json:"server,omitempty"`
	Error    string `json:"error,omitempty"`
}

// PingResponse is the body of the liveness endpoint.
type PingResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewTaskResponse converts a domain task to its wire form.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Name:        task.Name,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.FormattedDueDate(),
		IsCompleted: task.IsCompleted,
		CreatedAt:   task.FormattedCreatedAt(),
	}
}

// NewTaskListResponse converts tasks preserving order. An empty input yields
// an empty JSON array, never null.
func NewTaskListResponse(tasks []domain.Task) TaskListResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskResponse(&tasks[i]))
	}
	return TaskListResponse{Tasks: out}
}
