package api

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/redact"
	"github.com/phrazzld/tasklist-api/internal/service"
)

// maxBodyBytes caps create and update request bodies.
const maxBodyBytes = 1 << 20

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		logger:      log.With("component", "task_handler"),
	}
}

// ListTasks handles GET /api/tasks/
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, MsgDatabaseError)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks))
}

// CreateTask handles POST /api/tasks/create/
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Create(r.Context(), input)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{
		Success: true,
		Task:    NewTaskResponse(task),
	})
}

// UpdateTask handles PUT /api/tasks/{id}/update/
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	input, ok := h.decodeTaskRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.Update(r.Context(), id, input)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskEnvelope{
		Success: true,
		Task:    NewTaskResponse(task),
	})
}

// ToggleTask handles PATCH /api/tasks/{id}/toggle/
func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	completed, err := h.taskService.Toggle(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ToggleResponse{
		Success:     true,
		IsCompleted: completed,
	})
}

// DeleteTask handles DELETE /api/tasks/{id}/delete/
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}

// pathID parses the {id} parameter. Ids that cannot name a task get the same
// 404 as a missing task.
func (h *TaskHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusNotFound, MsgTaskNotFound, err)
		return 0, false
	}
	return id, true
}

// decodeTaskRequest reads, logs and validates a create or update body.
// It writes the error response itself and reports whether to continue.
func (h *TaskHandler) decodeTaskRequest(w http.ResponseWriter, r *http.Request) (service.TaskInput, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidJSON, err)
		return service.TaskInput{}, false
	}
	log.Info("task request received",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("body", redact.String(string(body))))

	r.Body = io.NopCloser(bytes.NewReader(body))

	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidJSON, err)
		return service.TaskInput{}, false
	}

	if err := shared.ValidateRequest(req); err != nil {
		field, ok := shared.FirstInvalidField(err)
		if !ok {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, MsgInvalidTask, err)
			return service.TaskInput{}, false
		}
		HandleAPIError(w, r, domain.NewValidationError(field, "is required", domain.ErrMissingField), "")
		return service.TaskInput{}, false
	}

	return service.TaskInput{
		Name:        req.Name,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}, true
}
