package api

import (
	"net/http"

	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/redact"
	"github.com/phrazzld/tasklist-api/internal/service"
)

// HealthHandler serves the health and liveness endpoints.
type HealthHandler struct {
	taskService service.TaskService
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(taskService service.TaskService) *HealthHandler {
	return &HealthHandler{taskService: taskService}
}

// Health handles GET /health/ with a store round-trip.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.CheckHealth(r.Context()); err != nil {
		logger.FromContext(r.Context()).Error("health check failed", "error", redact.Error(err))
		shared.RespondWithJSON(w, r, http.StatusInternalServerError, HealthResponse{
			Status: "unhealthy",
			Error:  redact.Error(err),
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Database: "connected",
		Server:   "running",
	})
}

// Ping handles GET /ping/ without touching the store.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, PingResponse{
		Status:  "running",
		Message: "This endpoint works without database connection",
	})
}
