package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/redact"
	"github.com/phrazzld/tasklist-api/internal/service"
	"github.com/phrazzld/tasklist-api/internal/store"
)

// Client-facing error messages.
const (
	MsgInvalidJSON      = "Invalid JSON"
	MsgTaskNotFound     = "Task not found"
	MsgMissingField     = "Missing required field: "
	MsgInvalidDate      = "Invalid date format: "
	MsgInvalidTask      = "Invalid task data"
	MsgDatabaseError    = "Database error: "
	MsgMethodNotAllowed = "Method not allowed"
	MsgRouteNotFound    = "Not found"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage returns the client-facing text for err. Unexpected errors are
// reported by their redacted text.
func ErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return MsgTaskNotFound

	case errors.As(err, &validationErr) && errors.Is(err, domain.ErrMissingField):
		return MsgMissingField + validationErr.Field

	case errors.As(err, &validationErr) && errors.Is(err, domain.ErrInvalidDate):
		return MsgInvalidDate + validationErr.Message

	case errors.As(err, &validationErr):
		return validationErr.Error()

	case errors.Is(err, store.ErrInvalidEntity):
		return MsgInvalidTask

	default:
		return redact.Error(err)
	}
}

// HandleAPIError writes the error response for err. A non-empty prefix is
// prepended to the message of 5xx responses.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, prefix string) {
	status := MapErrorToStatusCode(err)
	message := ErrorMessage(err)
	if status >= http.StatusInternalServerError && prefix != "" {
		message = prefix + message
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// MethodNotAllowed responds with 405 for a known path used with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}

// NotFound responds with 404 for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, MsgRouteNotFound)
}
