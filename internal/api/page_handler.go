package api

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasklist-api/internal/api/middleware"
	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/web"
)

// PageTitle is the title of the task board page.
const PageTitle = "Task Manager"

// PageHandler renders the task board shell.
type PageHandler struct {
	templates   *template.Template
	csrfEnabled bool
}

// NewPageHandler creates a PageHandler. When csrfEnabled is set the page
// issues the CSRF cookie that the board script echoes back.
func NewPageHandler(templates *template.Template, csrfEnabled bool) *PageHandler {
	return &PageHandler{
		templates:   templates,
		csrfEnabled: csrfEnabled,
	}
}

// Index handles GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := web.PageData{Title: PageTitle}
	if h.csrfEnabled {
		data.CSRFToken = middleware.EnsureCSRFCookie(w, r)
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, web.IndexTemplate, data); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to render page", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Warn("failed to write page", "error", err)
	}
}
