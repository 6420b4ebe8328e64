package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/tasklist-api/internal/api"
	apiMiddleware "github.com/phrazzld/tasklist-api/internal/api/middleware"
	"github.com/phrazzld/tasklist-api/web"
)

// setupRouter creates and configures the application router with all routes and middleware.
// Paths keep their trailing slashes, and task ids must be numeric; any
// other id falls through to the 404 handler.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(app.metrics.Middleware)
	r.Use(apiMiddleware.SecurityHeaders)
	if app.config.Server.CSRFEnabled {
		r.Use(apiMiddleware.CSRFProtect)
	}

	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.MethodNotAllowed)

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	healthHandler := api.NewHealthHandler(app.taskService)
	pageHandler := api.NewPageHandler(app.templates, app.config.Server.CSRFEnabled)

	r.Get("/", pageHandler.Index)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)
		r.Post("/create/", taskHandler.CreateTask)
		r.Put("/{id:[0-9]+}/update/", taskHandler.UpdateTask)
		r.Patch("/{id:[0-9]+}/toggle/", taskHandler.ToggleTask)
		r.Delete("/{id:[0-9]+}/delete/", taskHandler.DeleteTask)
	})

	r.Get("/health/", healthHandler.Health)
	r.Get("/ping/", healthHandler.Ping)
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	return r
}
