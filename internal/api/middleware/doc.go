// Package middleware contains the HTTP middleware specific to this API:
// trace IDs with request-scoped loggers, request logging, security headers
// and the optional CSRF double-submit check. Generic middleware (request
// IDs, real IP, panic recovery) comes from chi.
package middleware
