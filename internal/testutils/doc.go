// Package testutils provides testing utilities for the tasklist API.
//
// This package contains helpers for:
//
//   - opening a migrated SQLite database in a temporary directory
//   - creating and inserting test tasks
//   - executing JSON requests against an http.Handler
//   - asserting JSON error responses
//
// # Database
//
//	db, taskStore := testutils.NewSQLiteTaskStore(t)
//	task := testutils.MustInsertTask(ctx, t, taskStore, "groceries", "2024-01-01")
//
// # Requests
//
//	rec := testutils.DoJSONRequest(t, handler, http.MethodPost, "/api/tasks/create/", body)
//	testutils.AssertErrorResponse(t, rec, http.StatusBadRequest, "Missing required field: name")
package testutils
