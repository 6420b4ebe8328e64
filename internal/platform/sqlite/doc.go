// Package sqlite provides an embedded, pure-Go TaskStore backed by
// modernc.org/sqlite. It is the default store for local development and the
// store used by the end-to-end router tests.
//
// Dates and timestamps are stored as TEXT in fixed-width UTC layouts so that
// lexical order matches chronological order and the driver never has to
// guess at time parsing.
package sqlite
