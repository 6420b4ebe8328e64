// Package postgres provides the PostgreSQL implementation of the TaskStore
// defined in the internal/store package, together with the embedded goose
// migrations that own its schema. Connections go through the pgx stdlib
// driver and rows are scanned with sqlx.
package postgres
