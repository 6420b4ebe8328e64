// Package migrations runs goose schema migrations from an embedded file
// system against an open database handle. Each store package ships its own
// Set so the dialect and the SQL always travel together.
package migrations
