// Package shared holds the pieces used by both the API handlers and the
// middleware: trace ID context helpers, JSON request decoding and
// validation, and the JSON response envelopes.
package shared
