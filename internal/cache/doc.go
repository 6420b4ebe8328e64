// Package cache defines a small byte-oriented cache abstraction used to hold
// the serialized task listing between requests. A cache is never a system of
// record: entries may vanish at any time and callers must fall back to the
// store.
package cache
