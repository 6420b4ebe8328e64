// Package config handles configuration loading, parsing, and validation
// from various sources (defaults, config files, environment variables). It
// provides type-safe access to application settings needed by different
// components while keeping configuration details separate from business logic.
//
// Environment variables use the TASKLIST_ prefix with underscores in place of
// dots, so database.url is read from TASKLIST_DATABASE_URL.
package config
