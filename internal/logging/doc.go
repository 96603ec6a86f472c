// Package logging assembles structured slog loggers and formatting helpers
// used across the studio services.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so pipeline code tags log lines with
// project and task identifiers consistently. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging
