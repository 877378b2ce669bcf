// Package logging assembles the structured slog loggers used across inkwell.
//
// It owns the console and JSON handlers, centralizes level parsing, and
// exposes attribute helpers so pipeline code tags log lines with run IDs,
// item indices, and stage names consistently. A no-op logger is provided for
// tests and wiring code that cannot fail.
package logging
