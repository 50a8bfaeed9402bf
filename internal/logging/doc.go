// Package logging centralizes slog construction and the structured logging
// conventions used across tagtree: attribute helpers, standardized field
// names, a no-op logger for tests, and handlers for console and JSON output.
package logging
