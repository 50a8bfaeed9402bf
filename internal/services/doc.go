// Package services provides the shared error classification used across the
// tool: sentinel markers, a Wrap helper that attaches operation context, and
// the mapping from classified errors to process exit codes. It also carries
// per-run identifiers through context for structured logging.
package services
