// Package errors provides structured error handling for the piper engine.
// It implements error types with machine-readable codes so callers can
// distinguish construction failures from runtime routing failures.
package errors
