// Package logging assembles the structured slog loggers shared by the perch
// CLI and the organize/sidecar subsystems.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so run code can automatically
// tag log lines with run IDs, stages, and the item being processed. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
