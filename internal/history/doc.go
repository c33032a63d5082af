// Package history archives organize and sidecar run reports in SQLite.
//
// Each run lands as one row plus its per-item entries, so past runs can be
// listed and inspected from the CLI after the process exits. Retention is
// time-based; Prune drops runs older than the configured window.
package history
