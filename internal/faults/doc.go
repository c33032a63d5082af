// Package faults defines the error taxonomy shared by the search, organize,
// and sidecar subsystems.
//
// Sentinel markers classify failures into the two propagation classes the
// CLI cares about: startup faults (bad catalog or filesystem roots, bad
// configuration) that must abort a run before any file is touched, and
// per-item faults that are recorded in the run report while processing
// continues. The Wrap helper stamps stage and operation context onto errors
// so log lines and report rows stay uniform across subsystems.
//
// Tag new failure paths with one of the exported markers so callers can keep
// classifying errors with errors.Is instead of string matching.
package faults
