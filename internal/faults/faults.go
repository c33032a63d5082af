package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCatalogUnavailable marks roots that do not contain a recognizable
	// catalog structure. Fatal for catalog-based runs.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrPathNotFound marks missing source or destination roots. Fatal.
	ErrPathNotFound = errors.New("path not found")
	// ErrValidation marks rejected inputs such as malformed filter patterns.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable configuration values.
	ErrConfiguration = errors.New("configuration error")
	// ErrConflictUnresolved marks a conflict the resolver could not settle,
	// such as exhausting rename candidates.
	ErrConflictUnresolved = errors.New("conflict unresolved")
	// ErrTransient marks per-item failures (IO errors, permission problems)
	// that are recorded without aborting the run.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether an error belongs to the startup class that must abort
// a run before any file is touched. Everything else is a per-item fault the
// organizer records and moves past.
func Fatal(err error) bool {
	switch {
	case errors.Is(err, ErrCatalogUnavailable),
		errors.Is(err, ErrPathNotFound),
		errors.Is(err, ErrValidation),
		errors.Is(err, ErrConfiguration):
		return true
	default:
		return false
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "fault"
	}
	return strings.Join(parts, ": ")
}
