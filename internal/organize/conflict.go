package organize

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"perch/internal/faults"
)

// ConflictPolicy decides what happens when a destination path already exists.
// The policy applies run-wide.
type ConflictPolicy string

const (
	PolicySkip      ConflictPolicy = "skip"
	PolicyOverwrite ConflictPolicy = "overwrite"
	PolicyRename    ConflictPolicy = "rename"
)

// ParsePolicy validates a user-supplied policy string.
func ParsePolicy(value string) (ConflictPolicy, error) {
	switch ConflictPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case PolicySkip:
		return PolicySkip, nil
	case PolicyOverwrite:
		return PolicyOverwrite, nil
	case PolicyRename:
		return PolicyRename, nil
	default:
		return "", faults.Wrap(faults.ErrValidation, "organize", "parse conflict policy",
			fmt.Sprintf("unknown conflict policy %q (want skip, overwrite, or rename)", value), nil)
	}
}

const maxRenameAttempts = 10000

// resolveConflict is consulted only when desired already exists. It returns
// the path to write to and the outcome the entry should carry; a skip returns
// an empty path. Beyond existence probes it has no side effects.
func resolveConflict(desired string, policy ConflictPolicy) (string, Outcome, error) {
	switch policy {
	case PolicySkip:
		return "", OutcomeSkippedConflict, nil
	case PolicyOverwrite:
		return desired, OutcomeOverwritten, nil
	case PolicyRename:
		renamed, err := nextFreePath(desired)
		if err != nil {
			return "", OutcomeError, err
		}
		return renamed, OutcomeRenamed, nil
	default:
		return "", OutcomeError, faults.Wrap(faults.ErrValidation, "organize", "resolve conflict",
			fmt.Sprintf("unknown conflict policy %q", policy), nil)
	}
}

// nextFreePath inserts " (N)" before the extension, probing N upward from 1
// until a free name is found: photo.jpg, photo (1).jpg, photo (2).jpg.
func nextFreePath(desired string) (string, error) {
	ext := filepath.Ext(desired)
	stem := strings.TrimSuffix(desired, ext)
	for attempt := 1; attempt <= maxRenameAttempts; attempt++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, attempt, ext)
		if _, err := os.Lstat(candidate); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return candidate, nil
			}
			return "", faults.Wrap(faults.ErrTransient, "organize", "probe rename candidate",
				fmt.Sprintf("cannot stat %s", candidate), err)
		}
	}
	return "", faults.Wrap(faults.ErrConflictUnresolved, "organize", "allocate renamed path",
		fmt.Sprintf("exhausted rename slots for %s", desired), nil)
}
