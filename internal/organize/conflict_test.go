package organize

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"perch/internal/faults"
)

func TestParsePolicy(t *testing.T) {
	for _, value := range []string{"skip", "Overwrite", " rename "} {
		if _, err := ParsePolicy(value); err != nil {
			t.Errorf("ParsePolicy(%q): %v", value, err)
		}
	}
	if _, err := ParsePolicy("clobber"); !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown policy, got %v", err)
	}
}

func TestResolveConflictSkip(t *testing.T) {
	path, outcome, err := resolveConflict("/dest/x.jpg", PolicySkip)
	if err != nil || outcome != OutcomeSkippedConflict || path != "" {
		t.Fatalf("skip: path=%q outcome=%q err=%v", path, outcome, err)
	}
}

func TestResolveConflictOverwrite(t *testing.T) {
	path, outcome, err := resolveConflict("/dest/x.jpg", PolicyOverwrite)
	if err != nil || outcome != OutcomeOverwritten || path != "/dest/x.jpg" {
		t.Fatalf("overwrite: path=%q outcome=%q err=%v", path, outcome, err)
	}
}

func TestRenameNeverReCollides(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"x.jpg", "x (1).jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	path, outcome, err := resolveConflict(filepath.Join(dir, "x.jpg"), PolicyRename)
	if err != nil {
		t.Fatalf("resolveConflict: %v", err)
	}
	if outcome != OutcomeRenamed {
		t.Fatalf("expected renamed outcome, got %q", outcome)
	}
	if filepath.Base(path) != "x (2).jpg" {
		t.Fatalf("expected x (2).jpg, got %s", filepath.Base(path))
	}
}

func TestRenameKeepsExtensionPlacement(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "photo.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	path, _, err := resolveConflict(filepath.Join(dir, "photo.jpg"), PolicyRename)
	if err != nil {
		t.Fatalf("resolveConflict: %v", err)
	}
	if filepath.Base(path) != "photo (1).jpg" {
		t.Fatalf("suffix must land before the extension, got %s", filepath.Base(path))
	}
}
