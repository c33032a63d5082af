package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckDirectoryAccessOK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass, got %+v", result)
	}
}

func TestCheckDirectoryAccessNotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatalf("expected failure, got %+v", result)
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccessNotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatalf("expected failure, got %+v", result)
	}
}

func TestCheckSourceReadable(t *testing.T) {
	if result := CheckSourceReadable(t.TempDir()); !result.Passed {
		t.Fatalf("expected pass, got %+v", result)
	}
	if result := CheckSourceReadable(filepath.Join(t.TempDir(), "gone")); result.Passed {
		t.Fatalf("expected failure, got %+v", result)
	}
}

func TestCheckFreeSpace(t *testing.T) {
	dir := t.TempDir()
	if result := CheckFreeSpace(dir, 1); !result.Passed {
		t.Fatalf("one MiB should be available in a temp dir: %+v", result)
	}
	// A floor nothing can satisfy.
	if result := CheckFreeSpace(dir, 1<<40); result.Passed {
		t.Fatalf("expected free-space failure, got %+v", result)
	}
}

func TestRunAllCollectsApplicableChecks(t *testing.T) {
	dir := t.TempDir()
	results := RunAll(Checks{Source: dir, Destination: dir, FreeSpaceFloorMiB: 1})
	if len(results) != 3 {
		t.Fatalf("expected 3 checks, got %+v", results)
	}
	if !AllPassed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}

	failing := RunAll(Checks{Destination: filepath.Join(dir, "missing")})
	if AllPassed(failing) {
		t.Fatalf("expected failure, got %+v", failing)
	}
}
