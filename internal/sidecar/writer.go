package sidecar

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"perch/internal/faults"
)

// Writer persists documents beside media files.
type Writer struct {
	// MergeExisting folds fields from an on-disk sidecar into documents
	// that leave them empty. A sidecar that fails to parse is replaced.
	MergeExisting bool
}

// Write renders doc and places it at the sidecar path for mediaPath,
// returning that path. The packet is staged in a temp file in the target
// directory and renamed into place, so readers never observe a partial
// sidecar.
func (w Writer) Write(doc Document, mediaPath string) (string, error) {
	path := PathFor(mediaPath)

	if w.MergeExisting {
		existing, err := os.ReadFile(path)
		switch {
		case err == nil:
			if onDisk, perr := Parse(existing); perr == nil {
				doc = Merge(onDisk, doc)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return "", faults.Wrap(faults.ErrTransient, "sidecar", "read existing",
				fmt.Sprintf("cannot read %s", path), err)
		}
	}

	if err := writeAtomic(path, Render(doc)); err != nil {
		return "", err
	}
	return path, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".perch-sidecar-*")
	if err != nil {
		return faults.Wrap(faults.ErrTransient, "sidecar", "stage", "cannot create temp file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return faults.Wrap(faults.ErrTransient, "sidecar", "stage", "cannot write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return faults.Wrap(faults.ErrTransient, "sidecar", "stage", "cannot close temp file", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return faults.Wrap(faults.ErrTransient, "sidecar", "stage", "cannot set permissions", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return faults.Wrap(faults.ErrTransient, "sidecar", "commit",
			fmt.Sprintf("cannot move sidecar into place at %s", path), err)
	}
	return nil
}
