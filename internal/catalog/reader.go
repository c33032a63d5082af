package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"perch/internal/faults"
)

// metadataFileName is the per-item metadata document inside each item folder.
const metadataFileName = "metadata.json"

// Problem describes an item folder the Reader could not turn into a Record.
type Problem struct {
	Folder string
	Reason string
}

// Reader enumerates records from an Eagle-style catalog root.
//
// Enumerate may be called repeatedly; every call re-scans the catalog from
// disk. OnProblem, when set, receives unusable item folders as they are
// encountered.
type Reader struct {
	Root           string
	IncludeDeleted bool
	OnProblem      func(Problem)
}

// IsCatalogRoot reports whether root looks like a catalog library
// (a directory containing an images/ subdirectory).
func IsCatalogRoot(root string) bool {
	info, err := os.Stat(filepath.Join(root, "images"))
	return err == nil && info.IsDir()
}

// Enumerate walks the catalog's item folders in name order and calls fn for
// every usable record. It returns ErrCatalogUnavailable when the root is not
// a recognizable catalog, the context error on cancellation, and otherwise
// the first error returned by fn.
func (r *Reader) Enumerate(ctx context.Context, fn func(*Record) error) error {
	imagesDir := filepath.Join(r.Root, "images")
	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return faults.Wrap(faults.ErrCatalogUnavailable, "catalog", "open library",
			fmt.Sprintf("no images directory under %s", r.Root), err)
	}

	// Name order keeps enumeration deterministic for a given catalog even
	// though downstream consumers must not rely on it.
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !entry.IsDir() {
			continue
		}
		folder := filepath.Join(imagesDir, entry.Name())
		record, reason := r.loadItem(folder)
		if record == nil {
			if reason != "" {
				r.problem(folder, reason)
			}
			continue
		}
		if err := fn(record); err != nil {
			return err
		}
	}
	return nil
}

// loadItem builds a Record from one item folder. A nil record with an empty
// reason means the item was filtered (deleted), not broken.
func (r *Reader) loadItem(folder string) (*Record, string) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Sprintf("read folder: %v", err)
	}

	var record *Record
	var candidates []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if strings.Contains(name, "_thumbnail") {
			continue
		}
		if name == metadataFileName {
			record, err = parseMetadata(filepath.Join(folder, name))
			if err != nil {
				return nil, fmt.Sprintf("parse %s: %v", metadataFileName, err)
			}
			continue
		}
		candidates = append(candidates, filepath.Join(folder, name))
	}

	if record == nil {
		return nil, "missing " + metadataFileName
	}
	asset := mainAsset(candidates)
	if asset == "" {
		return nil, "missing media file"
	}
	if record.IsDeleted && !r.IncludeDeleted {
		return nil, ""
	}

	record.Path = asset
	record.Dir = folder
	return record, ""
}

// mainAsset picks the asset to organize when an item folder holds several
// files. Raw captures (.heic, .dng) win over the derived .png the catalog
// keeps beside them; otherwise the lexically first candidate is used.
func mainAsset(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	sort.Strings(candidates)
	for _, raw := range []string{".heic", ".dng"} {
		for _, candidate := range candidates {
			if strings.ToLower(filepath.Ext(candidate)) != raw {
				continue
			}
			derived := candidate + ".png"
			for _, other := range candidates {
				if other == derived {
					return candidate
				}
			}
		}
	}
	return candidates[0]
}

func parseMetadata(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *Reader) problem(folder, reason string) {
	if r.OnProblem == nil {
		return
	}
	r.OnProblem(Problem{Folder: folder, Reason: reason})
}
