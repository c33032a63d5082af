package search

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"perch/internal/faults"
	"perch/internal/media"
)

// FilesystemSearcher yields one item per regular file with a recognized
// media extension under Root.
//
// Traversal is depth-first. Symbolic links to directories are only descended
// when FollowSymlinks is set, and every directory is visited at most once by
// resolved real path, so link cycles terminate. Unreadable subdirectories
// are skipped rather than failing the whole enumeration.
type FilesystemSearcher struct {
	Root           string
	Extensions     media.ExtensionSet
	FollowSymlinks bool
}

func (s *FilesystemSearcher) Search(ctx context.Context, fn func(media.Item) error) error {
	info, err := os.Stat(s.Root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return faults.Wrap(faults.ErrPathNotFound, "search", "open root",
				fmt.Sprintf("directory %s does not exist", s.Root), err)
		}
		return faults.Wrap(faults.ErrTransient, "search", "open root", "cannot stat directory", err)
	}
	if !info.IsDir() {
		return faults.Wrap(faults.ErrValidation, "search", "open root",
			fmt.Sprintf("%s is not a directory", s.Root), nil)
	}

	visited := make(map[string]struct{})
	return s.walk(ctx, s.Root, "", visited, fn)
}

func (s *FilesystemSearcher) walk(ctx context.Context, dir, rel string, visited map[string]struct{}, fn func(media.Item) error) error {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil
	}
	if _, seen := visited[real]; seen {
		return nil
	}
	visited[real] = struct{}{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable directory: skip, per-item tolerance belongs downstream.
		return nil
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		full := filepath.Join(dir, entry.Name())
		childRel := filepath.Join(rel, entry.Name())

		switch {
		case entry.IsDir():
			if err := s.walk(ctx, full, childRel, visited, fn); err != nil {
				return err
			}
		case entry.Type()&fs.ModeSymlink != 0:
			if !s.FollowSymlinks {
				continue
			}
			target, err := os.Stat(full)
			if err != nil {
				continue
			}
			if target.IsDir() {
				if err := s.walk(ctx, full, childRel, visited, fn); err != nil {
					return err
				}
				continue
			}
			if err := s.yield(full, childRel, fn); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := s.yield(full, childRel, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *FilesystemSearcher) yield(path, rel string, fn func(media.Item) error) error {
	if !s.Extensions.Contains(path) {
		return nil
	}
	return fn(media.Item{
		Path:   path,
		Rel:    rel,
		Origin: media.OriginFilesystem,
	})
}
