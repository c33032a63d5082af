package search

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"perch/internal/catalog"
	"perch/internal/faults"
	"perch/internal/media"
)

// Searcher produces a lazy sequence of media items under a root.
type Searcher interface {
	// Search calls fn for every discovered item. Calling Search again
	// re-enumerates from scratch. The first error returned by fn stops the
	// traversal and is returned unchanged.
	Search(ctx context.Context, fn func(media.Item) error) error
}

// Options carries the enumeration knobs shared by both searcher variants.
type Options struct {
	Extensions     []string
	FollowSymlinks bool
	IncludeDeleted bool
	OnProblem      func(catalog.Problem)
}

// ForRoot returns the searcher matching the root's detected origin: a
// CatalogSearcher when root looks like a catalog library, otherwise a
// FilesystemSearcher. Missing roots fail with ErrPathNotFound.
func ForRoot(root string, opts Options) (Searcher, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, faults.Wrap(faults.ErrPathNotFound, "search", "inspect root",
				fmt.Sprintf("source %s does not exist", root), err)
		}
		return nil, faults.Wrap(faults.ErrTransient, "search", "inspect root", "cannot stat source", err)
	}
	if !info.IsDir() {
		return nil, faults.Wrap(faults.ErrValidation, "search", "inspect root",
			fmt.Sprintf("source %s is not a directory", root), nil)
	}

	extensions := media.NewExtensionSet(opts.Extensions)
	if catalog.IsCatalogRoot(root) {
		return &CatalogSearcher{
			Reader: catalog.Reader{
				Root:           root,
				IncludeDeleted: opts.IncludeDeleted,
				OnProblem:      opts.OnProblem,
			},
			Extensions: extensions,
		}, nil
	}
	return &FilesystemSearcher{
		Root:           root,
		Extensions:     extensions,
		FollowSymlinks: opts.FollowSymlinks,
	}, nil
}
