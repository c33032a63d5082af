package search

import (
	"context"

	"perch/internal/catalog"
	"perch/internal/media"
)

// CatalogSearcher yields one item per usable catalog record.
//
// The catalog's internal storage layout (GUID folders) is never exposed:
// each item's Rel is the record's display file name, so organizing catalog
// items always produces a flat, human-readable layout.
type CatalogSearcher struct {
	Reader     catalog.Reader
	Extensions media.ExtensionSet
}

func (s *CatalogSearcher) Search(ctx context.Context, fn func(media.Item) error) error {
	return s.Reader.Enumerate(ctx, func(record *catalog.Record) error {
		if !s.Extensions.Contains(record.Path) {
			return nil
		}
		return fn(media.Item{
			Path:   record.Path,
			Rel:    record.FileName(),
			Origin: media.OriginCatalog,
			Record: record,
		})
	})
}
