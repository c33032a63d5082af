package media

import "perch/internal/catalog"

// Origin identifies how an item was discovered.
type Origin string

const (
	// OriginCatalog marks items discovered through catalog metadata.
	OriginCatalog Origin = "catalog"
	// OriginFilesystem marks items discovered by raw directory traversal.
	OriginFilesystem Origin = "filesystem"
)

// Item is the unit the searchers emit and the filter and organizer consume.
//
// Path is always set. Rel is the root-relative path a mirroring organize run
// would reproduce under the destination. Record is nil for filesystem-origin
// items; catalog-origin items always carry one.
type Item struct {
	Path   string
	Rel    string
	Origin Origin
	Record *catalog.Record
}

// HasRecord reports whether catalog metadata is available for this item.
func (i Item) HasRecord() bool {
	return i.Record != nil
}
