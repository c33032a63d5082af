package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"perch/internal/catalog"
)

// CatalogItem describes one fixture item to place in a test catalog.
type CatalogItem struct {
	ID         string
	Name       string
	Ext        string
	Tags       []string
	Star       int
	Annotation string
	URL        string
	IsDeleted  bool
	ModMillis  int64
	Content    []byte
	// ExtraFiles are written into the item folder verbatim (thumbnails,
	// derived previews).
	ExtraFiles map[string][]byte
}

// WriteCatalog lays out an Eagle-style library under root with the given
// items and returns root for convenience.
func WriteCatalog(t testing.TB, root string, items ...CatalogItem) string {
	t.Helper()

	for _, item := range items {
		folder := filepath.Join(root, "images", item.ID+".info")
		if err := os.MkdirAll(folder, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", folder, err)
		}

		record := catalog.Record{
			ID:               item.ID,
			Name:             item.Name,
			Ext:              item.Ext,
			Tags:             item.Tags,
			Star:             item.Star,
			Annotation:       item.Annotation,
			URL:              item.URL,
			IsDeleted:        item.IsDeleted,
			ModificationTime: item.ModMillis,
			Size:             int64(len(item.Content)),
		}
		meta, err := json.Marshal(&record)
		if err != nil {
			t.Fatalf("marshal metadata for %s: %v", item.ID, err)
		}
		WriteFile(t, filepath.Join(folder, "metadata.json"), meta)

		content := item.Content
		if content == nil {
			content = []byte(item.ID)
		}
		fileName := item.Name + "." + item.Ext
		WriteFile(t, filepath.Join(folder, fileName), content)

		for name, data := range item.ExtraFiles {
			WriteFile(t, filepath.Join(folder, name), data)
		}
	}
	return root
}
