package catalog_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"perch/internal/catalog"
	"perch/internal/faults"
	"perch/internal/testsupport"
)

func collect(t *testing.T, reader *catalog.Reader) []*catalog.Record {
	t.Helper()
	var records []*catalog.Record
	if err := reader.Enumerate(context.Background(), func(r *catalog.Record) error {
		records = append(records, r)
		return nil
	}); err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	return records
}

func TestEnumerateYieldsRecordsWithPaths(t *testing.T) {
	root := testsupport.WriteCatalog(t, t.TempDir(),
		testsupport.CatalogItem{ID: "AAA", Name: "sunset", Ext: "jpg", Tags: []string{"travel"}, Star: 4},
		testsupport.CatalogItem{ID: "BBB", Name: "clip", Ext: "mp4"},
	)

	records := collect(t, &catalog.Reader{Root: root})
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	first := records[0]
	if first.ID != "AAA" || first.Star != 4 {
		t.Fatalf("unexpected record %+v", first)
	}
	if first.Path == "" || first.Dir == "" {
		t.Fatalf("reader must fill Path and Dir: %+v", first)
	}
	if got := first.FileName(); got != "sunset.jpg" {
		t.Fatalf("FileName() = %q", got)
	}
}

func TestEnumerateSkipsDeletedUnlessIncluded(t *testing.T) {
	root := testsupport.WriteCatalog(t, t.TempDir(),
		testsupport.CatalogItem{ID: "AAA", Name: "keep", Ext: "jpg"},
		testsupport.CatalogItem{ID: "BBB", Name: "trash", Ext: "jpg", IsDeleted: true},
	)

	if got := len(collect(t, &catalog.Reader{Root: root})); got != 1 {
		t.Fatalf("expected deleted item skipped, got %d records", got)
	}
	if got := len(collect(t, &catalog.Reader{Root: root, IncludeDeleted: true})); got != 2 {
		t.Fatalf("expected deleted item included, got %d records", got)
	}
}

func TestEnumerateIgnoresThumbnailsAndPrefersRawOverDerived(t *testing.T) {
	root := testsupport.WriteCatalog(t, t.TempDir(),
		testsupport.CatalogItem{
			ID: "AAA", Name: "shot", Ext: "heic",
			ExtraFiles: map[string][]byte{
				"shot.heic.png":      []byte("derived"),
				"shot_thumbnail.png": []byte("thumb"),
			},
		},
	)

	records := collect(t, &catalog.Reader{Root: root})
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got := records[0].Path; filepath.Ext(got) != ".heic" {
		t.Fatalf("expected raw asset selected, got %q", got)
	}
}

func TestEnumerateReportsBrokenFoldersWithoutAborting(t *testing.T) {
	root := testsupport.WriteCatalog(t, t.TempDir(),
		testsupport.CatalogItem{ID: "AAA", Name: "good", Ext: "jpg"},
	)
	testsupport.WriteFile(t, filepath.Join(root, "images", "BAD.info", "metadata.json"), []byte("{not json"))

	var problems []catalog.Problem
	reader := &catalog.Reader{Root: root, OnProblem: func(p catalog.Problem) { problems = append(problems, p) }}
	records := collect(t, reader)
	if len(records) != 1 {
		t.Fatalf("expected broken folder skipped, got %d records", len(records))
	}
	if len(problems) != 1 {
		t.Fatalf("expected 1 problem report, got %d", len(problems))
	}
}

func TestEnumerateFailsWithoutImagesDir(t *testing.T) {
	reader := &catalog.Reader{Root: t.TempDir()}
	err := reader.Enumerate(context.Background(), func(*catalog.Record) error { return nil })
	if !errors.Is(err, faults.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestEnumerateIsRestartable(t *testing.T) {
	root := testsupport.WriteCatalog(t, t.TempDir(),
		testsupport.CatalogItem{ID: "AAA", Name: "a", Ext: "jpg"},
		testsupport.CatalogItem{ID: "BBB", Name: "b", Ext: "jpg"},
	)
	reader := &catalog.Reader{Root: root}
	first := collect(t, reader)
	second := collect(t, reader)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected both passes to yield 2 records, got %d and %d", len(first), len(second))
	}
}

func TestEnumerateHonorsCancellation(t *testing.T) {
	root := testsupport.WriteCatalog(t, t.TempDir(),
		testsupport.CatalogItem{ID: "AAA", Name: "a", Ext: "jpg"},
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := (&catalog.Reader{Root: root}).Enumerate(ctx, func(*catalog.Record) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRecordModTime(t *testing.T) {
	record := catalog.Record{ModificationTime: 1700000000000}
	want := time.UnixMilli(1700000000000).UTC()
	if got := record.ModTime(); !got.Equal(want) {
		t.Fatalf("ModTime() = %v, want %v", got, want)
	}
	if !(&catalog.Record{}).ModTime().IsZero() {
		t.Fatal("expected zero time for empty record")
	}
}

func TestIsCatalogRoot(t *testing.T) {
	root := testsupport.WriteCatalog(t, t.TempDir(), testsupport.CatalogItem{ID: "AAA", Name: "a", Ext: "jpg"})
	if !catalog.IsCatalogRoot(root) {
		t.Fatal("expected catalog root detection")
	}
	if catalog.IsCatalogRoot(t.TempDir()) {
		t.Fatal("plain directory misdetected as catalog")
	}
}
