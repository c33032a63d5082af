package organize_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"perch/internal/faults"
	"perch/internal/filter"
	"perch/internal/logging"
	"perch/internal/organize"
	"perch/internal/sidecar"
	"perch/internal/testsupport"
)

func runOrganize(t *testing.T, opts organize.Options) *organize.Result {
	t.Helper()
	result, err := organize.New(opts, logging.NewNop()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return result
}

func TestOrganizeMirrorsSourceLayout(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(source, "trips", "a.jpg"), []byte("a"))
	testsupport.WriteFile(t, filepath.Join(source, "b.mp4"), []byte("b"))
	testsupport.WriteFile(t, filepath.Join(source, "notes.txt"), []byte("skip me"))

	result := runOrganize(t, organize.Options{
		Source:      source,
		Destination: dest,
		Policy:      organize.PolicyRename,
	})

	if result.Counts[organize.OutcomeCopied] != 2 {
		t.Fatalf("expected 2 copies, got %+v", result.Counts)
	}
	if _, err := os.Stat(filepath.Join(dest, "trips", "a.jpg")); err != nil {
		t.Fatalf("mirrored path missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "b.mp4")); err != nil {
		t.Fatalf("top-level file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "notes.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("non-media file must not be copied")
	}
}

func TestOrganizeFlattenCollapsesToBasenames(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(source, "deep", "nested", "a.jpg"), []byte("a"))

	runOrganize(t, organize.Options{
		Source:      source,
		Destination: dest,
		Policy:      organize.PolicyRename,
		Flatten:     true,
	})

	if _, err := os.Stat(filepath.Join(dest, "a.jpg")); err != nil {
		t.Fatalf("flattened file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "deep")); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("flatten must not recreate source directories")
	}
}

func TestOrganizeSkipPolicyTouchesNothing(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(source, "a.jpg"), []byte("new"))
	testsupport.WriteFile(t, filepath.Join(dest, "a.jpg"), []byte("old"))

	result := runOrganize(t, organize.Options{
		Source:      source,
		Destination: dest,
		Policy:      organize.PolicySkip,
	})

	if result.Counts[organize.OutcomeSkippedConflict] != 1 {
		t.Fatalf("expected a conflict skip, got %+v", result.Counts)
	}
	if got := testsupport.ReadFile(t, filepath.Join(dest, "a.jpg")); string(got) != "old" {
		t.Fatalf("skip must leave the existing file alone, got %q", got)
	}
}

func TestOrganizeOverwritePolicyReplacesInPlace(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(source, "a.jpg"), []byte("new"))
	testsupport.WriteFile(t, filepath.Join(dest, "a.jpg"), []byte("old"))

	result := runOrganize(t, organize.Options{
		Source:      source,
		Destination: dest,
		Policy:      organize.PolicyOverwrite,
	})

	if result.Counts[organize.OutcomeOverwritten] != 1 {
		t.Fatalf("expected an overwrite, got %+v", result.Counts)
	}
	if got := testsupport.ReadFile(t, filepath.Join(dest, "a.jpg")); string(got) != "new" {
		t.Fatalf("overwrite must replace contents, got %q", got)
	}
	entries, err := os.ReadDir(dest)
	if err != nil {
		t.Fatal(err)
	}
	names := 0
	for _, entry := range entries {
		if entry.Name() != ".perch.lock" {
			names++
		}
	}
	if names != 1 {
		t.Fatalf("overwrite must not create extra files: %v", entries)
	}
}

func TestOrganizeRenamePolicyKeepsBothFiles(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(source, "a.jpg"), []byte("new"))
	testsupport.WriteFile(t, filepath.Join(dest, "a.jpg"), []byte("old"))

	result := runOrganize(t, organize.Options{
		Source:      source,
		Destination: dest,
		Policy:      organize.PolicyRename,
	})

	if result.Counts[organize.OutcomeRenamed] != 1 {
		t.Fatalf("expected a rename, got %+v", result.Counts)
	}
	if got := testsupport.ReadFile(t, filepath.Join(dest, "a.jpg")); string(got) != "old" {
		t.Fatal("rename must not disturb the existing file")
	}
	if got := testsupport.ReadFile(t, filepath.Join(dest, "a (1).jpg")); string(got) != "new" {
		t.Fatalf("renamed copy missing or wrong: %q", got)
	}
}

func TestOrganizeCatalogWritesSidecarsAtDestination(t *testing.T) {
	root := testsupport.WriteCatalog(t, t.TempDir(),
		testsupport.CatalogItem{
			ID: "AAA", Name: "pic", Ext: "jpg",
			Tags: []string{"portrait", "bw"}, Star: 4,
			Annotation: "a note", Content: []byte("jpeg"),
		},
	)
	dest := t.TempDir()

	result := runOrganize(t, organize.Options{
		Source:           root,
		Destination:      dest,
		Policy:           organize.PolicyRename,
		GenerateSidecars: true,
	})

	if result.Counts[organize.OutcomeCopied] != 1 {
		t.Fatalf("expected one copy, got %+v", result.Counts)
	}
	if _, err := os.Stat(filepath.Join(dest, "pic.jpg")); err != nil {
		t.Fatalf("catalog items must land under their display name: %v", err)
	}

	doc, err := sidecar.Parse(testsupport.ReadFile(t, filepath.Join(dest, "pic.xmp")))
	if err != nil {
		t.Fatalf("Parse sidecar: %v", err)
	}
	if len(doc.Tags) != 2 || doc.Tags[0] != "portrait" || doc.Tags[1] != "bw" {
		t.Fatalf("sidecar tags wrong: %+v", doc.Tags)
	}
	if doc.Rating != 4 {
		t.Fatalf("sidecar rating wrong: %d", doc.Rating)
	}
	if doc.Annotation != "a note" {
		t.Fatalf("sidecar annotation wrong: %q", doc.Annotation)
	}
	if doc.Identifier != "AAA" {
		t.Fatalf("sidecar identifier wrong: %q", doc.Identifier)
	}
}

func TestOrganizeFilterSkipsAreRecorded(t *testing.T) {
	root := testsupport.WriteCatalog(t, t.TempDir(),
		testsupport.CatalogItem{ID: "AAA", Name: "keep", Ext: "jpg", Tags: []string{"wanted"}},
		testsupport.CatalogItem{ID: "BBB", Name: "drop", Ext: "jpg", Tags: []string{"other"}},
	)
	dest := t.TempDir()

	f, err := filter.New([]string{"wanted"}, false, "")
	if err != nil {
		t.Fatalf("filter.New: %v", err)
	}
	result := runOrganize(t, organize.Options{
		Source:      root,
		Destination: dest,
		Policy:      organize.PolicyRename,
		Filter:      f,
	})

	if result.Counts[organize.OutcomeCopied] != 1 || result.Counts[organize.OutcomeSkippedFilter] != 1 {
		t.Fatalf("unexpected counts %+v", result.Counts)
	}
	if _, err := os.Stat(filepath.Join(dest, "drop.jpg")); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("filtered item must not be copied")
	}
}

func TestOrganizeDryRunWritesNothing(t *testing.T) {
	source := t.TempDir()
	dest := filepath.Join(t.TempDir(), "dest")
	testsupport.WriteFile(t, filepath.Join(source, "a.jpg"), []byte("a"))

	result := runOrganize(t, organize.Options{
		Source:      source,
		Destination: dest,
		Policy:      organize.PolicyRename,
		DryRun:      true,
	})

	if result.Counts[organize.OutcomeCopied] != 1 {
		t.Fatalf("dry run must still report outcomes, got %+v", result.Counts)
	}
	if _, err := os.Stat(dest); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("dry run must not create the destination")
	}
}

func TestOrganizeMissingSourceFailsFast(t *testing.T) {
	_, err := organize.New(organize.Options{
		Source:      filepath.Join(t.TempDir(), "absent"),
		Destination: t.TempDir(),
		Policy:      organize.PolicyRename,
	}, logging.NewNop()).Run(context.Background())
	if !errors.Is(err, faults.ErrPathNotFound) {
		t.Fatalf("expected ErrPathNotFound, got %v", err)
	}
}

func TestOrganizePerItemFailureDoesNotAbortRun(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(source, "blocked", "a.jpg"), []byte("a"))
	testsupport.WriteFile(t, filepath.Join(source, "ok.jpg"), []byte("b"))
	// A file where the mirrored directory must go forces a per-item failure.
	testsupport.WriteFile(t, filepath.Join(dest, "blocked"), []byte("in the way"))

	result := runOrganize(t, organize.Options{
		Source:      source,
		Destination: dest,
		Policy:      organize.PolicySkip,
	})

	if result.Counts[organize.OutcomeError] != 1 {
		t.Fatalf("expected one error entry, got %+v", result.Counts)
	}
	if result.Counts[organize.OutcomeCopied] != 1 {
		t.Fatalf("healthy items must still be copied, got %+v", result.Counts)
	}
}

func TestOrganizePreservesModTime(t *testing.T) {
	source := t.TempDir()
	dest := t.TempDir()
	src := filepath.Join(source, "a.jpg")
	testsupport.WriteFile(t, src, []byte("a"))
	stamp := time.Date(2020, 3, 14, 9, 26, 53, 0, time.UTC)
	if err := os.Chtimes(src, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	runOrganize(t, organize.Options{
		Source:          source,
		Destination:     dest,
		Policy:          organize.PolicyRename,
		PreserveModTime: true,
	})

	info, err := os.Stat(filepath.Join(dest, "a.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(stamp) {
		t.Fatalf("mod time not preserved: got %v want %v", info.ModTime(), stamp)
	}
}

func TestOrganizeCancellationStopsRun(t *testing.T) {
	source := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(source, "a.jpg"), []byte("a"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := organize.New(organize.Options{
		Source:      source,
		Destination: t.TempDir(),
		Policy:      organize.PolicyRename,
	}, logging.NewNop()).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result == nil {
		t.Fatal("partial result must still be returned")
	}
	if result.Counts[organize.OutcomeCopied] != 0 {
		t.Fatalf("no item may be reported copied after cancellation, got %+v", result.Counts)
	}
}

func TestGeneratorWritesSidecarsInPlace(t *testing.T) {
	root := testsupport.WriteCatalog(t, t.TempDir(),
		testsupport.CatalogItem{
			ID: "AAA", Name: "pic", Ext: "jpg",
			Tags: []string{"portrait", "bw"}, Star: 4, Content: []byte("jpeg"),
		},
	)

	gen := organize.NewGenerator(organize.Options{Source: root}, logging.NewNop())
	result, err := gen.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Counts[organize.OutcomeWritten] != 1 {
		t.Fatalf("expected one written entry, got %+v", result.Counts)
	}

	entry := result.Entries[0]
	doc, err := sidecar.Parse(testsupport.ReadFile(t, entry.Destination))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(doc.Tags) != 2 || doc.Rating != 4 {
		t.Fatalf("generated sidecar wrong: %+v", doc)
	}
	if filepath.Dir(entry.Destination) != filepath.Dir(entry.Source) {
		t.Fatal("generator must write beside the asset")
	}
}

func TestGeneratorRejectsPlainDirectories(t *testing.T) {
	gen := organize.NewGenerator(organize.Options{Source: t.TempDir()}, logging.NewNop())
	_, err := gen.Run(context.Background())
	if !errors.Is(err, faults.ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestGeneratorDryRunWritesNothing(t *testing.T) {
	root := testsupport.WriteCatalog(t, t.TempDir(),
		testsupport.CatalogItem{ID: "AAA", Name: "pic", Ext: "jpg", Tags: []string{"x"}, Content: []byte("jpeg")},
	)

	gen := organize.NewGenerator(organize.Options{Source: root, DryRun: true}, logging.NewNop())
	result, err := gen.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Counts[organize.OutcomeWritten] != 1 {
		t.Fatalf("dry run must still count, got %+v", result.Counts)
	}
	if _, err := os.Stat(result.Entries[0].Destination); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("dry run must not write sidecars")
	}
}
