package organize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"perch/internal/faults"
	"perch/internal/fileutil"
	"perch/internal/logging"
	"perch/internal/media"
	"perch/internal/preflight"
	"perch/internal/search"
	"perch/internal/sidecar"
)

const lockFileName = ".perch.lock"

// Organizer copies filtered media from a source into a destination tree.
type Organizer struct {
	opts   Options
	logger *slog.Logger
}

// New constructs an organizer for a fixed set of options.
func New(opts Options, logger *slog.Logger) *Organizer {
	return &Organizer{opts: opts, logger: logging.NewComponentLogger(logger, "organizer")}
}

// Run executes the organize pass. Startup-level failures return an error
// before any file is touched; per-item failures land in the Result as error
// entries and the run continues. Cancellation stops the run before the next
// item.
func (o *Organizer) Run(ctx context.Context) (*Result, error) {
	searcher, err := search.ForRoot(o.opts.Source, search.Options{
		Extensions:     o.opts.Extensions,
		FollowSymlinks: o.opts.FollowSymlinks,
		IncludeDeleted: o.opts.IncludeDeleted,
	})
	if err != nil {
		return nil, err
	}

	if !o.opts.DryRun {
		if err := os.MkdirAll(o.opts.Destination, 0o755); err != nil {
			return nil, faults.Wrap(faults.ErrConfiguration, "organize", "create destination",
				fmt.Sprintf("cannot create %s", o.opts.Destination), err)
		}
		checks := preflight.RunAll(preflight.Checks{
			Source:            o.opts.Source,
			Destination:       o.opts.Destination,
			FreeSpaceFloorMiB: o.opts.FreeSpaceFloorMiB,
		})
		if !preflight.AllPassed(checks) {
			return nil, faults.Wrap(faults.ErrValidation, "organize", "preflight",
				describeFailures(checks), nil)
		}

		lock := flock.New(filepath.Join(o.opts.Destination, lockFileName))
		locked, err := lock.TryLock()
		if err != nil {
			return nil, faults.Wrap(faults.ErrTransient, "organize", "lock destination",
				"cannot acquire destination lock", err)
		}
		if !locked {
			return nil, faults.Wrap(faults.ErrTransient, "organize", "lock destination",
				fmt.Sprintf("another run holds %s", o.opts.Destination), nil)
		}
		defer lock.Unlock()
	}

	result := newResult("organize")
	defer result.finish()

	ctx = logging.WithRunID(ctx, result.RunID)
	logger := logging.WithContext(ctx, o.logger)
	logger.Info("starting organize run",
		logging.String("source", o.opts.Source),
		logging.String("destination", o.opts.Destination),
		logging.Bool("dry_run", o.opts.DryRun))

	searchErr := searcher.Search(ctx, func(item media.Item) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !o.opts.Filter.Accepts(item) {
			result.record(Entry{Outcome: OutcomeSkippedFilter, Source: item.Path})
			return nil
		}
		return o.processItem(ctx, result, item)
	})

	logger.Info("organize run finished",
		logging.Int("items", len(result.Entries)),
		logging.Int("errors", result.ErrorCount()))
	if searchErr != nil {
		return result, searchErr
	}
	return result, nil
}

// processItem handles one accepted item. Only fatal faults propagate; every
// other failure becomes an error entry and the run continues.
func (o *Organizer) processItem(ctx context.Context, result *Result, item media.Item) error {
	logger := logging.WithContext(logging.WithItem(ctx, item.Path), o.logger)

	rel := item.Rel
	if o.opts.Flatten {
		rel = filepath.Base(rel)
	}
	destPath := filepath.Join(o.opts.Destination, rel)

	outcome := OutcomeCopied
	if _, err := os.Lstat(destPath); err == nil {
		resolved, resolvedOutcome, err := resolveConflict(destPath, o.opts.Policy)
		if err != nil {
			if faults.Fatal(err) {
				return err
			}
			result.record(Entry{Outcome: OutcomeError, Source: item.Path, Destination: destPath, Detail: err.Error()})
			return nil
		}
		if resolvedOutcome == OutcomeSkippedConflict {
			result.record(Entry{Outcome: OutcomeSkippedConflict, Source: item.Path, Destination: destPath})
			return nil
		}
		destPath = resolved
		outcome = resolvedOutcome
	}

	if o.opts.DryRun {
		result.record(Entry{Outcome: outcome, Source: item.Path, Destination: destPath, Detail: "dry run"})
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		result.record(Entry{Outcome: OutcomeError, Source: item.Path, Destination: destPath,
			Detail: fmt.Sprintf("create directory: %v", err)})
		return nil
	}

	copyFn := fileutil.CopyFile
	if o.opts.VerifyCopies {
		copyFn = fileutil.CopyFileVerified
	}
	if err := copyFn(item.Path, destPath); err != nil {
		logger.Warn("copy failed", logging.Error(err))
		result.record(Entry{Outcome: OutcomeError, Source: item.Path, Destination: destPath,
			Detail: fmt.Sprintf("copy: %v", err)})
		return nil
	}

	if o.opts.PreserveModTime {
		if ts := sourceModTime(item); !ts.IsZero() {
			if err := os.Chtimes(destPath, ts, ts); err != nil {
				logger.Warn("cannot preserve modification time", logging.Error(err))
			}
		}
	}

	if o.opts.GenerateSidecars && item.HasRecord() {
		if err := o.writeSidecar(item, destPath); err != nil {
			result.record(Entry{Outcome: OutcomeError, Source: item.Path, Destination: destPath,
				Detail: fmt.Sprintf("sidecar: %v", err)})
			return nil
		}
	}

	result.record(Entry{Outcome: outcome, Source: item.Path, Destination: destPath})
	logger.Debug("item organized", logging.String("destination", destPath), logging.String("outcome", string(outcome)))
	return nil
}

func (o *Organizer) writeSidecar(item media.Item, destPath string) error {
	doc := sidecar.FromRecord(item.Record)
	if o.opts.CaptureDates {
		if ts, err := media.CaptureTime(item.Path); err == nil {
			doc.CaptureDate = ts
		}
	}
	writer := sidecar.Writer{MergeExisting: o.opts.MergeSidecars}
	_, err := writer.Write(doc, destPath)
	return err
}

// sourceModTime prefers the catalog's recorded timestamp over the file's.
func sourceModTime(item media.Item) time.Time {
	if item.HasRecord() {
		if ts := item.Record.ModTime(); !ts.IsZero() {
			return ts
		}
	}
	info, err := os.Stat(item.Path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

func describeFailures(results []preflight.Result) string {
	var parts []string
	for _, result := range results {
		if !result.Passed {
			parts = append(parts, fmt.Sprintf("%s: %s", result.Name, result.Detail))
		}
	}
	return "preflight failed: " + strings.Join(parts, "; ")
}
