package organize

import (
	"context"
	"fmt"
	"log/slog"

	"perch/internal/faults"
	"perch/internal/logging"
	"perch/internal/media"
	"perch/internal/search"
	"perch/internal/sidecar"
)

// Generator writes XMP sidecars beside catalog assets in place. It only
// operates on catalog roots; plain directories have no metadata to express.
type Generator struct {
	opts   Options
	logger *slog.Logger
}

// NewGenerator constructs a sidecar generator for a fixed set of options.
// Destination, conflict, and copy options are ignored.
func NewGenerator(opts Options, logger *slog.Logger) *Generator {
	return &Generator{opts: opts, logger: logging.NewComponentLogger(logger, "sidecar-generator")}
}

// Run walks the catalog and writes (or merges) one sidecar per record that
// passes the filter. Per-item failures are recorded and the run continues.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	searcher, err := search.ForRoot(g.opts.Source, search.Options{
		Extensions:     g.opts.Extensions,
		IncludeDeleted: g.opts.IncludeDeleted,
	})
	if err != nil {
		return nil, err
	}
	if _, ok := searcher.(*search.CatalogSearcher); !ok {
		return nil, faults.Wrap(faults.ErrCatalogUnavailable, "sidecar", "inspect root",
			fmt.Sprintf("%s is not a catalog library", g.opts.Source), nil)
	}

	result := newResult("sidecar")
	defer result.finish()

	ctx = logging.WithRunID(ctx, result.RunID)
	logger := logging.WithContext(ctx, g.logger)
	logger.Info("starting sidecar run",
		logging.String("catalog", g.opts.Source),
		logging.Bool("dry_run", g.opts.DryRun))

	searchErr := searcher.Search(ctx, func(item media.Item) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !g.opts.Filter.Accepts(item) {
			result.record(Entry{Outcome: OutcomeSkippedFilter, Source: item.Path})
			return nil
		}
		g.processRecord(item, result)
		return nil
	})

	logger.Info("sidecar run finished",
		logging.Int("items", len(result.Entries)),
		logging.Int("errors", result.ErrorCount()))
	if searchErr != nil {
		return result, searchErr
	}
	return result, nil
}

func (g *Generator) processRecord(item media.Item, result *Result) {
	target := sidecar.PathFor(item.Path)
	if g.opts.DryRun {
		result.record(Entry{Outcome: OutcomeWritten, Source: item.Path, Destination: target, Detail: "dry run"})
		return
	}

	doc := sidecar.FromRecord(item.Record)
	if g.opts.CaptureDates {
		if ts, err := media.CaptureTime(item.Path); err == nil {
			doc.CaptureDate = ts
		}
	}
	writer := sidecar.Writer{MergeExisting: g.opts.MergeSidecars}
	path, err := writer.Write(doc, item.Path)
	if err != nil {
		result.record(Entry{Outcome: OutcomeError, Source: item.Path, Destination: target, Detail: err.Error()})
		return
	}
	result.record(Entry{Outcome: OutcomeWritten, Source: item.Path, Destination: path})
}
