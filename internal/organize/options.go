package organize

import (
	"perch/internal/config"
	"perch/internal/filter"
)

// Options fixes the parameters of a run. Treat a value as immutable once a
// run has started with it.
type Options struct {
	Source      string
	Destination string
	Filter      *filter.Filter
	Policy      ConflictPolicy

	// Flatten collapses every item to its basename instead of mirroring the
	// source-relative layout.
	Flatten bool

	GenerateSidecars bool
	MergeSidecars    bool
	CaptureDates     bool

	VerifyCopies    bool
	PreserveModTime bool
	DryRun          bool

	Extensions        []string
	FollowSymlinks    bool
	IncludeDeleted    bool
	FreeSpaceFloorMiB int64
}

// OptionsFromConfig seeds run options from configuration; command-line flags
// overlay the result.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Policy:            ConflictPolicy(cfg.Organize.ConflictPolicy),
		Flatten:           cfg.Organize.Layout == config.LayoutFlatten,
		GenerateSidecars:  cfg.Organize.Sidecars,
		MergeSidecars:     cfg.Sidecar.MergeExisting,
		CaptureDates:      cfg.Sidecar.CaptureDates,
		VerifyCopies:      cfg.Organize.VerifyCopies,
		PreserveModTime:   cfg.Organize.PreserveModTime,
		Extensions:        cfg.Search.Extensions,
		FollowSymlinks:    cfg.Search.FollowSymlinks,
		IncludeDeleted:    cfg.Search.IncludeDeleted,
		FreeSpaceFloorMiB: cfg.Organize.FreeSpaceFloorMiB,
	}
}
