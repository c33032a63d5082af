package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"perch/internal/config"
	"perch/internal/filter"
	"perch/internal/logging"
	"perch/internal/organize"
)

const watchDebounce = 500 * time.Millisecond

func newSidecarCommand(cctx *commandContext) *cobra.Command {
	var (
		tags    []string
		anyTag  bool
		pattern string
		dryRun  bool
		watch   bool
	)

	cmd := &cobra.Command{
		Use:   "sidecar CATALOG",
		Short: "Write XMP sidecars beside catalog assets in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cctx.ensureLogger()
			if err != nil {
				return err
			}

			opts := organize.OptionsFromConfig(cfg)
			if opts.Source, err = config.ExpandPath(args[0]); err != nil {
				return err
			}
			opts.DryRun = dryRun
			if opts.Filter, err = filter.New(tags, anyTag, pattern); err != nil {
				return err
			}

			generator := organize.NewGenerator(opts, logger)
			runOnce := func() error {
				result, runErr := generator.Run(cmd.Context())
				if result != nil {
					printResult(cmd, result)
					if !opts.DryRun {
						recordHistory(cmd, cctx, result, opts.Source, opts.Source)
					}
				}
				return runErr
			}

			if err := runOnce(); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchCatalog(cmd.Context(), logger, opts.Source, runOnce)
		},
	}

	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Require this tag (repeatable; all tags must match)")
	cmd.Flags().BoolVar(&anyTag, "any-tag", false, "Match items carrying any of the required tags")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Regular expression matched against item paths")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would happen without writing")
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep running and regenerate sidecars when the catalog changes")

	return cmd
}

// watchCatalog regenerates sidecars whenever the catalog's images tree
// changes. Bursts of events are coalesced with a short debounce so a bulk
// edit triggers one regeneration.
func watchCatalog(ctx context.Context, logger *slog.Logger, root string, regenerate func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	imagesDir := filepath.Join(root, "images")
	if err := watcher.Add(imagesDir); err != nil {
		return fmt.Errorf("watch %s: %w", imagesDir, err)
	}
	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return fmt.Errorf("read %s: %w", imagesDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			if err := watcher.Add(filepath.Join(imagesDir, entry.Name())); err != nil {
				logger.Warn("cannot watch item folder", logging.Error(err))
			}
		}
	}

	logger.Info("watching catalog", logging.String("catalog", root))

	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			// New item folders need their own watch before their
			// metadata settles.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						logger.Warn("cannot watch item folder", logging.Error(err))
					}
				}
			}
			if debounce == nil {
				debounce = time.NewTimer(watchDebounce)
				fire = debounce.C
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(watchDebounce)
			}
		case <-fire:
			debounce = nil
			fire = nil
			if err := regenerate(); err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				logger.Warn("regeneration failed", logging.Error(err))
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.Error(watchErr))
		}
	}
}
