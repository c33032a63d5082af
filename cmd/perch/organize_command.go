package main

import (
	"github.com/spf13/cobra"

	"perch/internal/config"
	"perch/internal/filter"
	"perch/internal/organize"
)

func newOrganizeCommand(cctx *commandContext) *cobra.Command {
	var (
		tags     []string
		anyTag   bool
		pattern  string
		conflict string
		sidecars bool
		flatten  bool
		verify   bool
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "organize SOURCE DEST",
		Short: "Copy filtered media from a source into a destination tree",
		Args:  cobra.ExactArgs(2),
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
			if opts.Destination, err = config.ExpandPath(args[1]); err != nil {
				return err
			}

			if cmd.Flags().Changed("conflict") {
				policy, err := organize.ParsePolicy(conflict)
				if err != nil {
					return err
				}
				opts.Policy = policy
			}
			if cmd.Flags().Changed("sidecars") {
				opts.GenerateSidecars = sidecars
			}
			if cmd.Flags().Changed("flatten") {
				opts.Flatten = flatten
			}
			if cmd.Flags().Changed("verify") {
				opts.VerifyCopies = verify
			}
			opts.DryRun = dryRun

			if opts.Filter, err = filter.New(tags, anyTag, pattern); err != nil {
				return err
			}

			result, runErr := organize.New(opts, logger).Run(cmd.Context())
			if result != nil {
				printResult(cmd, result)
				if !opts.DryRun {
					recordHistory(cmd, cctx, result, opts.Source, opts.Destination)
				}
			}
			return runErr
		},
	}

	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Require this tag (repeatable; all tags must match)")
	cmd.Flags().BoolVar(&anyTag, "any-tag", false, "Match items carrying any of the required tags")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Regular expression matched against item paths")
	cmd.Flags().StringVar(&conflict, "conflict", "", "Conflict policy: skip, overwrite, or rename")
	cmd.Flags().BoolVar(&sidecars, "sidecars", true, "Write XMP sidecars for catalog items")
	cmd.Flags().BoolVar(&flatten, "flatten", false, "Collapse the destination layout to basenames")
	cmd.Flags().BoolVar(&verify, "verify", false, "Verify copies with a SHA256 checksum")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would happen without writing")

	return cmd
}
