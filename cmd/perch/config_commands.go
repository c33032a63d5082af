package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"perch/internal/config"
)

func newConfigCommand(cctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigShowCommand(cctx))
	configCmd.AddCommand(newConfigNewCommand())

	return configCmd
}

func newConfigShowCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			var flagPath string
			if cctx.configFlag != nil {
				flagPath = strings.TrimSpace(*cctx.configFlag)
			}
			cfg, path, exists, err := config.Load(flagPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path:       %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults are shown")
			}
			fmt.Fprintf(out, "Log dir:           %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "State dir:         %s\n", cfg.Paths.StateDir)
			fmt.Fprintf(out, "Conflict policy:   %s\n", cfg.Organize.ConflictPolicy)
			fmt.Fprintf(out, "Layout:            %s\n", cfg.Organize.Layout)
			fmt.Fprintf(out, "Sidecars:          %s\n", yesNo(cfg.Organize.Sidecars))
			fmt.Fprintf(out, "Verify copies:     %s\n", yesNo(cfg.Organize.VerifyCopies))
			fmt.Fprintf(out, "Preserve mtimes:   %s\n", yesNo(cfg.Organize.PreserveModTime))
			fmt.Fprintf(out, "Free space floor:  %d MiB\n", cfg.Organize.FreeSpaceFloorMiB)
			if len(cfg.Search.Extensions) > 0 {
				fmt.Fprintf(out, "Extensions:        %s\n", strings.Join(cfg.Search.Extensions, ", "))
			} else {
				fmt.Fprintln(out, "Extensions:        (built-in media set)")
			}
			fmt.Fprintf(out, "Follow symlinks:   %s\n", yesNo(cfg.Search.FollowSymlinks))
			fmt.Fprintf(out, "Include deleted:   %s\n", yesNo(cfg.Search.IncludeDeleted))
			fmt.Fprintf(out, "Merge sidecars:    %s\n", yesNo(cfg.Sidecar.MergeExisting))
			fmt.Fprintf(out, "Capture dates:     %s\n", yesNo(cfg.Sidecar.CaptureDates))
			fmt.Fprintf(out, "History:           %s (%d day retention)\n", yesNo(cfg.History.Enabled), cfg.History.RetentionDays)
			fmt.Fprintf(out, "Logging:           %s/%s\n", cfg.Logging.Format, cfg.Logging.Level)
			return nil
		},
	}
}

func newConfigNewCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "new",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}
