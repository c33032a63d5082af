package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"perch/internal/history"
)

func newHistoryCommand(cctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past organize and sidecar runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.ID,
					run.Kind,
					run.StartedAt.Local().Format(time.DateTime),
					run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String(),
					formatCounts(run.Counts),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Run", "Kind", "Started", "Duration", "Counts"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list (0 for all)")
	cmd.AddCommand(newHistoryShowCommand(cctx))

	return cmd
}

func newHistoryShowCommand(cctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show the per-item entries of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			entries, err := store.EntriesForRun(cmd.Context(), run.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run:         %s\n", run.ID)
			fmt.Fprintf(out, "Kind:        %s\n", run.Kind)
			fmt.Fprintf(out, "Source:      %s\n", run.Source)
			fmt.Fprintf(out, "Destination: %s\n", run.Destination)
			fmt.Fprintf(out, "Started:     %s\n", run.StartedAt.Local().Format(time.DateTime))
			fmt.Fprintf(out, "Counts:      %s\n", formatCounts(run.Counts))

			if len(entries) == 0 {
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{string(entry.Outcome), entry.Source, entry.Destination, entry.Detail})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Outcome", "Source", "Destination", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
