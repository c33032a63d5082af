package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"perch/internal/history"
	"perch/internal/organize"
)

// outcomeOrder fixes the display order of run counts.
var outcomeOrder = []organize.Outcome{
	organize.OutcomeCopied,
	organize.OutcomeWritten,
	organize.OutcomeRenamed,
	organize.OutcomeOverwritten,
	organize.OutcomeSkippedConflict,
	organize.OutcomeSkippedFilter,
	organize.OutcomeError,
}

func formatCounts(counts map[organize.Outcome]int) string {
	out := ""
	for _, outcome := range outcomeOrder {
		if counts[outcome] == 0 {
			continue
		}
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("%s=%d", outcome, counts[outcome])
	}
	if out == "" {
		out = "nothing to do"
	}
	return out
}

func printResult(cmd *cobra.Command, result *organize.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s: %s\n", result.RunID, formatCounts(result.Counts))

	if isTerminal(out) && len(result.Entries) > 0 {
		rows := make([][]string, 0, len(result.Entries))
		for _, entry := range result.Entries {
			rows = append(rows, []string{string(entry.Outcome), entry.Source, entry.Destination, entry.Detail})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Outcome", "Source", "Destination", "Detail"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
		))
		return
	}

	for _, entry := range result.Entries {
		if entry.Outcome != organize.OutcomeError {
			continue
		}
		fmt.Fprintf(out, "error: %s: %s\n", entry.Source, entry.Detail)
	}
}

// recordHistory persists the run report when history is enabled. Failures
// are reported but never fail the command; the run itself already happened.
func recordHistory(cmd *cobra.Command, cctx *commandContext, result *organize.Result, source, destination string) {
	cfg, err := cctx.ensureConfig()
	if err != nil || !cfg.History.Enabled {
		return
	}

	store, err := history.Open(cfg)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: cannot open history store: %v\n", err)
		return
	}
	defer store.Close()

	ctx := cmd.Context()
	if err := store.RecordRun(ctx, result, source, destination); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: cannot record run history: %v\n", err)
		return
	}
	if cfg.History.RetentionDays > 0 {
		retention := time.Duration(cfg.History.RetentionDays) * 24 * time.Hour
		if _, err := store.Prune(ctx, retention); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: cannot prune run history: %v\n", err)
		}
	}
}
