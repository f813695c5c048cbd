package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/vecta-co/leadgen-cli/internal/model"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded batch runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		ledger := initLedger(ctx)
		if ledger == nil {
			return eris.New("runs: ledger unavailable (set store.path)")
		}
		defer closeLedger(ledger)

		runs, err := ledger.ListRuns(ctx, runsLimit)
		if err != nil {
			return eris.Wrap(err, "runs: list")
		}

		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs recorded.")
			return nil
		}

		formatRunsList(os.Stdout, runs)
		return nil
	},
}

func formatRunsList(w io.Writer, runs []model.Run) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tSTATUS\tSTARTED\tDURATION\tPROCESSED\tFOUND")
	for _, r := range runs {
		duration := "-"
		if r.FinishedAt != nil {
			duration = r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String()
		}
		processed, found := "-", "-"
		if r.Summary != nil {
			processed = fmt.Sprintf("%d", r.Summary.Processed)
			found = fmt.Sprintf("%d", r.Summary.Found)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			r.Kind,
			r.Status,
			r.StartedAt.Format(time.RFC3339),
			duration,
			processed,
			found,
		)
	}
	tw.Flush() //nolint:errcheck
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "max runs to list")
	rootCmd.AddCommand(runsCmd)
}
