package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vecta-co/leadgen-cli/internal/lookup"
	"github.com/vecta-co/leadgen-cli/internal/runner"
	"github.com/vecta-co/leadgen-cli/pkg/apollo"
)

var (
	enrichInput      string
	enrichOutput     string
	enrichDelayMs    int
	enrichLimit      int
	enrichForce      bool
	enrichStrictRole bool
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Enrich people with contact info from Apollo",
	Long:  "Walks every person in the input collection, looks up their contact info in Apollo, and writes the enriched snapshot after each person. Re-running resumes from the existing snapshot.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("enrich"); err != nil {
			return err
		}

		source, err := loadCompanies(enrichInput)
		if err != nil {
			return eris.Wrap(err, "enrich: load input")
		}

		delay := time.Duration(enrichDelayMs) * time.Millisecond
		if !cmd.Flags().Changed("delay") {
			delay = time.Duration(cfg.Enrich.DelayMs) * time.Millisecond
		}
		strict := enrichStrictRole
		if !cmd.Flags().Changed("strict-role") {
			strict = cfg.Enrich.StrictRole
		}

		api := apollo.NewClient(cfg.Apollo.Key,
			apollo.WithBaseURL(cfg.Apollo.BaseURL),
			apollo.WithRateLimit(cfg.Apollo.RateLimit),
		)

		ledger := initLedger(ctx)
		defer closeLedger(ledger)

		r := runner.New(lookup.NewApollo(api), ledger, runner.Options{
			InputPath:  enrichInput,
			OutputPath: enrichOutput,
			Delay:      delay,
			Limit:      enrichLimit,
			Force:      enrichForce,
			StrictRole: strict,
		})

		summary, err := r.Run(ctx, source)
		if err != nil {
			return eris.Wrap(err, "enrich")
		}

		zap.L().Info("enrichment complete",
			zap.Int("processed", summary.Processed),
			zap.Int("found", summary.Found),
			zap.Int("not_found", summary.NotFound),
			zap.Int("removed", summary.Removed),
			zap.Int("skipped", summary.Skipped),
		)
		return nil
	},
}

func init() {
	enrichCmd.Flags().StringVar(&enrichInput, "input", "", "source company list JSON (required)")
	enrichCmd.Flags().StringVar(&enrichOutput, "output", "enriched.json", "enriched snapshot path")
	enrichCmd.Flags().IntVar(&enrichDelayMs, "delay", 2000, "pause between people in milliseconds")
	enrichCmd.Flags().IntVar(&enrichLimit, "limit", 0, "max people to look up this run (0 = all)")
	enrichCmd.Flags().BoolVar(&enrichForce, "force", false, "re-look-up people who already have contact info")
	enrichCmd.Flags().BoolVar(&enrichStrictRole, "strict-role", true, "drop people whose role the lookup cannot confirm")
	_ = enrichCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(enrichCmd)
}
