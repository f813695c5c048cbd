package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vecta-co/leadgen-cli/internal/runner"
	"github.com/vecta-co/leadgen-cli/pkg/apollo"
)

var (
	orgsInput   string
	orgsOutput  string
	orgsDelayMs int
	orgsLimit   int
)

var orgsCmd = &cobra.Command{
	Use:   "orgs",
	Short: "Fetch organization records with unlocked contact info",
	Long:  "Dedupes the input companies by normalized name, searches Apollo for each unique organization, unlocks its contact info, and writes the raw records incrementally.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("orgs"); err != nil {
			return err
		}

		source, err := loadCompanies(orgsInput)
		if err != nil {
			return eris.Wrap(err, "orgs: load input")
		}

		delay := time.Duration(orgsDelayMs) * time.Millisecond
		if !cmd.Flags().Changed("delay") {
			delay = time.Duration(cfg.Orgs.DelayMs) * time.Millisecond
		}

		api := apollo.NewClient(cfg.Apollo.Key,
			apollo.WithBaseURL(cfg.Apollo.BaseURL),
			apollo.WithRateLimit(cfg.Apollo.RateLimit),
		)

		ledger := initLedger(ctx)
		defer closeLedger(ledger)

		r := runner.NewOrgs(api, ledger, runner.OrgOptions{
			InputPath:  orgsInput,
			OutputPath: orgsOutput,
			Delay:      delay,
			Limit:      orgsLimit,
		})

		summary, err := r.Run(ctx, source)
		if err != nil {
			return eris.Wrap(err, "orgs")
		}

		zap.L().Info("organization fetch complete",
			zap.Int("processed", summary.Processed),
			zap.Int("found", summary.Found),
			zap.Int("not_found", summary.NotFound),
		)
		return nil
	},
}

func init() {
	orgsCmd.Flags().StringVar(&orgsInput, "input", "", "source company list JSON (required)")
	orgsCmd.Flags().StringVar(&orgsOutput, "output", "organizations.json", "organization records output path")
	orgsCmd.Flags().IntVar(&orgsDelayMs, "delay", 500, "pause between organizations in milliseconds")
	orgsCmd.Flags().IntVar(&orgsLimit, "limit", 0, "max organizations to search this run (0 = all)")
	_ = orgsCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(orgsCmd)
}
