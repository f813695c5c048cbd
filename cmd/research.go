package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vecta-co/leadgen-cli/internal/research"
	"github.com/vecta-co/leadgen-cli/pkg/perplexity"
)

var researchCmd = &cobra.Command{
	Use:   "research <company-name>",
	Short: "Research a company with web-grounded search",
	Long:  "Queries Perplexity for a structured company profile (founding year, location, funding) and prints it as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("research"); err != nil {
			return err
		}

		client := perplexity.NewClient(cfg.Perplexity.Key,
			perplexity.WithBaseURL(cfg.Perplexity.BaseURL),
			perplexity.WithModel(cfg.Perplexity.Model),
		)

		profile, err := research.New(client).Profile(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "research")
		}

		zap.L().Info("company researched", zap.String("company", args[0]))

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(profile)
	},
}

func init() {
	rootCmd.AddCommand(researchCmd)
}
