package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vecta-co/leadgen-cli/internal/export"
)

var (
	exportInput  string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export an enriched snapshot to spreadsheet formats",
}

var exportCSVCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export contactable people as CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		companies, err := loadCompanies(exportInput)
		if err != nil {
			return eris.Wrap(err, "export csv: load input")
		}

		rows, err := export.WriteContactableCSV(exportOutput, companies)
		if err != nil {
			return eris.Wrap(err, "export csv")
		}

		zap.L().Info("csv written",
			zap.String("path", exportOutput),
			zap.Int("rows", rows),
		)
		return nil
	},
}

var exportXLSXCmd = &cobra.Command{
	Use:   "xlsx",
	Short: "Export companies and people as an Excel workbook",
	RunE: func(cmd *cobra.Command, _ []string) error {
		companies, err := loadCompanies(exportInput)
		if err != nil {
			return eris.Wrap(err, "export xlsx: load input")
		}

		if err := export.WriteWorkbook(exportOutput, companies); err != nil {
			return eris.Wrap(err, "export xlsx")
		}

		zap.L().Info("workbook written", zap.String("path", exportOutput))
		return nil
	},
}

var exportLinkedInCmd = &cobra.Command{
	Use:   "linkedin",
	Short: "Export unique LinkedIn URLs as CSV",
	Long:  "Writes the unique LinkedIn URLs of people in small companies, for profile-visit campaigns. Companies with more people than the configured maximum are skipped.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate("export"); err != nil {
			return err
		}

		companies, err := loadCompanies(exportInput)
		if err != nil {
			return eris.Wrap(err, "export linkedin: load input")
		}

		rows, err := export.WriteLinkedInCSV(exportOutput, companies, cfg.Export.MaxPeoplePerCompany)
		if err != nil {
			return eris.Wrap(err, "export linkedin")
		}

		zap.L().Info("linkedin csv written",
			zap.String("path", exportOutput),
			zap.Int("urls", rows),
		)
		return nil
	},
}

func init() {
	exportCmd.PersistentFlags().StringVar(&exportInput, "input", "enriched.json", "enriched snapshot path")
	exportCmd.PersistentFlags().StringVar(&exportOutput, "output", "", "output file path (required)")
	_ = exportCmd.MarkPersistentFlagRequired("output")

	exportCmd.AddCommand(exportCSVCmd)
	exportCmd.AddCommand(exportXLSXCmd)
	exportCmd.AddCommand(exportLinkedInCmd)
	rootCmd.AddCommand(exportCmd)
}
