package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/layak-app/layak/internal/config"
)

func init() {
	ingestCmd := &cobra.Command{
		Use:   "ingest [file]",
		Short: "Ingest a single financial document",
		Long: `Ingest one bank or credit card statement: detect its format, extract
transactions, classify them, and reconcile against stated totals.

Examples:
  # Ingest a CSV export
  layak ingest statements/maybank_jan.csv

  # Ingest a scanned statement, hinting the institution
  layak ingest scans/statement.pdf --institution cimb`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}

	ingestCmd.Flags().StringP("institution", "i", "", "institution hint (maybank, cimb, hsbc)")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	hint, _ := cmd.Flags().GetString("institution")

	doc, err := loadDocument(args[0], hint)
	if err != nil {
		return err
	}

	settings := config.Load()
	eng, err := buildEngine(settings)
	if err != nil {
		return err
	}

	result, err := eng.Ingest(cmd.Context(), doc)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	if result.Reconciliation.NeedsReview {
		slog.Warn("Statement flagged for manual review",
			"file", doc.Filename,
			"discrepancies", len(result.Reconciliation.Discrepancies))
	}

	return writeJSON(result)
}
