package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/layak-app/layak/internal/config"
	"github.com/layak-app/layak/internal/loan"
)

func init() {
	matchCmd := &cobra.Command{
		Use:   "match",
		Short: "Rank eligible loan products for an applicant profile",
		Long: `Filter the configured product catalog by income floor and maximum DSR,
then rank the survivors by the configured criterion (lowest rate or
highest DSR headroom).

Examples:
  layak match --income 8000 --dsr 45
  layak match --income 8000 --dsr 45 --catalog products.yaml --ranking highest_margin`,
		RunE: runMatch,
	}

	matchCmd.Flags().Float64("income", 0, "applicant monthly income")
	matchCmd.Flags().Float64("dsr", 0, "applicant debt-service ratio in percent")
	matchCmd.Flags().String("catalog", "", "product catalog file (overrides config)")
	matchCmd.Flags().String("ranking", "", "ranking criterion: lowest_rate or highest_margin")
	_ = matchCmd.MarkFlagRequired("income")
	_ = matchCmd.MarkFlagRequired("dsr")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	income, _ := cmd.Flags().GetFloat64("income")
	dsrPercent, _ := cmd.Flags().GetFloat64("dsr")
	catalogPath, _ := cmd.Flags().GetString("catalog")
	ranking, _ := cmd.Flags().GetString("ranking")

	settings := config.Load()
	if catalogPath == "" {
		catalogPath = settings.CatalogPath
	}
	if ranking == "" {
		ranking = settings.LoanRanking
	}
	if catalogPath == "" {
		return fmt.Errorf("no product catalog configured; pass --catalog or set loan.catalog")
	}

	catalog, err := loan.LoadCatalog(catalogPath)
	if err != nil {
		return err
	}

	profile := loan.Profile{MonthlyIncome: income, DsrPercent: dsrPercent}
	eligible := loan.NewMatcher(ranking).Match(profile, catalog)

	slog.Info("Catalog matched",
		"products", len(catalog),
		"eligible", len(eligible),
		"ranking", ranking)

	return writeJSON(eligible)
}
