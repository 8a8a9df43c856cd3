package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/layak-app/layak/internal/config"
	"github.com/layak-app/layak/internal/dsr"
)

func init() {
	dsrCmd := &cobra.Command{
		Use:   "dsr",
		Short: "Compute the debt-service ratio for a prospective loan",
		Long: `Compute the amortized monthly installment for a prospective loan and
the resulting debt-service ratio, bucketed as PASS, BORDERLINE, or
HIGH against the configured thresholds.

Examples:
  layak dsr --income 8000 --commitments 1500 --principal 300000 --rate 4.5 --tenure 30`,
		RunE: runDsr,
	}

	dsrCmd.Flags().Float64("income", 0, "monthly income")
	dsrCmd.Flags().Float64("commitments", 0, "existing monthly commitments")
	dsrCmd.Flags().Float64("principal", 0, "loan principal")
	dsrCmd.Flags().Float64("rate", 0, "annual interest rate in percent")
	dsrCmd.Flags().Int("tenure", 0, "loan tenure in years")
	_ = dsrCmd.MarkFlagRequired("income")
	_ = dsrCmd.MarkFlagRequired("principal")
	_ = dsrCmd.MarkFlagRequired("tenure")

	rootCmd.AddCommand(dsrCmd)
}

func runDsr(cmd *cobra.Command, _ []string) error {
	income, _ := cmd.Flags().GetFloat64("income")
	commitments, _ := cmd.Flags().GetFloat64("commitments")
	principal, _ := cmd.Flags().GetFloat64("principal")
	rate, _ := cmd.Flags().GetFloat64("rate")
	tenure, _ := cmd.Flags().GetInt("tenure")

	settings := config.Load()
	result := dsr.New(settings.DsrThresholds).Compute(commitments, income, principal, rate, tenure)

	slog.Info("DSR computed",
		"monthly_payment", result.MonthlyPayment,
		"dsr_percent", result.DsrPercent,
		"status", result.Status)

	return writeJSON(result)
}
