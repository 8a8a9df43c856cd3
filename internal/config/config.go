// Package config maps viper configuration onto pipeline settings and
// read-only reference data.
package config

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/layak-app/layak/internal/classify"
	"github.com/layak-app/layak/internal/dsr"
)

// Settings is everything the pipeline reads from configuration. It is
// loaded once at startup; the pipeline itself holds no process-wide mutable
// state.
type Settings struct {
	Ruleset       classify.Ruleset
	Tolerance     decimal.Decimal
	DsrThresholds dsr.Thresholds
	OCRProvider   string
	OCRTimeout    time.Duration
	CatalogPath   string
	LoanRanking   string
	BatchWorkers  int
}

// Load reads settings from the global viper instance, applying defaults
// for everything unset.
func Load() Settings {
	ruleset := classify.DefaultRuleset()
	if suppliers := viper.GetStringSlice("classify.suppliers"); len(suppliers) > 0 {
		ruleset.Suppliers = suppliers
	}
	if keywords := viper.GetStringSlice("classify.owner_keywords"); len(keywords) > 0 {
		ruleset.OwnerKeywords = keywords
	}
	if keywords := viper.GetStringSlice("classify.fee_keywords"); len(keywords) > 0 {
		ruleset.FeeKeywords = keywords
	}
	if keywords := viper.GetStringSlice("classify.transfer_keywords"); len(keywords) > 0 {
		ruleset.TransferKeywords = keywords
	}

	tolerance := decimal.Zero
	if t := viper.GetFloat64("reconcile.tolerance"); t > 0 {
		tolerance = decimal.NewFromFloat(t)
	}

	thresholds := dsr.DefaultThresholds()
	if pass := viper.GetFloat64("dsr.pass_below"); pass > 0 {
		thresholds.Pass = pass
	}
	if borderline := viper.GetFloat64("dsr.borderline_below"); borderline > 0 {
		thresholds.Borderline = borderline
	}

	provider := viper.GetString("ocr.provider")
	if provider == "" {
		provider = "tesseract"
	}

	timeout := viper.GetDuration("ocr.timeout")
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return Settings{
		Ruleset:       ruleset,
		Tolerance:     tolerance,
		DsrThresholds: thresholds,
		OCRProvider:   provider,
		OCRTimeout:    timeout,
		CatalogPath:   viper.GetString("loan.catalog"),
		LoanRanking:   viper.GetString("loan.ranking"),
		BatchWorkers:  viper.GetInt("batch.workers"),
	}
}
