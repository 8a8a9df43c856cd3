// Package loan scores financial profiles against a catalog of loan
// products' eligibility rules.
package loan

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/viper"
)

// Product is a static catalog entry. The catalog is read-only reference
// data; the pipeline never mutates it.
type Product struct {
	ID            string  `mapstructure:"id"`
	Name          string  `mapstructure:"name"`
	Lender        string  `mapstructure:"lender"`
	RatePercent   float64 `mapstructure:"rate_percent"`
	MinIncome     float64 `mapstructure:"min_income"`
	MaxDSRPercent float64 `mapstructure:"max_dsr_percent"`
	MaxTenure     int     `mapstructure:"max_tenure_years"`
}

// Profile is the applicant summary the matcher filters on.
type Profile struct {
	MonthlyIncome float64
	DsrPercent    float64
}

// Ranking criteria for eligible products.
const (
	RankLowestRate    = "lowest_rate"
	RankHighestMargin = "highest_margin"
)

// Matcher filters and ranks catalog entries. The ranking criterion is
// configuration, not hard-coded.
type Matcher struct {
	ranking string
}

// NewMatcher creates a matcher with the given ranking criterion; an
// unrecognized criterion falls back to lowest rate.
func NewMatcher(ranking string) *Matcher {
	switch ranking {
	case RankLowestRate, RankHighestMargin:
	default:
		ranking = RankLowestRate
	}
	return &Matcher{ranking: ranking}
}

// Match returns the catalog entries whose income floor and max-DSR
// constraints the profile satisfies, ranked by the configured criterion.
// The result is never nil, so an empty match serializes as an empty list.
func (m *Matcher) Match(profile Profile, catalog []Product) []Product {
	eligible := []Product{}
	for _, product := range catalog {
		if profile.MonthlyIncome < product.MinIncome {
			continue
		}
		if product.MaxDSRPercent > 0 && profile.DsrPercent > product.MaxDSRPercent {
			continue
		}
		eligible = append(eligible, product)
	}

	switch m.ranking {
	case RankHighestMargin:
		// Products with more DSR headroom for this applicant rank first.
		sort.SliceStable(eligible, func(i, j int) bool {
			return eligible[i].MaxDSRPercent-profile.DsrPercent > eligible[j].MaxDSRPercent-profile.DsrPercent
		})
	default:
		sort.SliceStable(eligible, func(i, j int) bool {
			return eligible[i].RatePercent < eligible[j].RatePercent
		})
	}
	return eligible
}

// LoadCatalog reads a product catalog from a YAML file. The catalog is
// loaded once at startup and shared read-only.
func LoadCatalog(path string) ([]Product, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("catalog file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	var catalog struct {
		Products []Product `mapstructure:"products"`
	}
	if err := v.Unmarshal(&catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return catalog.Products, nil
}
