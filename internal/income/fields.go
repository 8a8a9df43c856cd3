// Package income pulls labeled numeric fields out of payslip and statement
// text using an ordered, data-driven pattern ladder.
package income

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/layak-app/layak/internal/model"
)

// fieldRule is one entry in the extraction ladder: the first rule whose
// pattern matches wins for its field. Patterns run against normalized text
// (lowercased, commas stripped), and transform converts the captured value
// into a monthly figure where the label implies another unit.
type fieldRule struct {
	field     string
	pattern   *regexp.Regexp
	transform func(float64) float64
}

var amountCapture = `(?:rm|myr)?\s*([0-9]+(?:\.[0-9]+)?)`

// Rules are ordered: more specific labels come before looser ones so that
// e.g. "basic salary" wins over a bare "salary" line. The list is additive;
// new institutions or payslip layouts extend it without logic changes.
var defaultRules = []fieldRule{
	{field: "basic_salary", pattern: regexp.MustCompile(`basic\s*(?:salary|pay|wage)\s*:?\s*` + amountCapture)},
	{field: "basic_salary", pattern: regexp.MustCompile(`gaji\s*pokok\s*:?\s*` + amountCapture)},
	{field: "allowance", pattern: regexp.MustCompile(`(?:total\s*)?allowances?\s*:?\s*` + amountCapture)},
	{field: "allowance", pattern: regexp.MustCompile(`elaun\s*:?\s*` + amountCapture)},
	{field: "epf_contribution", pattern: regexp.MustCompile(`(?:epf|kwsp)(?:\s*(?:employee|contribution|contrib\.?))?\s*:?\s*` + amountCapture)},
	{field: "net_salary", pattern: regexp.MustCompile(`net\s*(?:salary|pay|income)\s*:?\s*` + amountCapture)},
	{field: "net_salary", pattern: regexp.MustCompile(`gaji\s*bersih\s*:?\s*` + amountCapture)},
	{field: "gross_salary", pattern: regexp.MustCompile(`gross\s*(?:salary|pay|income)\s*:?\s*` + amountCapture)},
	{field: "gross_salary", pattern: regexp.MustCompile(`gaji\s*kasar\s*:?\s*` + amountCapture)},
	{field: "annual_income", pattern: regexp.MustCompile(`annual\s*(?:income|salary|package)\s*:?\s*` + amountCapture)},
	{field: "bank_inflow", pattern: regexp.MustCompile(`(?:total\s*)?(?:bank\s*)?inflow\s*:?\s*` + amountCapture)},
	{field: "bank_inflow", pattern: regexp.MustCompile(`total\s*credits?\s*:?\s*` + amountCapture)},
}

// Extractor evaluates the field ladder over free text.
type Extractor struct {
	rules []fieldRule
}

// NewExtractor creates an extractor with the built-in rules.
func NewExtractor() *Extractor {
	return &Extractor{rules: defaultRules}
}

// Extract pulls every income field it can find. Each field is independent:
// a missing field stays zero and gets an explanatory note, and no field is
// ever inferred from another. Callers must surface the notes rather than
// treat the zeros as ground truth.
func (e *Extractor) Extract(text string) model.IncomeProfile {
	normalized := normalize(text)

	found := make(map[string]float64)
	for _, rule := range e.rules {
		if _, ok := found[rule.field]; ok {
			continue
		}
		m := rule.pattern.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if rule.transform != nil {
			value = rule.transform(value)
		}
		found[rule.field] = value
	}

	profile := model.IncomeProfile{
		BasicSalary:     found["basic_salary"],
		Allowance:       found["allowance"],
		EPFContribution: found["epf_contribution"],
		NetSalary:       found["net_salary"],
		GrossSalary:     found["gross_salary"],
		AnnualIncome:    found["annual_income"],
		BankInflow:      found["bank_inflow"],
	}

	for _, field := range []string{
		"basic_salary", "allowance", "epf_contribution",
		"net_salary", "gross_salary", "annual_income", "bank_inflow",
	} {
		if _, ok := found[field]; !ok {
			profile.Notes = append(profile.Notes, fmt.Sprintf("%s not found; defaulted to 0", field))
		}
	}
	return profile
}

// normalize lowercases the text and strips thousands separators so the
// amount patterns stay simple.
func normalize(text string) string {
	return strings.ReplaceAll(strings.ToLower(text), ",", "")
}
