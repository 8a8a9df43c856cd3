// Package dsr computes amortized monthly installments and debt-service
// ratios for loan eligibility decisions.
package dsr

import (
	"math"

	"github.com/layak-app/layak/internal/model"
)

// Thresholds bucket the debt-service ratio. Boundaries are exclusive on the
// upper side of each bucket: a ratio exactly at Pass is BORDERLINE, and one
// exactly at Borderline is HIGH.
type Thresholds struct {
	Pass       float64
	Borderline float64
}

// DefaultThresholds follow common responsible-lending guidance.
func DefaultThresholds() Thresholds {
	return Thresholds{Pass: 60, Borderline: 70}
}

// Engine computes DSR verdicts.
type Engine struct {
	thresholds Thresholds
}

// New creates an engine. Zero thresholds fall back to the defaults.
func New(thresholds Thresholds) *Engine {
	if thresholds.Pass <= 0 || thresholds.Borderline <= thresholds.Pass {
		thresholds = DefaultThresholds()
	}
	return &Engine{thresholds: thresholds}
}

// MonthlyPayment amortizes a principal over the tenure. A zero rate uses
// straight-line division, avoiding the division by zero in the annuity
// formula.
func MonthlyPayment(principal, annualRatePercent float64, tenureYears int) float64 {
	n := float64(tenureYears * 12)
	if n <= 0 {
		return 0
	}

	r := annualRatePercent / 100 / 12
	if r == 0 {
		return principal / n
	}

	factor := math.Pow(1+r, n)
	return principal * r * factor / (factor - 1)
}

// Compute derives the debt-service ratio for an applicant taking a new
// loan. commitments and income are monthly figures.
//
// The max(income, 1) floor is a deliberate clamp guarding against zero or
// negative income input, not an assumption that such an income is real; the
// resulting ratio will be absurdly high and land in the HIGH bucket, which
// is the correct verdict for unverifiable income.
func (e *Engine) Compute(commitments, income, principal, annualRatePercent float64, tenureYears int) model.DsrResult {
	payment := MonthlyPayment(principal, annualRatePercent, tenureYears)

	ratio := (commitments + payment) / math.Max(income, 1) * 100

	status := model.DsrHigh
	switch {
	case ratio < e.thresholds.Pass:
		status = model.DsrPass
	case ratio < e.thresholds.Borderline:
		status = model.DsrBorderline
	}

	return model.DsrResult{
		MonthlyPayment: payment,
		DsrPercent:     ratio,
		Status:         status,
	}
}
