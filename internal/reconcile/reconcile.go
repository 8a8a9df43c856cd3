// Package reconcile cross-checks computed aggregates against a statement's
// self-stated totals to catch extraction errors.
package reconcile

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/layak-app/layak/internal/model"
)

// DefaultTolerance absorbs rounding: one smallest currency unit.
var DefaultTolerance = decimal.NewFromFloat(0.01)

// Validator recomputes totals from the classified transaction list and
// compares them against the stated figures within a tolerance. A statement
// with any discrepancy is marked needs_review; the numbers are never
// adjusted to force a match.
type Validator struct {
	tolerance decimal.Decimal
}

// New creates a validator with the given absolute tolerance. A zero or
// negative tolerance falls back to the default.
func New(tolerance decimal.Decimal) *Validator {
	if tolerance.LessThanOrEqual(decimal.Zero) {
		tolerance = DefaultTolerance
	}
	return &Validator{tolerance: tolerance}
}

// Reconcile computes credit/debit sums and the terminal balance, then
// compares each computed figure against its stated counterpart. Absence of
// a stated figure is not a discrepancy.
func (v *Validator) Reconcile(txns []model.ClassifiedTransaction, stated model.StatedTotals) model.ReconciliationResult {
	result := model.ReconciliationResult{Stated: stated}

	for _, txn := range txns {
		switch txn.Direction {
		case model.DirectionCredit:
			result.Computed.TotalCredits = result.Computed.TotalCredits.Add(txn.Amount)
		case model.DirectionDebit:
			result.Computed.TotalDebits = result.Computed.TotalDebits.Add(txn.Amount)
		}
	}
	if len(txns) > 0 {
		if last := txns[len(txns)-1].Balance; last != nil {
			closing := *last
			result.Computed.ClosingBalance = &closing
		}
	}

	v.compare(&result, "total_credits", result.Computed.TotalCredits, stated.TotalCredits)
	v.compare(&result, "total_debits", result.Computed.TotalDebits, stated.TotalDebits)
	if result.Computed.ClosingBalance != nil {
		v.compare(&result, "closing_balance", *result.Computed.ClosingBalance, stated.ClosingBalance)
	}

	if len(result.Discrepancies) > 0 {
		result.NeedsReview = true
		slog.Warn("Reconciliation mismatch, statement needs review",
			"discrepancies", len(result.Discrepancies))
	}
	return result
}

func (v *Validator) compare(result *model.ReconciliationResult, field string, computed decimal.Decimal, stated *decimal.Decimal) {
	if stated == nil {
		return
	}

	delta := computed.Sub(*stated).Abs()
	if delta.LessThanOrEqual(v.tolerance) {
		return
	}

	result.Discrepancies = append(result.Discrepancies, model.Discrepancy{
		Field:    field,
		Computed: computed,
		Stated:   *stated,
		Delta:    delta,
	})
}
