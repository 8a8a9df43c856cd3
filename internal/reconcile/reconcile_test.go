package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layak-app/layak/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func classified(direction model.Direction, amount string, balance *decimal.Decimal) model.ClassifiedTransaction {
	return model.ClassifiedTransaction{
		RawTransaction: model.RawTransaction{
			Direction: direction,
			Amount:    dec(amount),
			Balance:   balance,
		},
	}
}

func TestReconcileWithinTolerance(t *testing.T) {
	validator := New(decimal.Zero) // falls back to the default tolerance

	txns := []model.ClassifiedTransaction{
		classified(model.DirectionCredit, "600.00", nil),
		classified(model.DirectionCredit, "400.00", nil),
		classified(model.DirectionDebit, "250.00", nil),
	}
	stated := model.StatedTotals{
		TotalCredits: decPtr("1000.00"),
		TotalDebits:  decPtr("250.00"),
	}

	result := validator.Reconcile(txns, stated)
	assert.Empty(t, result.Discrepancies)
	assert.False(t, result.NeedsReview)
	assert.True(t, result.Computed.TotalCredits.Equal(dec("1000.00")))
	assert.True(t, result.Computed.TotalDebits.Equal(dec("250.00")))
}

func TestReconcileFlagsDiscrepancy(t *testing.T) {
	validator := New(decimal.Zero)

	txns := []model.ClassifiedTransaction{
		classified(model.DirectionCredit, "1000.00", nil),
	}
	stated := model.StatedTotals{TotalCredits: decPtr("1000.50")}

	result := validator.Reconcile(txns, stated)
	require.Len(t, result.Discrepancies, 1)
	assert.True(t, result.NeedsReview)

	d := result.Discrepancies[0]
	assert.Equal(t, "total_credits", d.Field)
	assert.True(t, d.Computed.Equal(dec("1000.00")))
	assert.True(t, d.Stated.Equal(dec("1000.50")))
	assert.True(t, d.Delta.Equal(dec("0.50")))

	// Computed figures are reported as-is, never adjusted to match.
	assert.True(t, result.Computed.TotalCredits.Equal(dec("1000.00")))
}

func TestReconcileAbsentStatedFigureIsNotADiscrepancy(t *testing.T) {
	validator := New(decimal.Zero)

	txns := []model.ClassifiedTransaction{
		classified(model.DirectionDebit, "42.00", nil),
	}

	result := validator.Reconcile(txns, model.StatedTotals{})
	assert.Empty(t, result.Discrepancies)
	assert.False(t, result.NeedsReview)
}

func TestReconcileClosingBalanceFromTerminalRow(t *testing.T) {
	validator := New(decimal.Zero)

	txns := []model.ClassifiedTransaction{
		classified(model.DirectionDebit, "100.00", decPtr("900.00")),
		classified(model.DirectionCredit, "50.00", decPtr("950.00")),
	}
	stated := model.StatedTotals{ClosingBalance: decPtr("950.00")}

	result := validator.Reconcile(txns, stated)
	require.NotNil(t, result.Computed.ClosingBalance)
	assert.True(t, result.Computed.ClosingBalance.Equal(dec("950.00")))
	assert.Empty(t, result.Discrepancies)

	// A stated closing balance that disagrees with the terminal row flags
	// the statement.
	stated.ClosingBalance = decPtr("960.00")
	result = validator.Reconcile(txns, stated)
	require.Len(t, result.Discrepancies, 1)
	assert.Equal(t, "closing_balance", result.Discrepancies[0].Field)
}

func TestReconcileCustomTolerance(t *testing.T) {
	validator := New(dec("1.00"))

	txns := []model.ClassifiedTransaction{
		classified(model.DirectionCredit, "1000.00", nil),
	}
	stated := model.StatedTotals{TotalCredits: decPtr("1000.50")}

	result := validator.Reconcile(txns, stated)
	assert.Empty(t, result.Discrepancies, "0.50 is within a 1.00 tolerance")
}
