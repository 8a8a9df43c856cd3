package model

import "github.com/shopspring/decimal"

// ComputedTotals are aggregates recomputed from the classified transaction
// list, independently of anything the statement claims.
type ComputedTotals struct {
	TotalCredits   decimal.Decimal
	TotalDebits    decimal.Decimal
	ClosingBalance *decimal.Decimal // terminal running balance, when present
}

// Discrepancy records one computed-vs-stated divergence beyond tolerance.
type Discrepancy struct {
	Field    string
	Computed decimal.Decimal
	Stated   decimal.Decimal
	Delta    decimal.Decimal
}

// ReconciliationResult is the outcome of cross-checking computed totals
// against a statement's stated totals. Any discrepancy marks the statement
// for human review; figures are never adjusted to force a match.
type ReconciliationResult struct {
	Computed      ComputedTotals
	Stated        StatedTotals
	Discrepancies []Discrepancy
	NeedsReview   bool
}

// StatementMeta is best-effort account metadata recovered from the document.
type StatementMeta struct {
	AccountNumber   string
	AccountHolder   string
	StatementPeriod string
}

// IngestResult is the durable output of one ingestion run, handed to
// collaborators for storage or display.
type IngestResult struct {
	Format         FormatDescriptor
	Transactions   []ClassifiedTransaction
	Reconciliation ReconciliationResult
	Stats          ExtractionStats
	Meta           StatementMeta
	TextSource     TextSource
	Confidence     float64
}
