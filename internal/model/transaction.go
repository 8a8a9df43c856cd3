package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the flow of money on a statement line.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// RawTransaction is a single statement line as recovered by an extraction
// adapter. Amount is always a non-negative magnitude; Direction carries the
// sign. Immutable once created.
type RawTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Direction   Direction
	Balance     *decimal.Decimal // running balance, when the layout states one
}

// StatedTotals holds the aggregate figures a statement claims about itself.
// They are used only for reconciliation, never as ground truth to override
// computed sums. Nil means the document did not state the figure.
type StatedTotals struct {
	OpeningBalance    *decimal.Decimal
	ClosingBalance    *decimal.Decimal
	TotalCredits      *decimal.Decimal
	TotalDebits       *decimal.Decimal
	MinimumPaymentDue *decimal.Decimal
	TotalAmountDue    *decimal.Decimal
}

// Category is the business-meaningful bucket a transaction lands in.
type Category string

const (
	// CategorySupplier marks outflow to a known business counterparty.
	CategorySupplier Category = "supplier"
	// CategoryOwnerDrawing marks money attributed to the owner: matched
	// owner-payment credits, and any debit the business cannot explain.
	CategoryOwnerDrawing Category = "owner-drawing"
	// CategoryBankFee marks charges levied by the bank itself.
	CategoryBankFee Category = "bank-fee"
	// CategoryTransfer marks movements between own accounts.
	CategoryTransfer Category = "transfer"
	// CategoryBusinessInflow marks credits presumed to be business revenue.
	CategoryBusinessInflow Category = "business-inflow"
)

// ClassifiedTransaction is a RawTransaction plus the category assigned to it
// and the rule that produced the category, kept for auditability.
type ClassifiedTransaction struct {
	RawTransaction
	Category    Category
	RuleMatched string
}

// ExtractionStats reports what an adapter could not recover, so extraction
// quality is observable rather than silently lossy. UnresolvedDates counts
// year-less transaction lines left at year 0 because the statement carried
// no parseable statement date to resolve them against.
type ExtractionStats struct {
	SkippedRows     int `json:"skipped_rows"`
	UnparsedLines   int `json:"unparsed_lines"`
	UnresolvedDates int `json:"unresolved_dates"`
}
