package extract

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/layak-app/layak/internal/model"
)

// txnPattern recovers one transaction line. Submatch order is fixed across
// all patterns: 1=date 2=description 3=amount 4=direction marker (optional)
// 5=running balance (optional).
type txnPattern struct {
	re       *regexp.Regexp
	noYear   bool // date lacks a year; resolve against the statement date
	inferDir bool // no marker group; direction comes from balance deltas
}

// patternSet is the per-institution rule bundle for text-pattern extraction.
// Sets are data-driven so new institutions are additive.
//
// Direction conventions, per format:
//   - maybank/conventional: trailing +/- marker on the amount; + is credit.
//   - maybank/credit-card: trailing CR marker on credits; bare amounts are
//     debits (card spend).
//   - cimb and generic: no marker; direction is inferred from running
//     balance deltas, defaulting to debit when no balance is available.
type patternSet struct {
	txns          []txnPattern
	statementDate *regexp.Regexp
	totals        map[string]*regexp.Regexp
	nonTxn        []*regexp.Regexp
	accountNo     *regexp.Regexp
	holder        *regexp.Regexp
	period        *regexp.Regexp
}

var amountGroup = `(?:RM|MYR)?\s*([\d,]+\.\d{2})`

var sharedTotals = map[string]*regexp.Regexp{
	"opening_balance":     regexp.MustCompile(`(?i)(?:opening|beginning) balance\b[^\d]*` + amountGroup),
	"closing_balance":     regexp.MustCompile(`(?i)(?:closing|ending) balance\b[^\d]*` + amountGroup),
	"total_credits":       regexp.MustCompile(`(?i)total credits?\b[^\d]*` + amountGroup),
	"total_debits":        regexp.MustCompile(`(?i)total debits?\b[^\d]*` + amountGroup),
	"minimum_payment_due": regexp.MustCompile(`(?i)minimum payment(?: due)?\b[^\d]*` + amountGroup),
	"total_amount_due":    regexp.MustCompile(`(?i)total amount due\b[^\d]*` + amountGroup),
}

var sharedNonTxn = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*date\s+.*(?:description|details|transaction)`),
	regexp.MustCompile(`(?i)statement of account|penyata akaun`),
	regexp.MustCompile(`(?i)^\s*page\s+\d+|muka\s*surat`),
	regexp.MustCompile(`(?i)balance (?:brought|carried) forward`),
	regexp.MustCompile(`(?i)^\s*(?:tel|fax|www\.|http)`),
}

var patternSets = map[model.Institution]map[string]patternSet{
	model.InstitutionMaybank: {
		"conventional": {
			txns: []txnPattern{
				{re: regexp.MustCompile(`^(\d{2}/\d{2}/\d{2,4})\s+(.+?)\s+([\d,]+\.\d{2})([+-])\s+([\d,]+\.\d{2})$`)},
				{re: regexp.MustCompile(`^(\d{2}/\d{2}/\d{2,4})\s+(.+?)\s+([\d,]+\.\d{2})([+-])$`)},
			},
			statementDate: regexp.MustCompile(`(?i)(?:statement date|tarikh penyata)\s*:?\s*(\d{2}/\d{2}/\d{2,4})`),
			totals: mergeTotals(map[string]*regexp.Regexp{
				"opening_balance": regexp.MustCompile(`(?i)(?:(?:beginning|opening) balance|baki (?:awal|mula))[^\d]*` + amountGroup),
				"closing_balance": regexp.MustCompile(`(?i)(?:(?:ending|closing) balance|baki akhir)[^\d]*` + amountGroup),
			}),
			nonTxn:    sharedNonTxn,
			accountNo: regexp.MustCompile(`(?i)(?:account no|no akaun)\.?\s*:?\s*([\d-]{8,20})`),
			holder:    regexp.MustCompile(`(?i)account holder\s*:?\s*([A-Z][A-Z .,/@&'-]{2,60})`),
			period:    regexp.MustCompile(`(?i)(?:statement period|tempoh penyata)\s*:?\s*(.+)$`),
		},
		"credit-card": {
			txns: []txnPattern{
				{re: regexp.MustCompile(`^(\d{2}/\d{2})\s+(.+?)\s+([\d,]+\.\d{2})\s*(CR)?$`), noYear: true},
			},
			statementDate: regexp.MustCompile(`(?i)statement date\s*:?\s*(\d{2}/\d{2}/\d{2,4})`),
			totals:        sharedTotals,
			nonTxn:        sharedNonTxn,
			accountNo:     regexp.MustCompile(`(?i)card (?:no|number)\.?\s*:?\s*([\dX*\s-]{12,25})`),
			holder:        regexp.MustCompile(`(?i)cardholder\s*:?\s*([A-Z][A-Z .,/@&'-]{2,60})`),
			period:        regexp.MustCompile(`(?i)statement period\s*:?\s*(.+)$`),
		},
	},
	model.InstitutionCIMB: {
		"conventional": {
			txns: []txnPattern{
				{re: regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})\s+(.+?)\s+([\d,]+\.\d{2})()\s+([\d,]+\.\d{2})$`), inferDir: true},
			},
			statementDate: regexp.MustCompile(`(?i)statement date\s*:?\s*(\d{2}/\d{2}/\d{4})`),
			totals:        sharedTotals,
			nonTxn:        sharedNonTxn,
			accountNo:     regexp.MustCompile(`(?i)account (?:no|number)\.?\s*:?\s*([\d-]{8,20})`),
			holder:        regexp.MustCompile(`(?i)account holder\s*:?\s*([A-Z][A-Z .,/@&'-]{2,60})`),
			period:        regexp.MustCompile(`(?i)statement period\s*:?\s*(.+)$`),
		},
	},
	model.InstitutionHSBC: {
		"conventional": {
			txns: []txnPattern{
				{re: regexp.MustCompile(`^(\d{1,2} [A-Z][a-z]{2} \d{2,4})\s+(.+?)\s+([\d,]+\.\d{2})()\s+([\d,]+\.\d{2})$`), inferDir: true},
				{re: regexp.MustCompile(`^(\d{1,2} [A-Z][a-z]{2} \d{2,4})\s+(.+?)\s+([\d,]+\.\d{2})$`), inferDir: true},
			},
			statementDate: regexp.MustCompile(`(?i)statement date\s*:?\s*(\d{1,2} [A-Z][a-z]{2} \d{2,4})`),
			totals:        sharedTotals,
			nonTxn:        sharedNonTxn,
			accountNo:     regexp.MustCompile(`(?i)account number\s*:?\s*([\d-]{8,20})`),
			holder:        regexp.MustCompile(`(?i)account (?:holder|name)\s*:?\s*([A-Z][A-Z .,/@&'-]{2,60})`),
			period:        regexp.MustCompile(`(?i)statement period\s*:?\s*(.+)$`),
		},
	},
	model.InstitutionUnknown: {
		"generic": {
			txns: []txnPattern{
				// The balance-bearing pattern must be tried first: the
				// marker pattern's end anchor would otherwise swallow the
				// running balance as the amount.
				{re: regexp.MustCompile(`^(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\s+(.+?)\s+([\d,]+\.\d{2})()\s+([\d,]+\.\d{2})$`), inferDir: true},
				{re: regexp.MustCompile(`^(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\s+(.+?)\s+([\d,]+\.\d{2})\s*(CR|DR|[+-])?\s*$`)},
			},
			statementDate: regexp.MustCompile(`(?i)statement date\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
			totals:        sharedTotals,
			nonTxn:        sharedNonTxn,
			accountNo:     regexp.MustCompile(`(?i)(?:account|a/c) (?:no|number)\.?\s*:?\s*([\d-]{8,20})`),
			holder:        regexp.MustCompile(`(?i)(?:account holder|customer name)\s*:?\s*([A-Z][A-Z .,/@&'-]{2,60})`),
			period:        regexp.MustCompile(`(?i)statement period\s*:?\s*(.+)$`),
		},
	},
}

func mergeTotals(overrides map[string]*regexp.Regexp) map[string]*regexp.Regexp {
	merged := make(map[string]*regexp.Regexp, len(sharedTotals))
	for k, v := range sharedTotals {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// setFor resolves the pattern set for a descriptor, falling back to the
// generic set so an unknown variant still gets best-effort parsing.
func setFor(desc model.FormatDescriptor) patternSet {
	if variants, ok := patternSets[desc.Institution]; ok {
		if set, ok := variants[desc.Variant]; ok {
			return set
		}
		if set, ok := variants["conventional"]; ok {
			return set
		}
	}
	return patternSets[model.InstitutionUnknown]["generic"]
}

// TextPatternAdapter applies per-institution line patterns to the document's
// native text layer. Lines matching neither a transaction pattern nor a
// known non-transaction pattern are counted as unparsed, not dropped
// silently.
type TextPatternAdapter struct{}

// NewTextPattern creates the text-pattern adapter.
func NewTextPattern() *TextPatternAdapter {
	return &TextPatternAdapter{}
}

// nativeTextConfidence is the default confidence for machine-readable text
// layers. OCR-derived text always scores below this.
const nativeTextConfidence = 0.9

// Extract implements Adapter.
func (a *TextPatternAdapter) Extract(_ context.Context, doc model.Document, desc model.FormatDescriptor) (Result, error) {
	text, err := documentText(doc)
	if err != nil {
		slog.Warn("Text extraction failed, returning empty extraction",
			"file", doc.Filename,
			"error", err)
		return Result{Text: &model.ExtractedText{Source: model.SourceNative}}, nil
	}
	if !HasUsableText(text) {
		return Result{Text: &model.ExtractedText{Source: model.SourceNative}}, nil
	}

	extracted := model.ExtractedText{
		Text:       text,
		Source:     model.SourceNative,
		Confidence: nativeTextConfidence,
	}
	result := ParseText(text, desc)
	result.Text = &extracted
	result.Confidence = extracted.Confidence
	return result, nil
}

// documentText returns the native text of a document: the PDF text layer for
// PDFs, raw bytes for plain text.
func documentText(doc model.Document) (string, error) {
	if doc.Extension() == ".pdf" {
		return PDFText(doc.Content)
	}
	return string(doc.Content), nil
}

// ParseText runs the line-level pattern logic over already-extracted text.
// The OCR adapter reuses it at reduced confidence.
func ParseText(text string, desc model.FormatDescriptor) Result {
	set := setFor(desc)
	var result Result

	statementDate := findStatementDate(set, text)
	result.Meta = extractMeta(set, text)
	result.Totals = extractTotals(set, text)

	var needsInference []int
	for _, rawLine := range strings.Split(text, "\n") {
		line := normalizeLine(rawLine)
		if line == "" {
			continue
		}

		if txn, inferred, ok := matchTxn(set, line, statementDate); ok {
			if inferred {
				needsInference = append(needsInference, len(result.Transactions))
			}
			if txn.Date.Year() == 0 {
				result.Stats.UnresolvedDates++
			}
			result.Transactions = append(result.Transactions, txn)
			continue
		}

		if isKnownNonTxn(set, line) || isTotalsLine(set, line) {
			continue
		}
		result.Stats.UnparsedLines++
	}

	if result.Stats.UnresolvedDates > 0 {
		slog.Warn("Statement date missing, year-less transaction dates left unresolved",
			"unresolved", result.Stats.UnresolvedDates)
	}

	inferDirections(result.Transactions, needsInference, result.Totals.OpeningBalance)
	return result
}

// normalizeLine cleans common PDF extraction artifacts.
func normalizeLine(line string) string {
	line = strings.ReplaceAll(line, "\u00A0", " ")
	line = strings.ReplaceAll(line, "\u200B", "")
	line = strings.ReplaceAll(line, "\t", " ")
	return strings.TrimSpace(line)
}

func matchTxn(set patternSet, line string, statementDate time.Time) (model.RawTransaction, bool, bool) {
	for _, pattern := range set.txns {
		m := pattern.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		date, err := ParseDate(m[1])
		if err != nil {
			continue
		}
		if pattern.noYear && !statementDate.IsZero() {
			date = FixYear(date, statementDate)
		}

		amount, err := ParseAmount(m[3])
		if err != nil {
			continue
		}

		txn := model.RawTransaction{
			Date:        date,
			Description: strings.TrimSpace(m[2]),
			Amount:      amount.Abs(),
		}

		marker := ""
		if len(m) > 4 {
			marker = strings.TrimSpace(m[4])
		}
		switch marker {
		case "+", "CR":
			txn.Direction = model.DirectionCredit
		case "-", "DR":
			txn.Direction = model.DirectionDebit
		default:
			// No marker: debit until balance inference says otherwise.
			txn.Direction = model.DirectionDebit
		}

		if len(m) > 5 && m[5] != "" {
			if balance, err := ParseAmount(m[5]); err == nil {
				txn.Balance = &balance
			}
		}

		return txn, pattern.inferDir && marker == "", true
	}
	return model.RawTransaction{}, false, false
}

func isKnownNonTxn(set patternSet, line string) bool {
	for _, re := range set.nonTxn {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func isTotalsLine(set patternSet, line string) bool {
	for _, re := range set.totals {
		if re.MatchString(line) {
			return true
		}
	}
	if set.statementDate != nil && set.statementDate.MatchString(line) {
		return true
	}
	if set.accountNo != nil && set.accountNo.MatchString(line) {
		return true
	}
	if set.holder != nil && set.holder.MatchString(line) {
		return true
	}
	if set.period != nil && set.period.MatchString(line) {
		return true
	}
	return false
}

func findStatementDate(set patternSet, text string) time.Time {
	if set.statementDate == nil {
		return time.Time{}
	}
	m := set.statementDate.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}
	}
	date, err := ParseDate(m[1])
	if err != nil {
		return time.Time{}
	}
	return date
}

func extractTotals(set patternSet, text string) model.StatedTotals {
	var totals model.StatedTotals
	grab := func(field string) *decimal.Decimal {
		re, ok := set.totals[field]
		if !ok {
			return nil
		}
		m := re.FindStringSubmatch(text)
		if m == nil {
			return nil
		}
		amount, err := ParseAmount(m[len(m)-1])
		if err != nil {
			return nil
		}
		return &amount
	}

	totals.OpeningBalance = grab("opening_balance")
	totals.ClosingBalance = grab("closing_balance")
	totals.TotalCredits = grab("total_credits")
	totals.TotalDebits = grab("total_debits")
	totals.MinimumPaymentDue = grab("minimum_payment_due")
	totals.TotalAmountDue = grab("total_amount_due")
	return totals
}

func extractMeta(set patternSet, text string) model.StatementMeta {
	var meta model.StatementMeta
	if set.accountNo != nil {
		if m := set.accountNo.FindStringSubmatch(text); m != nil {
			meta.AccountNumber = strings.TrimSpace(m[1])
		}
	}
	if set.holder != nil {
		if m := set.holder.FindStringSubmatch(text); m != nil {
			meta.AccountHolder = strings.TrimSpace(m[1])
		}
	}
	if set.period != nil {
		if m := set.period.FindStringSubmatch(text); m != nil {
			meta.StatementPeriod = strings.TrimSpace(m[1])
		}
	}
	return meta
}

// inferDirections fixes the direction of marker-less transactions from
// running balance deltas: balance down means debit, balance up means credit.
// The first transaction compares against the stated opening balance when one
// exists.
func inferDirections(txns []model.RawTransaction, indexes []int, opening *decimal.Decimal) {
	for _, i := range indexes {
		if txns[i].Balance == nil {
			continue
		}

		var prev *decimal.Decimal
		if i == 0 {
			prev = opening
		} else if txns[i-1].Balance != nil {
			prev = txns[i-1].Balance
		}
		if prev == nil {
			continue
		}

		if txns[i].Balance.GreaterThan(*prev) {
			txns[i].Direction = model.DirectionCredit
		} else {
			txns[i].Direction = model.DirectionDebit
		}
	}
}
