package extract

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/layak-app/layak/internal/model"
)

// columnLayout names the columns a tabular variant uses. Either a
// debit/credit column pair or a single signed amount column carries the
// money; the pair wins when both are named.
//
// Direction conventions, per format:
//   - maybank-casa-csv: separate Debit and Credit columns; the populated
//     column decides direction.
//   - cimb-casa-csv and generic layouts: one signed Amount column; negative
//     is a debit (outflow), positive a credit.
type columnLayout struct {
	date    string
	desc    string
	debit   string
	credit  string
	amount  string
	balance string
}

var tabularLayouts = map[string]columnLayout{
	"maybank-casa-csv": {date: "date", desc: "description", debit: "debit", credit: "credit", balance: "balance"},
	"cimb-casa-csv":    {date: "date", desc: "transaction details", amount: "amount", balance: "balance"},
	"generic-csv":      {date: "date", desc: "description", amount: "amount", balance: "balance"},
	"xlsx-generic":     {date: "date", desc: "description", amount: "amount", balance: "balance"},
}

// TabularAdapter extracts transactions from spreadsheet and CSV documents
// with known column layouts. Rows whose mandatory columns (date, amount)
// cannot be parsed are skipped, never fabricated, and the skip count is
// reported.
type TabularAdapter struct{}

// NewTabular creates the structured-tabular adapter.
func NewTabular() *TabularAdapter {
	return &TabularAdapter{}
}

// Extract implements Adapter.
func (a *TabularAdapter) Extract(_ context.Context, doc model.Document, desc model.FormatDescriptor) (Result, error) {
	layout, ok := tabularLayouts[desc.Variant]
	if !ok {
		layout = tabularLayouts["generic-csv"]
	}

	var (
		rows [][]string
		err  error
	)
	if doc.Extension() == ".xlsx" {
		rows, err = xlsxRows(doc.Content)
	} else {
		rows, err = csvRows(doc.Content)
	}
	if err != nil {
		slog.Warn("Tabular read failed, returning empty extraction",
			"file", doc.Filename,
			"error", err)
		return Result{}, nil
	}
	if len(rows) == 0 {
		return Result{}, nil
	}

	cols, err := resolveColumns(rows[0], layout)
	if err != nil {
		slog.Warn("Tabular header did not match layout",
			"file", doc.Filename,
			"variant", desc.Variant,
			"error", err)
		return Result{}, nil
	}

	result := Result{Confidence: 1.0}
	for _, row := range rows[1:] {
		txn, ok := parseTabularRow(row, cols)
		if !ok {
			result.Stats.SkippedRows++
			continue
		}
		result.Transactions = append(result.Transactions, txn)
	}

	if result.Stats.SkippedRows > 0 {
		slog.Info("Skipped malformed tabular rows",
			"file", doc.Filename,
			"skipped", result.Stats.SkippedRows,
			"parsed", len(result.Transactions))
	}
	return result, nil
}

// resolvedColumns holds column indexes after matching the header row.
// An index of -1 means the layout does not use that column.
type resolvedColumns struct {
	date    int
	desc    int
	debit   int
	credit  int
	amount  int
	balance int
}

func resolveColumns(header []string, layout columnLayout) (resolvedColumns, error) {
	index := func(name string) int {
		if name == "" {
			return -1
		}
		for i, cell := range header {
			if strings.EqualFold(strings.TrimSpace(cell), name) {
				return i
			}
		}
		return -1
	}

	cols := resolvedColumns{
		date:    index(layout.date),
		desc:    index(layout.desc),
		debit:   index(layout.debit),
		credit:  index(layout.credit),
		amount:  index(layout.amount),
		balance: index(layout.balance),
	}

	if cols.date < 0 {
		return cols, fmt.Errorf("missing date column %q", layout.date)
	}
	if cols.amount < 0 && (cols.debit < 0 || cols.credit < 0) {
		return cols, fmt.Errorf("missing amount columns")
	}
	return cols, nil
}

func parseTabularRow(row []string, cols resolvedColumns) (model.RawTransaction, bool) {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	date, err := ParseDate(cell(cols.date))
	if err != nil {
		return model.RawTransaction{}, false
	}

	txn := model.RawTransaction{
		Date:        date,
		Description: cell(cols.desc),
	}

	if cols.debit >= 0 && cols.credit >= 0 {
		debit, credit := cell(cols.debit), cell(cols.credit)
		switch {
		case debit != "":
			amount, err := ParseAmount(debit)
			if err != nil {
				return model.RawTransaction{}, false
			}
			txn.Amount = amount.Abs()
			txn.Direction = model.DirectionDebit
		case credit != "":
			amount, err := ParseAmount(credit)
			if err != nil {
				return model.RawTransaction{}, false
			}
			txn.Amount = amount.Abs()
			txn.Direction = model.DirectionCredit
		default:
			return model.RawTransaction{}, false
		}
	} else {
		amount, err := ParseAmount(cell(cols.amount))
		if err != nil {
			return model.RawTransaction{}, false
		}
		txn.Amount = amount.Abs()
		if amount.IsNegative() {
			txn.Direction = model.DirectionDebit
		} else {
			txn.Direction = model.DirectionCredit
		}
	}

	if balance, err := ParseAmount(cell(cols.balance)); err == nil && cols.balance >= 0 {
		txn.Balance = &balance
	}

	return txn, true
}

func csvRows(content []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1 // ragged exports are common
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rows, nil
}

func xlsxRows(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
