package extract

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/layak-app/layak/internal/model"
)

// OFXAdapter parses OFX/QFX bank and credit-card exports. OFX is fully
// machine-readable, so extraction runs at full confidence with no text
// layer.
type OFXAdapter struct{}

// NewOFX creates the OFX adapter.
func NewOFX() *OFXAdapter {
	return &OFXAdapter{}
}

var (
	ofxSeverityFix = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	ofxTagFix      = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocessOFX fixes common formatting issues in OFX files: leading
// whitespace before the header, mixed-case SEVERITY values, and SGML-style
// tags missing their closing bracket.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = ofxSeverityFix.ReplaceAllStringFunc(content, strings.ToUpper)
	content = ofxTagFix.ReplaceAllString(content, "$1>")
	return content
}

// Extract implements Adapter.
func (a *OFXAdapter) Extract(_ context.Context, doc model.Document, _ model.FormatDescriptor) (Result, error) {
	processed := preprocessOFX(string(doc.Content))

	resp, err := ofxgo.ParseResponse(strings.NewReader(processed))
	if err != nil {
		slog.Warn("OFX parse failed, returning empty extraction",
			"file", doc.Filename,
			"error", err)
		return Result{}, nil
	}

	result := Result{Confidence: 1.0}

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok {
			continue
		}
		if result.Meta.AccountNumber == "" {
			result.Meta.AccountNumber = string(stmt.BankAcctFrom.AcctID)
		}
		closing := amountToDecimal(stmt.BalAmt)
		result.Totals.ClosingBalance = &closing
		result.Transactions = append(result.Transactions, convertOFXList(stmt.BankTranList)...)
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok {
			continue
		}
		if result.Meta.AccountNumber == "" {
			result.Meta.AccountNumber = string(stmt.CCAcctFrom.AcctID)
		}
		closing := amountToDecimal(stmt.BalAmt)
		result.Totals.ClosingBalance = &closing
		result.Transactions = append(result.Transactions, convertOFXList(stmt.BankTranList)...)
	}

	slog.Info("Parsed OFX document",
		"file", doc.Filename,
		"transactions", len(result.Transactions))
	return result, nil
}

func convertOFXList(list *ofxgo.TransactionList) []model.RawTransaction {
	if list == nil {
		return nil
	}

	txns := make([]model.RawTransaction, 0, len(list.Transactions))
	for _, ofxTxn := range list.Transactions {
		amount := amountToDecimal(ofxTxn.TrnAmt)

		// OFX amounts are signed: negative is money out.
		direction := model.DirectionCredit
		if amount.IsNegative() {
			direction = model.DirectionDebit
		}

		txns = append(txns, model.RawTransaction{
			Date:        ofxTxn.DtPosted.Time,
			Description: string(ofxTxn.Name),
			Amount:      amount.Abs(),
			Direction:   direction,
		})
	}
	return txns
}

func amountToDecimal(a ofxgo.Amount) decimal.Decimal {
	f, _ := a.Float64()
	return decimal.NewFromFloat(f).Round(2)
}
