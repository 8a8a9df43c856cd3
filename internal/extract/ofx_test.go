package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layak-app/layak/internal/model"
)

const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20260228120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>MYR
<BANKACCTFROM>
<BANKID>MBBEMYKL
<ACCTID>514012345678
<ACCTTYPE>SAVINGS
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20260201120000[0:GMT]
<DTEND>20260228120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20260205120000[0:GMT]
<TRNAMT>-150.00
<FITID>2026020501
<NAME>LAZADA TOPUP KUALA LUMPUR MY
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20260210120000[0:GMT]
<TRNAMT>1000.00
<FITID>2026021001
<NAME>DUITNOW CREDIT
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>5850.00
<DTASOF>20260228120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func ofxDesc() model.FormatDescriptor {
	return model.FormatDescriptor{Institution: model.InstitutionUnknown, Variant: "ofx", Strategy: model.StrategyOFX}
}

func TestOFXAdapterParsesBankStatement(t *testing.T) {
	doc := model.Document{Filename: "export.ofx", Content: []byte(sampleBankOFX)}

	result, err := NewOFX().Extract(context.Background(), doc, ofxDesc())
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)
	assert.Equal(t, 1.0, result.Confidence)

	debit := result.Transactions[0]
	assert.Equal(t, model.DirectionDebit, debit.Direction)
	assert.Equal(t, "150", debit.Amount.String(), "signed OFX amount becomes an unsigned magnitude")
	assert.Equal(t, "LAZADA TOPUP KUALA LUMPUR MY", debit.Description)
	assert.Equal(t, 2026, debit.Date.Year())

	credit := result.Transactions[1]
	assert.Equal(t, model.DirectionCredit, credit.Direction)
	assert.Equal(t, "1000", credit.Amount.String())

	require.NotNil(t, result.Totals.ClosingBalance)
	assert.Equal(t, "5850", result.Totals.ClosingBalance.String())
	assert.Equal(t, "514012345678", result.Meta.AccountNumber)
}

func TestOFXAdapterMalformedContentDegrades(t *testing.T) {
	doc := model.Document{Filename: "broken.ofx", Content: []byte("this is not ofx at all")}

	result, err := NewOFX().Extract(context.Background(), doc, ofxDesc())
	require.NoError(t, err, "a parse failure is a degraded outcome, not an error")
	assert.Empty(t, result.Transactions)
	assert.Zero(t, result.Confidence)
}

func TestPreprocessOFX(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips leading whitespace",
			input: "\n\t OFXHEADER:100",
			want:  "OFXHEADER:100",
		},
		{
			name:  "uppercases severity values",
			input: "<SEVERITY>Info</SEVERITY>",
			want:  "<SEVERITY>INFO</SEVERITY>",
		},
		{
			name:  "closes truncated sgml tags",
			input: "<STMTTRN\n<TRNTYPE",
			want:  "<STMTTRN>\n<TRNTYPE>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, preprocessOFX(tt.input))
		})
	}
}
