package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/layak-app/layak/internal/model"
)

func TestDetectPriorityOrder(t *testing.T) {
	detector := New()

	tests := []struct {
		name            string
		doc             model.Document
		firstPageText   string
		wantInstitution model.Institution
		wantVariant     string
		wantStrategy    model.Strategy
	}{
		{
			name:            "explicit hint wins over everything",
			doc:             model.Document{Filename: "x.csv", InstitutionHint: "maybank", Content: []byte("Date,Description,Amount\n")},
			firstPageText:   "CIMB Bank Berhad",
			wantInstitution: model.InstitutionMaybank,
			wantVariant:     "conventional",
			wantStrategy:    model.StrategyTextPattern,
		},
		{
			name:            "credit card hint",
			doc:             model.Document{Filename: "cc.pdf", InstitutionHint: "maybank-cc"},
			wantInstitution: model.InstitutionMaybank,
			wantVariant:     "credit-card",
			wantStrategy:    model.StrategyTextPattern,
		},
		{
			name:            "maybank csv header",
			doc:             model.Document{Filename: "export.csv", Content: []byte("Date,Description,Debit,Credit,Balance\n01/02/2026,X,1.00,,2.00\n")},
			wantInstitution: model.InstitutionMaybank,
			wantVariant:     "maybank-casa-csv",
			wantStrategy:    model.StrategyTabular,
		},
		{
			name:            "generic csv header",
			doc:             model.Document{Filename: "export.csv", Content: []byte("Date,Description,Amount\n")},
			wantInstitution: model.InstitutionUnknown,
			wantVariant:     "generic-csv",
			wantStrategy:    model.StrategyTabular,
		},
		{
			name:            "xlsx goes tabular",
			doc:             model.Document{Filename: "export.xlsx", Content: []byte{0x50, 0x4b}},
			wantInstitution: model.InstitutionUnknown,
			wantVariant:     "xlsx-generic",
			wantStrategy:    model.StrategyTabular,
		},
		{
			name:            "ofx by extension",
			doc:             model.Document{Filename: "export.qfx", Content: []byte("OFXHEADER:100")},
			wantInstitution: model.InstitutionUnknown,
			wantVariant:     "ofx",
			wantStrategy:    model.StrategyOFX,
		},
		{
			name:            "ofx by content signature",
			doc:             model.Document{Filename: "download.dat", Content: []byte("OFXHEADER:100\n<OFX><BANKMSGSRSV1>")},
			wantInstitution: model.InstitutionUnknown,
			wantVariant:     "ofx",
			wantStrategy:    model.StrategyOFX,
		},
		{
			name:            "letterhead in page text",
			doc:             model.Document{Filename: "statement.pdf", Content: []byte("%PDF")},
			firstPageText:   "CIMB Bank Berhad (13491-P)\nStatement of Account",
			wantInstitution: model.InstitutionCIMB,
			wantVariant:     "conventional",
			wantStrategy:    model.StrategyTextPattern,
		},
		{
			name:            "credit card letterhead",
			doc:             model.Document{Filename: "statement.pdf", Content: []byte("%PDF")},
			firstPageText:   "Maybankard Platinum Statement",
			wantInstitution: model.InstitutionMaybank,
			wantVariant:     "credit-card",
			wantStrategy:    model.StrategyTextPattern,
		},
		{
			name:            "image goes to ocr",
			doc:             model.Document{Filename: "scan.png", Content: []byte{0x89}},
			wantInstitution: model.InstitutionUnknown,
			wantVariant:     "scan",
			wantStrategy:    model.StrategyOCR,
		},
		{
			name:            "pdf without text layer goes to ocr",
			doc:             model.Document{Filename: "scan.pdf", Content: []byte("%PDF")},
			firstPageText:   "",
			wantInstitution: model.InstitutionUnknown,
			wantVariant:     "scan",
			wantStrategy:    model.StrategyOCR,
		},
		{
			name:            "unrecognized falls back to text pattern",
			doc:             model.Document{Filename: "notes.txt", Content: []byte("hello")},
			firstPageText:   "hello",
			wantInstitution: model.InstitutionUnknown,
			wantVariant:     "generic",
			wantStrategy:    model.StrategyTextPattern,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := detector.Detect(tt.doc, tt.firstPageText)
			assert.Equal(t, tt.wantInstitution, desc.Institution)
			assert.Equal(t, tt.wantVariant, desc.Variant)
			assert.Equal(t, tt.wantStrategy, desc.Strategy)
		})
	}
}

func TestDetectIsDeterministic(t *testing.T) {
	detector := New()
	doc := model.Document{Filename: "statement.pdf", Content: []byte("%PDF")}
	text := "Malayan Banking Berhad\nStatement of Account"

	first := detector.Detect(doc, text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, detector.Detect(doc, text))
	}
}

func TestDetectNeverFails(t *testing.T) {
	detector := New()

	// Garbage in, descriptor out: the fallback is a usable strategy.
	desc := detector.Detect(model.Document{Filename: "???", Content: []byte{0x00, 0x01}}, "")
	assert.True(t, desc.Unknown())
	assert.Equal(t, model.StrategyTextPattern, desc.Strategy)
}
