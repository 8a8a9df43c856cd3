package commitment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layak-app/layak/internal/common"
	"github.com/layak-app/layak/internal/model"
)

func TestFromText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantAmount float64
		wantNote   bool
	}{
		{
			name:       "explicit total monthly commitment",
			text:       "CCRIS REPORT\nTotal Monthly Commitment: RM 2,150.00",
			wantAmount: 2150,
		},
		{
			name:       "monthly commitment without total",
			text:       "Monthly Commitments RM 980.50",
			wantAmount: 980.50,
		},
		{
			name:       "installments label",
			text:       "Total Instalments: 1,750.00",
			wantAmount: 1750,
		},
		{
			name:       "malay label",
			text:       "Jumlah Ansuran Bulanan: 1,200.00",
			wantAmount: 1200,
		},
		{
			name:     "no figure requires manual entry",
			text:     "CTOS SCORE REPORT\nNo outstanding facilities listed.",
			wantNote: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			figure := FromText(tt.text)
			if tt.wantNote {
				assert.Zero(t, figure.Amount)
				assert.Equal(t, manualEntryNote, figure.Note)
				return
			}
			assert.InDelta(t, tt.wantAmount, figure.Amount, 0.001)
			assert.Empty(t, figure.Note)
		})
	}
}

func TestFromTextLadderPrefersExplicitLabel(t *testing.T) {
	// Both labels appear; the most explicit one wins regardless of position.
	text := `Commitments: 9,999.00
Total Monthly Commitment: 1,500.00`

	figure := FromText(text)
	assert.InDelta(t, 1500, figure.Amount, 0.001)
}

func TestExtractorRejectsEmptyDocument(t *testing.T) {
	extractor := NewExtractor(nil)

	_, err := extractor.Extract(context.Background(), model.Document{Filename: "empty.pdf"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrEmptyDocument)
}

func TestExtractorPlainTextReport(t *testing.T) {
	extractor := NewExtractor(nil)
	doc := model.Document{
		Filename: "ccris.txt",
		Content:  []byte("CCRIS CONSUMER REPORT\nTotal Monthly Commitment: RM 2,150.00\nEnd of report."),
	}

	figure, err := extractor.Extract(context.Background(), doc)
	require.NoError(t, err)
	assert.InDelta(t, 2150, figure.Amount, 0.001)
}

func TestExtractorUnreadableDocumentNeedsManualEntry(t *testing.T) {
	extractor := NewExtractor(nil)
	doc := model.Document{Filename: "scan.png", Content: []byte{0x89, 0x50}}

	figure, err := extractor.Extract(context.Background(), doc)
	require.NoError(t, err, "an unreadable report degrades, it does not fail")
	assert.Zero(t, figure.Amount)
	assert.Equal(t, manualEntryNote, figure.Note)
}
