// Package commitment reads the total monthly commitment figure out of
// credit-bureau report text.
package commitment

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/layak-app/layak/internal/common"
	"github.com/layak-app/layak/internal/extract"
	"github.com/layak-app/layak/internal/model"
	"github.com/layak-app/layak/internal/ocr"
)

var amountCapture = `(?:rm|myr)?\s*([0-9]+(?:\.[0-9]+)?)`

// patterns is the ordered ladder over normalized bureau-report text. CCRIS
// and CTOS reports label the figure differently between report versions, so
// the ladder goes from the most explicit label to the loosest.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`total\s*monthly\s*commitments?\s*:?\s*` + amountCapture),
	regexp.MustCompile(`monthly\s*commitments?\s*:?\s*` + amountCapture),
	regexp.MustCompile(`total\s*(?:monthly\s*)?instal?lments?\s*:?\s*` + amountCapture),
	regexp.MustCompile(`jumlah\s*ansuran\s*bulanan\s*:?\s*` + amountCapture),
	regexp.MustCompile(`commitments?\s*:?\s*` + amountCapture),
}

// manualEntryNote marks a zero that is a missing figure, not a true zero.
const manualEntryNote = "no commitment figure found; manual entry required"

// FromText evaluates the pattern ladder against already-extracted report
// text. When no pattern matches, the amount defaults to 0 with an explicit
// note; callers must treat that as "requires manual entry", never as a true
// zero commitment.
func FromText(text string) model.CommitmentFigure {
	normalized := strings.ReplaceAll(strings.ToLower(text), ",", "")

	for _, pattern := range patterns {
		m := pattern.FindStringSubmatch(normalized)
		if m == nil {
			continue
		}
		amount, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return model.CommitmentFigure{Amount: amount}
	}

	slog.Debug("No commitment pattern matched", "reason", common.ErrFieldNotFound)
	return model.CommitmentFigure{Note: manualEntryNote}
}

// Extractor resolves a bureau report document to its commitment figure:
// native PDF text first, OCR fallback for scans, then the pattern ladder.
type Extractor struct {
	provider ocr.Provider
}

// NewExtractor creates a commitment extractor using the given OCR provider
// for scanned reports.
func NewExtractor(provider ocr.Provider) *Extractor {
	return &Extractor{provider: provider}
}

// Extract pulls the commitment figure from raw document bytes.
func (e *Extractor) Extract(ctx context.Context, doc model.Document) (model.CommitmentFigure, error) {
	if len(doc.Content) == 0 {
		return model.CommitmentFigure{}, common.ErrEmptyDocument
	}

	text := ""
	if doc.Extension() == ".pdf" {
		if native, err := extract.PDFText(doc.Content); err == nil {
			text = native
		}
	} else if doc.Extension() == "" || doc.Extension() == ".txt" {
		text = string(doc.Content)
	}

	if !extract.HasUsableText(text) && e.provider != nil {
		text = e.ocrText(ctx, doc)
	}

	if !extract.HasUsableText(text) {
		return model.CommitmentFigure{Note: manualEntryNote}, nil
	}
	return FromText(text), nil
}

// ocrText recognizes the report's page images: embedded images for scanned
// PDFs, the raw content for image files.
func (e *Extractor) ocrText(ctx context.Context, doc model.Document) string {
	images := [][]byte{doc.Content}
	if doc.Extension() == ".pdf" {
		pdfImages, err := extract.PDFImages(doc.Content)
		if err != nil {
			slog.Warn("Bureau report image extraction failed",
				"file", doc.Filename,
				"error", err)
			return ""
		}
		images = pdfImages
	}

	var b strings.Builder
	for _, image := range images {
		res, err := e.provider.Recognize(ctx, image)
		if err != nil {
			slog.Warn("Bureau report OCR failed",
				"file", doc.Filename,
				"provider", e.provider.Name(),
				"error", err)
			continue
		}
		b.WriteString(res.Text)
		b.WriteString("\n")
	}
	return b.String()
}
