// Package detect determines the issuing institution and layout variant of a
// document, selecting which extraction strategy runs for it.
package detect

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/layak-app/layak/internal/model"
)

// Detector inspects structural signals of a document in a fixed priority
// order: explicit hint, tabular header shape, institution letterhead text,
// then a best-effort fallback. Detection is deterministic and never fails:
// unrecognized input yields the unknown variant with the text-pattern
// strategy.
type Detector struct {
	letterheads []letterhead
	hints       map[string]model.FormatDescriptor
}

type letterhead struct {
	needle     string
	descriptor model.FormatDescriptor
}

// New creates a Detector with the built-in institution signatures.
func New() *Detector {
	return &Detector{
		hints: map[string]model.FormatDescriptor{
			"maybank":    {Institution: model.InstitutionMaybank, Variant: "conventional", Strategy: model.StrategyTextPattern},
			"maybank-cc": {Institution: model.InstitutionMaybank, Variant: "credit-card", Strategy: model.StrategyTextPattern},
			"cimb":       {Institution: model.InstitutionCIMB, Variant: "conventional", Strategy: model.StrategyTextPattern},
			"hsbc":       {Institution: model.InstitutionHSBC, Variant: "conventional", Strategy: model.StrategyTextPattern},
		},
		letterheads: []letterhead{
			{"malayan banking berhad", model.FormatDescriptor{Institution: model.InstitutionMaybank, Variant: "conventional", Strategy: model.StrategyTextPattern}},
			{"maybank islamic", model.FormatDescriptor{Institution: model.InstitutionMaybank, Variant: "conventional", Strategy: model.StrategyTextPattern}},
			{"maybankard", model.FormatDescriptor{Institution: model.InstitutionMaybank, Variant: "credit-card", Strategy: model.StrategyTextPattern}},
			{"maybank", model.FormatDescriptor{Institution: model.InstitutionMaybank, Variant: "conventional", Strategy: model.StrategyTextPattern}},
			{"cimb bank berhad", model.FormatDescriptor{Institution: model.InstitutionCIMB, Variant: "conventional", Strategy: model.StrategyTextPattern}},
			{"cimb islamic", model.FormatDescriptor{Institution: model.InstitutionCIMB, Variant: "conventional", Strategy: model.StrategyTextPattern}},
			{"cimb", model.FormatDescriptor{Institution: model.InstitutionCIMB, Variant: "conventional", Strategy: model.StrategyTextPattern}},
			{"hsbc bank malaysia", model.FormatDescriptor{Institution: model.InstitutionHSBC, Variant: "conventional", Strategy: model.StrategyTextPattern}},
			{"hsbc", model.FormatDescriptor{Institution: model.InstitutionHSBC, Variant: "conventional", Strategy: model.StrategyTextPattern}},
		},
	}
}

// ofxSignature appears near the top of both SGML and XML OFX files.
const ofxSignature = "<OFX>"

// Detect resolves a document to a FormatDescriptor. firstPageText is the
// already-extracted text of the first page when available; pass "" when the
// document has no native text layer.
func (d *Detector) Detect(doc model.Document, firstPageText string) model.FormatDescriptor {
	// 1. Explicit institution hint wins outright.
	if doc.InstitutionHint != "" {
		if desc, ok := d.hints[strings.ToLower(strings.TrimSpace(doc.InstitutionHint))]; ok {
			slog.Debug("Format detected from hint",
				"hint", doc.InstitutionHint,
				"institution", desc.Institution)
			return desc
		}
	}

	// 2. Tabular formats are identified by file shape, not letterhead.
	switch doc.Extension() {
	case ".csv":
		if variant, ok := matchCSVHeader(doc.Content); ok {
			return model.FormatDescriptor{Institution: institutionForTabularVariant(variant), Variant: variant, Strategy: model.StrategyTabular}
		}
	case ".xlsx":
		return model.FormatDescriptor{Institution: model.InstitutionUnknown, Variant: "xlsx-generic", Strategy: model.StrategyTabular}
	case ".ofx", ".qfx":
		return model.FormatDescriptor{Institution: model.InstitutionUnknown, Variant: "ofx", Strategy: model.StrategyOFX}
	}
	if bytes.Contains(doc.Content, []byte(ofxSignature)) {
		return model.FormatDescriptor{Institution: model.InstitutionUnknown, Variant: "ofx", Strategy: model.StrategyOFX}
	}

	// 3. Institution letterhead in the extracted text.
	if firstPageText != "" {
		lower := strings.ToLower(firstPageText)
		for _, lh := range d.letterheads {
			if strings.Contains(lower, lh.needle) {
				slog.Debug("Format detected from letterhead",
					"needle", lh.needle,
					"institution", lh.descriptor.Institution)
				return lh.descriptor
			}
		}
	}

	// Images with no text layer go straight to OCR.
	switch doc.Extension() {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		return model.FormatDescriptor{Institution: model.InstitutionUnknown, Variant: "scan", Strategy: model.StrategyOCR}
	}
	if firstPageText == "" && doc.Extension() == ".pdf" {
		return model.FormatDescriptor{Institution: model.InstitutionUnknown, Variant: "scan", Strategy: model.StrategyOCR}
	}

	// 4. Best-effort fallback: unknown institution, text-pattern strategy.
	slog.Debug("Format unrecognized, falling back to text-pattern", "file", doc.Filename)
	return model.FormatDescriptor{
		Institution: model.InstitutionUnknown,
		Variant:     "generic",
		Strategy:    model.StrategyTextPattern,
	}
}

// knownCSVHeaders maps a layout variant to the mandatory column names that
// identify it. Comparison is case-insensitive on the first row only.
var knownCSVHeaders = map[string][]string{
	"maybank-casa-csv": {"date", "description", "debit", "credit", "balance"},
	"cimb-casa-csv":    {"date", "transaction details", "amount", "balance"},
	"generic-csv":      {"date", "description", "amount"},
}

func matchCSVHeader(content []byte) (string, bool) {
	idx := bytes.IndexByte(content, '\n')
	if idx < 0 {
		idx = len(content)
	}
	header := strings.ToLower(string(content[:idx]))

	// Most specific layouts first; the generic layout is the last resort.
	for _, variant := range []string{"maybank-casa-csv", "cimb-casa-csv", "generic-csv"} {
		cols := knownCSVHeaders[variant]
		all := true
		for _, col := range cols {
			if !strings.Contains(header, col) {
				all = false
				break
			}
		}
		if all {
			return variant, true
		}
	}
	return "", false
}

func institutionForTabularVariant(variant string) model.Institution {
	switch {
	case strings.HasPrefix(variant, "maybank"):
		return model.InstitutionMaybank
	case strings.HasPrefix(variant, "cimb"):
		return model.InstitutionCIMB
	default:
		return model.InstitutionUnknown
	}
}
