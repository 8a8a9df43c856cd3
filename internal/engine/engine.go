// Package engine orchestrates the ingestion pipeline: format detection,
// extraction, classification, and reconciliation.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/layak-app/layak/internal/classify"
	"github.com/layak-app/layak/internal/common"
	"github.com/layak-app/layak/internal/detect"
	"github.com/layak-app/layak/internal/extract"
	"github.com/layak-app/layak/internal/model"
	"github.com/layak-app/layak/internal/ocr"
	"github.com/layak-app/layak/internal/reconcile"
)

// Options configures an Engine.
type Options struct {
	OCRProvider ocr.Provider
	Ruleset     classify.Ruleset
	Tolerance   decimal.Decimal
	OCRTimeout  time.Duration
}

// Engine runs the per-document pipeline. It is stateless per invocation:
// the only shared state is the read-only ruleset, safe for concurrent
// reads.
type Engine struct {
	detector   *detect.Detector
	registry   *extract.Registry
	classifier *classify.Classifier
	validator  *reconcile.Validator
}

// New assembles an engine with all four extraction strategies registered.
func New(opts Options) *Engine {
	registry := extract.NewRegistry()
	registry.Register(model.StrategyTabular, extract.NewTabular())
	registry.Register(model.StrategyTextPattern, extract.NewTextPattern())
	registry.Register(model.StrategyOFX, extract.NewOFX())
	registry.Register(model.StrategyOCR, extract.NewOCR(opts.OCRProvider, opts.OCRTimeout))

	return &Engine{
		detector:   detect.New(),
		registry:   registry,
		classifier: classify.New(opts.Ruleset),
		validator:  reconcile.New(opts.Tolerance),
	}
}

// Ingest runs one document through the full chain. The only hard rejection
// is malformed top-level input (an empty payload); every downstream problem
// surfaces as confidence and needs_review flags on the result instead of an
// error, so a batch never aborts on one bad document.
func (e *Engine) Ingest(ctx context.Context, doc model.Document) (model.IngestResult, error) {
	if len(doc.Content) == 0 {
		return model.IngestResult{}, fmt.Errorf("%w: %s", common.ErrEmptyDocument, doc.Filename)
	}

	nativeText := detectionText(doc)
	desc := e.detector.Detect(doc, nativeText)
	if desc.Unknown() {
		slog.Info("Proceeding with best-effort extraction",
			"file", doc.Filename,
			"reason", common.ErrFormatUnrecognized,
			"strategy", desc.Strategy)
	}

	adapter, err := e.registry.For(desc.Strategy)
	if err != nil {
		return model.IngestResult{}, fmt.Errorf("%w: %v", common.ErrUnsupportedInput, err)
	}

	extracted, err := adapter.Extract(ctx, doc, desc)
	if err != nil {
		return model.IngestResult{}, fmt.Errorf("extraction failed for %s: %w", doc.Filename, err)
	}
	if len(extracted.Transactions) == 0 {
		slog.Warn("No transactions recovered",
			"file", doc.Filename,
			"reason", common.ErrExtractionEmpty,
			"confidence", extracted.Confidence)
	}

	classified := e.classifier.ClassifyAll(extracted.Transactions)
	reconciled := e.validator.Reconcile(classified, extracted.Totals)

	source := model.SourceNative
	if extracted.Text != nil {
		source = extracted.Text.Source
	}

	result := model.IngestResult{
		Format:         desc,
		Transactions:   classified,
		Reconciliation: reconciled,
		Stats:          extracted.Stats,
		Meta:           extracted.Meta,
		TextSource:     source,
		Confidence:     extracted.Confidence,
	}

	slog.Info("Document ingested",
		"file", doc.Filename,
		"hash", doc.Hash(),
		"institution", desc.Institution,
		"strategy", desc.Strategy,
		"transactions", len(classified),
		"needs_review", reconciled.NeedsReview)
	return result, nil
}

// detectionText returns the text detection can sniff letterheads from,
// best-effort. Tabular and OFX formats are detected structurally, so only
// PDF and plain-text documents matter here.
func detectionText(doc model.Document) string {
	switch doc.Extension() {
	case ".pdf":
		text, err := extract.PDFText(doc.Content)
		if err != nil {
			return ""
		}
		return text
	case ".txt", "":
		return string(doc.Content)
	default:
		return ""
	}
}
