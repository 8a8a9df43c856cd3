// Package extract turns documents into raw transaction rows and stated
// totals. Three interchangeable strategies sit behind one contract:
// structured-tabular, text-pattern, and image-OCR, plus OFX for
// machine-readable bank exports.
package extract

import (
	"context"
	"fmt"

	"github.com/layak-app/layak/internal/model"
)

// Result is everything an adapter recovers from one document. An empty
// transaction list with zero confidence is a first-class outcome signaling
// that manual data entry is required, not a failure.
type Result struct {
	Text         *model.ExtractedText
	Transactions []model.RawTransaction
	Totals       model.StatedTotals
	Stats        model.ExtractionStats
	Meta         model.StatementMeta
	Confidence   float64
}

// Adapter extracts transactions from a document according to a detected
// format.
type Adapter interface {
	Extract(ctx context.Context, doc model.Document, desc model.FormatDescriptor) (Result, error)
}

// Registry maps strategies to adapters.
type Registry struct {
	adapters map[model.Strategy]Adapter
}

// NewRegistry creates a registry from the given strategy bindings.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[model.Strategy]Adapter)}
}

// Register binds an adapter to a strategy, replacing any previous binding.
func (r *Registry) Register(strategy model.Strategy, adapter Adapter) {
	r.adapters[strategy] = adapter
}

// For returns the adapter bound to the strategy.
func (r *Registry) For(strategy model.Strategy) (Adapter, error) {
	adapter, ok := r.adapters[strategy]
	if !ok {
		return nil, fmt.Errorf("no adapter registered for strategy %q", strategy)
	}
	return adapter, nil
}
