// Package ocr abstracts optical character recognition behind a provider
// interface so implementations can be swapped by configuration.
package ocr

import (
	"context"
	"fmt"
)

// Result is the outcome of one recognition call. Confidence is in [0,1].
type Result struct {
	Text       string
	Confidence float64
}

// Provider turns image bytes into text. Implementations must be safe for
// concurrent use and must honor ctx cancellation; the pipeline applies a
// per-document timeout around calls.
type Provider interface {
	Name() string
	Recognize(ctx context.Context, image []byte) (Result, error)
}

// NewProvider returns the provider registered under name. The absence of one
// implementation never blocks using another.
func NewProvider(name string) (Provider, error) {
	switch name {
	case "tesseract":
		return NewTesseract(), nil
	case "demo":
		return NewDemo(""), nil
	default:
		return nil, fmt.Errorf("unknown ocr provider: %q", name)
	}
}
