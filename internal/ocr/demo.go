package ocr

import "context"

// Demo is a fixed-output provider for tests and air-gapped environments. It
// returns the configured text for every image, with moderate confidence so
// OCR-sourced results still rank below native text.
type Demo struct {
	text string
}

// NewDemo creates a demo provider that always returns text.
func NewDemo(text string) *Demo {
	return &Demo{text: text}
}

// Name implements Provider.
func (d *Demo) Name() string { return "demo" }

// Recognize implements Provider.
func (d *Demo) Recognize(ctx context.Context, _ []byte) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if d.text == "" {
		return Result{}, nil
	}
	return Result{Text: d.text, Confidence: 0.6}, nil
}
