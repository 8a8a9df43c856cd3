package extract

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/layak-app/layak/internal/common"
	"github.com/layak-app/layak/internal/model"
	"github.com/layak-app/layak/internal/ocr"
)

// OCRAdapter recovers transactions from scanned documents: it OCRs the page
// images, then applies the same text-pattern logic at reduced confidence.
// When OCR yields no usable text the adapter returns an empty transaction
// list with zero confidence, signaling that manual data entry is required.
// That is a first-class outcome, not a failure.
type OCRAdapter struct {
	provider ocr.Provider
	timeout  time.Duration
}

// NewOCR creates the image-OCR adapter. timeout bounds the total OCR work
// for one document so a slow provider cannot stall unrelated documents.
func NewOCR(provider ocr.Provider, timeout time.Duration) *OCRAdapter {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OCRAdapter{provider: provider, timeout: timeout}
}

// ocrConfidenceCeiling keeps OCR-sourced text strictly below native-text
// confidence regardless of what the provider reports.
const ocrConfidenceCeiling = 0.8

// Extract implements Adapter.
func (a *OCRAdapter) Extract(ctx context.Context, doc model.Document, desc model.FormatDescriptor) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	images := a.pageImages(doc)
	if len(images) == 0 {
		return emptyOCRResult(), nil
	}

	var combined strings.Builder
	var totalConfidence float64
	var recognized int

	for _, image := range images {
		var res ocr.Result
		err := common.WithRetry(ctx, func() error {
			var callErr error
			res, callErr = a.provider.Recognize(ctx, image)
			if callErr != nil && errors.Is(callErr, common.ErrProviderUnavailable) {
				return &common.RetryableError{Err: callErr, Retryable: true}
			}
			return callErr
		}, common.RetryOptions{MaxAttempts: 2})
		if err != nil {
			// Timeout and provider failure degrade to a low-confidence
			// empty extraction; the batch continues for other documents.
			slog.Warn("OCR page failed",
				"file", doc.Filename,
				"provider", a.provider.Name(),
				"error", err)
			continue
		}
		if strings.TrimSpace(res.Text) == "" {
			continue
		}

		combined.WriteString(res.Text)
		combined.WriteString("\n")
		totalConfidence += res.Confidence
		recognized++
	}

	text := combined.String()
	if recognized == 0 || !HasUsableText(text) {
		return emptyOCRResult(), nil
	}

	confidence := totalConfidence / float64(recognized)
	if confidence > ocrConfidenceCeiling {
		confidence = ocrConfidenceCeiling
	}

	result := ParseText(text, desc)
	result.Text = &model.ExtractedText{
		Text:       text,
		Source:     model.SourceOCR,
		Confidence: confidence,
	}
	result.Confidence = confidence

	slog.Info("OCR extraction complete",
		"file", doc.Filename,
		"provider", a.provider.Name(),
		"pages", recognized,
		"transactions", len(result.Transactions),
		"confidence", confidence)
	return result, nil
}

// pageImages returns the images to OCR: embedded page images for scanned
// PDFs, the raw content for image files.
func (a *OCRAdapter) pageImages(doc model.Document) [][]byte {
	if doc.Extension() == ".pdf" {
		images, err := PDFImages(doc.Content)
		if err != nil {
			slog.Warn("PDF image extraction failed", "file", doc.Filename, "error", err)
			return nil
		}
		return images
	}
	return [][]byte{doc.Content}
}

func emptyOCRResult() Result {
	return Result{
		Text: &model.ExtractedText{Source: model.SourceOCR, Confidence: 0},
	}
}
