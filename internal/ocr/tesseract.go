package ocr

import (
	"context"
	"fmt"
	"os"

	"github.com/otiai10/gosseract/v2"

	"github.com/layak-app/layak/internal/common"
)

// Tesseract runs OCR through a local tesseract installation via gosseract.
type Tesseract struct {
	language string
}

// NewTesseract creates a tesseract-backed provider recognizing English text.
func NewTesseract() *Tesseract {
	return &Tesseract{language: "eng"}
}

// Name implements Provider.
func (t *Tesseract) Name() string { return "tesseract" }

// Recognize implements Provider. gosseract reads from a file path, so the
// image is staged in a temp file for the duration of the call.
func (t *Tesseract) Recognize(ctx context.Context, image []byte) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	tmp, err := os.CreateTemp("", "layak-ocr-*.png")
	if err != nil {
		return Result{}, fmt.Errorf("failed to stage image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return Result{}, fmt.Errorf("failed to stage image: %w", err)
	}
	tmp.Close()

	type recognition struct {
		err    error
		result Result
	}
	done := make(chan recognition, 1)

	go func() {
		res, err := t.recognizeFile(tmp.Name())
		done <- recognition{result: res, err: err}
	}()

	// gosseract calls into C and cannot be interrupted; abandoning the
	// goroutine on timeout keeps the document-level deadline honest.
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case r := <-done:
		return r.result, r.err
	}
}

func (t *Tesseract) recognizeFile(path string) (Result, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return Result{}, fmt.Errorf("%w: failed to set language: %v", common.ErrProviderUnavailable, err)
	}
	if err := client.SetImage(path); err != nil {
		return Result{}, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", common.ErrProviderUnavailable, err)
	}

	return Result{Text: text, Confidence: wordConfidence(client)}, nil
}

// wordConfidence averages per-word confidences reported by tesseract,
// scaled to [0,1]. Falls back to a conservative default when boxes are
// unavailable.
func wordConfidence(client *gosseract.Client) float64 {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0.5
	}

	var total float64
	for _, box := range boxes {
		total += box.Confidence
	}
	return total / float64(len(boxes)) / 100.0
}
