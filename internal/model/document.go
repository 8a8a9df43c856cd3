// Package model defines the records that flow through the ingestion pipeline.
package model

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"strings"
)

// Document is the opaque input to the pipeline: raw bytes plus declared
// metadata. It is never mutated after construction.
type Document struct {
	Filename        string
	MimeType        string
	InstitutionHint string
	Content         []byte
}

// Extension returns the lowercased file extension including the dot,
// or "" when the filename carries none.
func (d Document) Extension() string {
	return strings.ToLower(filepath.Ext(d.Filename))
}

// Hash returns a stable content hash, used for idempotence checks and log
// correlation.
func (d Document) Hash() string {
	sum := sha256.Sum256(d.Content)
	return fmt.Sprintf("%x", sum[:8])
}

// TextSource tags where extracted text came from.
type TextSource string

const (
	// SourceNative marks text read from a machine-readable text layer.
	SourceNative TextSource = "native"
	// SourceOCR marks text recovered by optical character recognition.
	SourceOCR TextSource = "ocr"
)

// ExtractedText is plain text derived from a Document, with a confidence
// score in [0,1]. OCR-sourced text always carries lower confidence than
// native text.
type ExtractedText struct {
	Text       string
	Source     TextSource
	Confidence float64
}

// Strategy selects which extraction adapter runs for a document.
type Strategy string

const (
	StrategyTabular     Strategy = "tabular"
	StrategyTextPattern Strategy = "text-pattern"
	StrategyOFX         Strategy = "ofx"
	StrategyOCR         Strategy = "image-ocr"
)

// Institution identifies the issuing bank or bureau of a statement.
type Institution string

const (
	InstitutionMaybank Institution = "maybank"
	InstitutionCIMB    Institution = "cimb"
	InstitutionHSBC    Institution = "hsbc"
	InstitutionUnknown Institution = "unknown"
)

// FormatDescriptor is the output of format detection. It resolves to exactly
// one extraction strategy; unrecognized documents get the unknown variant
// with a best-effort text-pattern strategy.
type FormatDescriptor struct {
	Institution Institution
	Variant     string
	Strategy    Strategy
}

// Unknown reports whether detection fell through to the best-effort variant.
func (f FormatDescriptor) Unknown() bool {
	return f.Institution == InstitutionUnknown
}
