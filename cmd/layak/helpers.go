package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/layak-app/layak/internal/common"
	"github.com/layak-app/layak/internal/config"
	"github.com/layak-app/layak/internal/engine"
	"github.com/layak-app/layak/internal/model"
	"github.com/layak-app/layak/internal/ocr"
)

// loadDocument reads a file into the pipeline's document form. The MIME
// type is sniffed from content, not trusted from the extension.
func loadDocument(path, institutionHint string) (model.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return model.Document{}, common.NewUserError(fmt.Sprintf("could not read %s", path), err)
	}

	return model.Document{
		Filename:        filepath.Base(path),
		MimeType:        http.DetectContentType(content),
		InstitutionHint: institutionHint,
		Content:         content,
	}, nil
}

// buildEngine assembles a pipeline engine from loaded settings.
func buildEngine(settings config.Settings) (*engine.Engine, error) {
	provider, err := ocr.NewProvider(settings.OCRProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to create OCR provider: %w", err)
	}

	return engine.New(engine.Options{
		OCRProvider: provider,
		Ruleset:     settings.Ruleset,
		Tolerance:   settings.Tolerance,
		OCRTimeout:  settings.OCRTimeout,
	}), nil
}

// writeJSON emits a record to stdout. Structured output stays on stdout so
// it can be piped; logs go to stderr.
func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// expandArgs resolves glob patterns and direct paths into a file list.
func expandArgs(args []string) ([]string, error) {
	var files []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				files = append(files, pattern)
				continue
			}
			return nil, fmt.Errorf("no files found matching %s", pattern)
		}
		files = append(files, matches...)
	}
	return files, nil
}
