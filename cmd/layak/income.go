package main

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/layak-app/layak/internal/config"
	"github.com/layak-app/layak/internal/extract"
	"github.com/layak-app/layak/internal/income"
	"github.com/layak-app/layak/internal/model"
	"github.com/layak-app/layak/internal/ocr"
)

func init() {
	incomeCmd := &cobra.Command{
		Use:   "income [file]",
		Short: "Extract an income profile from a payslip",
		Long: `Extract labeled income fields (basic salary, allowances, EPF, net and
gross salary) from a payslip document. Fields that cannot be found stay
zero and are listed in the notes; they are never inferred.

Examples:
  layak income payslips/jan_2026.pdf
  layak income scans/payslip.png`,
		Args: cobra.ExactArgs(1),
		RunE: runIncome,
	}

	rootCmd.AddCommand(incomeCmd)
}

func runIncome(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0], "")
	if err != nil {
		return err
	}

	settings := config.Load()
	provider, err := ocr.NewProvider(settings.OCRProvider)
	if err != nil {
		return err
	}

	text := documentText(cmd.Context(), doc, provider)
	profile := income.NewExtractor().Extract(text)

	if len(profile.Notes) > 0 {
		slog.Warn("Income profile incomplete",
			"file", doc.Filename,
			"missing_fields", len(profile.Notes))
	}

	return writeJSON(profile)
}

// documentText resolves a document to free text: native PDF text first,
// OCR for scans and image files.
func documentText(ctx context.Context, doc model.Document, provider ocr.Provider) string {
	text := ""
	switch doc.Extension() {
	case ".pdf":
		if native, err := extract.PDFText(doc.Content); err == nil {
			text = native
		}
	case ".txt", "":
		text = string(doc.Content)
	}

	if extract.HasUsableText(text) || provider == nil {
		return text
	}

	images := [][]byte{doc.Content}
	if doc.Extension() == ".pdf" {
		pdfImages, err := extract.PDFImages(doc.Content)
		if err != nil {
			slog.Warn("Image extraction failed",
				"file", doc.Filename,
				"error", err)
			return text
		}
		images = pdfImages
	}

	var b strings.Builder
	for _, image := range images {
		res, err := provider.Recognize(ctx, image)
		if err != nil {
			slog.Warn("OCR failed",
				"file", doc.Filename,
				"provider", provider.Name(),
				"error", err)
			continue
		}
		b.WriteString(res.Text)
		b.WriteString("\n")
	}
	return b.String()
}
