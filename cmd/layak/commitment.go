package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/layak-app/layak/internal/commitment"
	"github.com/layak-app/layak/internal/config"
	"github.com/layak-app/layak/internal/ocr"
)

func init() {
	commitmentCmd := &cobra.Command{
		Use:   "commitment [file]",
		Short: "Extract the monthly commitment figure from a bureau report",
		Long: `Read the total monthly commitment out of a CCRIS or CTOS report.
When no figure can be found the amount is 0 with a note requiring
manual entry; it is never silently treated as a real zero.

Examples:
  layak commitment reports/ccris.pdf
  layak commitment scans/ctos.png`,
		Args: cobra.ExactArgs(1),
		RunE: runCommitment,
	}

	rootCmd.AddCommand(commitmentCmd)
}

func runCommitment(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0], "")
	if err != nil {
		return err
	}

	settings := config.Load()
	provider, err := ocr.NewProvider(settings.OCRProvider)
	if err != nil {
		return err
	}

	figure, err := commitment.NewExtractor(provider).Extract(cmd.Context(), doc)
	if err != nil {
		return fmt.Errorf("commitment extraction failed: %w", err)
	}

	if figure.Note != "" {
		slog.Warn("Commitment figure missing",
			"file", doc.Filename,
			"note", figure.Note)
	}

	return writeJSON(figure)
}
