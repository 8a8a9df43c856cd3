package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/layak-app/layak/internal/config"
	"github.com/layak-app/layak/internal/engine"
	"github.com/layak-app/layak/internal/model"
)

func init() {
	batchCmd := &cobra.Command{
		Use:   "batch [files...]",
		Short: "Ingest many financial documents concurrently",
		Long: `Ingest a batch of statements through a bounded worker pool. One bad
document never aborts the batch; it lands in the output with its error
or review flags set.

Examples:
  # Ingest every CSV in a directory
  layak batch statements/*.csv

  # Mixed formats, explicit worker count
  layak batch statements/*.pdf exports/*.ofx --workers 4`,
		Args: cobra.MinimumNArgs(1),
		RunE: runBatch,
	}

	batchCmd.Flags().IntP("workers", "w", 0, "worker pool size (default: number of CPUs)")
	batchCmd.Flags().StringP("institution", "i", "", "institution hint applied to every file")

	rootCmd.AddCommand(batchCmd)
}

// batchRecord is the per-document output row. Errors are stringified so
// the whole batch serializes cleanly.
type batchRecord struct {
	File   string             `json:"file"`
	Error  string             `json:"error,omitempty"`
	Result model.IngestResult `json:"result"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	workers, _ := cmd.Flags().GetInt("workers")
	hint, _ := cmd.Flags().GetString("institution")

	files, err := expandArgs(args)
	if err != nil {
		return err
	}

	docs := make([]model.Document, 0, len(files))
	for _, path := range files {
		doc, loadErr := loadDocument(path, hint)
		if loadErr != nil {
			return loadErr
		}
		docs = append(docs, doc)
	}

	settings := config.Load()
	if workers <= 0 {
		workers = settings.BatchWorkers
	}

	eng, err := buildEngine(settings)
	if err != nil {
		return err
	}

	slog.Info("Ingesting batch",
		"documents", len(docs),
		"workers", workers)

	bar := progressbar.NewOptions(len(docs),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Ingesting documents..."),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	items := eng.IngestBatch(cmd.Context(), docs, workers, func(engine.BatchItem) {
		_ = bar.Add(1)
	})

	var rejected, needsReview int
	records := make([]batchRecord, 0, len(items))
	for _, item := range items {
		record := batchRecord{File: item.Doc.Filename, Result: item.Result}
		if item.Err != nil {
			record.Error = item.Err.Error()
			rejected++
		} else if item.Result.Reconciliation.NeedsReview {
			needsReview++
		}
		records = append(records, record)
	}

	slog.Info("Batch complete",
		"documents", len(items),
		"rejected", rejected,
		"needs_review", needsReview)

	return writeJSON(records)
}
