package engine

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/layak-app/layak/internal/model"
)

// BatchItem pairs one document with its outcome. Err is set only for hard
// rejections; degraded extractions land in Result with their flags set.
type BatchItem struct {
	Err    error
	Doc    model.Document
	Result model.IngestResult
}

// IngestBatch runs many documents through the pipeline concurrently.
// Documents are independent, so the batch is embarrassingly parallel: a
// worker pool bounds concurrency (OCR being the slow step), per-document
// failures are isolated, and the returned slice preserves input order.
// onDone, if non-nil, is called once per completed document from worker
// goroutines and must be safe for concurrent use.
func (e *Engine) IngestBatch(ctx context.Context, docs []model.Document, workers int, onDone func(BatchItem)) []BatchItem {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(docs) {
		workers = len(docs)
	}

	items := make([]BatchItem, len(docs))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				result, err := e.Ingest(ctx, docs[i])
				items[i] = BatchItem{Doc: docs[i], Result: result, Err: err}
				if err != nil {
					slog.Error("Document rejected",
						"file", docs[i].Filename,
						"error", err)
				}
				if onDone != nil {
					onDone(items[i])
				}
			}
		}()
	}

	for i := range docs {
		select {
		case <-ctx.Done():
			// Stop feeding; in-flight documents finish on their own
			// per-document timeouts.
			close(indexes)
			wg.Wait()
			return items
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()
	return items
}
