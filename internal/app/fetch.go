package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"markettrends/internal/model"
	"markettrends/internal/source"
)

// FetchAll queries every registered source concurrently with q and concatenates the
// batches in SourceOrder. The result is all-or-nothing: if any source fails, no batch
// is returned and the error joins every source failure.
func FetchAll(ctx context.Context, sources map[string]source.Client, q source.Query) (model.RecordBatch, error) {
	batches := make([]model.RecordBatch, len(SourceOrder))
	errs := make([]error, len(SourceOrder))

	var wg sync.WaitGroup
	for i, id := range SourceOrder {
		client, ok := sources[id]
		if !ok {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			batches[i], errs[i] = client.Fetch(ctx, q)
		}()
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		for i, id := range SourceOrder {
			if errs[i] != nil {
				slog.Error("error fetching source", "source", id, "error", errs[i])
			}
		}
		return nil, err
	}

	out := model.RecordBatch{}
	for i, id := range SourceOrder {
		if _, ok := sources[id]; !ok {
			continue
		}
		slog.Info("source fetched", "source", id, "count", len(batches[i]))
		out = append(out, batches[i]...)
	}
	return out, nil
}
