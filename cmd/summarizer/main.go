package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"os"

	"markettrends/internal/app"
	"markettrends/internal/config"
	"markettrends/internal/handler"
	"markettrends/internal/source"
	"markettrends/internal/summary"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*cfg.UpstreamTimeout)
	defer cancel()

	engine, closeCache := app.NewEngine(ctx, cfg)
	defer closeCache()

	batch, err := app.FetchAll(ctx, app.NewSources(cfg), source.Query{})
	if err != nil {
		log.Fatalf("error fetching sources: %v", err)
	}

	slog.Info("summarizing trends", "count", len(batch), "model", engine.ModelName())

	res, err := engine.SummarizeBatch(ctx, batch, summary.Bounds{
		MinLength: cfg.Summarizer.MinLength,
		MaxLength: cfg.Summarizer.MaxLength,
	})
	if err != nil {
		log.Fatalf("error generating summary: %v", err)
	}

	if err := json.NewEncoder(os.Stdout).Encode(handler.SummarizeResponse{Summary: res.Summary}); err != nil {
		log.Fatalf("error writing summary: %v", err)
	}

	slog.Info("summary generated", "words", res.Words, "model", res.ModelUsed, "cached", res.Cached)
}
