package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"markettrends/internal/app"
	"markettrends/internal/config"
	"markettrends/internal/source"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	compiler, err := app.NewCompiler(cfg.Report)
	if err != nil {
		log.Fatalf("error creating report compiler: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.UpstreamTimeout)
	defer cancel()

	batch, err := app.FetchAll(ctx, app.NewSources(cfg), source.Query{})
	if err != nil {
		log.Fatalf("error fetching sources, report not written: %v", err)
	}

	res, err := compiler.CompileBatch(ctx, batch)
	if err != nil {
		log.Fatalf("error compiling report: %v", err)
	}
	if res.MirrorErr != nil {
		log.Fatalf("report written to %s but mirror failed: %v", res.Path, res.MirrorErr)
	}

	slog.Info("fetch complete", "path", res.Path, "rows", res.Rows, "columns", len(res.Columns))
}
