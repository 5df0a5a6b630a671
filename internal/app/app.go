// Package app builds the long-lived components from configuration. Each binary calls
// these once at start-up and passes the results down explicitly.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"markettrends/db"
	"markettrends/internal/config"
	"markettrends/internal/report"
	"markettrends/internal/source"
	"markettrends/internal/summary"
	"markettrends/pkg/llm"
)

// SourceOrder is the order providers are visited when all of them are fetched.
var SourceOrder = []string{source.GitHubID, source.DevToID, source.RedditID, source.FinnhubID}

var errMissingAPIKey = errors.New("api key is not set")

// NewSources registers every provider. Finnhub needs a key to answer at all, so it
// is only registered when one is configured.
func NewSources(cfg *config.Config) map[string]source.Client {
	httpClient := &http.Client{Timeout: cfg.UpstreamTimeout}

	sources := map[string]source.Client{
		source.GitHubID: source.NewGitHubClient(cfg.Providers.GitHubToken, httpClient),
		source.DevToID:  source.NewDevToClient(cfg.Providers.DevToAPIKey, httpClient),
		source.RedditID: source.NewRedditClient(cfg.Providers.RedditToken, httpClient),
	}
	if cfg.Providers.FinnhubAPIKey != "" {
		sources[source.FinnhubID] = source.NewFinnhubClient(cfg.Providers.FinnhubAPIKey, httpClient)
	}
	return sources
}

// NewSummaryClient loads the configured summarization backend.
func NewSummaryClient(ctx context.Context, cfg config.SummarizerConfig) (llm.SummaryClient, error) {
	switch cfg.Backend {
	case config.BackendLocal:
		return llm.NewLocalClient(), nil
	case config.BackendOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai: %w", errMissingAPIKey)
		}
		return llm.NewOpenAIClient(cfg.OpenAIAPIKey), nil
	case config.BackendAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("anthropic: %w", errMissingAPIKey)
		}
		return llm.NewAnthropicClient(cfg.AnthropicAPIKey), nil
	case config.BackendGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini: %w", errMissingAPIKey)
		}
		return llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("unknown summarizer backend %q", cfg.Backend)
	}
}

// NewEngine wires the summarization client and cache. A backend that fails to load
// leaves the engine without a model; summaries then fail with ErrModelUnavailable
// while the rest of the service keeps working. The returned func releases the cache.
func NewEngine(ctx context.Context, cfg *config.Config) (*summary.Engine, func()) {
	client, err := NewSummaryClient(ctx, cfg.Summarizer)
	if err != nil {
		slog.Error("summarization model not loaded", "backend", cfg.Summarizer.Backend, "error", err)
		client = nil
	}

	cache, closeCache := NewSummaryCache(ctx, cfg.Cache)
	if client == nil {
		return summary.NewEngine(nil, cache), closeCache
	}

	slog.Info("summarization model loaded", "backend", cfg.Summarizer.Backend, "model", client.Name())
	return summary.NewEngine(client, cache), closeCache
}

// NewSummaryCache always has an in-process LRU tier and adds Redis when REDIS_URL is
// set and reachable.
func NewSummaryCache(ctx context.Context, cfg config.CacheConfig) (summary.Cache, func()) {
	memory, err := summary.NewMemoryCache(cfg.Size)
	if err != nil {
		slog.Error("summary cache disabled", "error", err)
		return nil, func() {}
	}

	if cfg.RedisURL == "" {
		return memory, func() {}
	}

	client, err := db.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		slog.Warn("redis unavailable, using in-process summary cache only", "error", err)
		return memory, func() {}
	}

	return summary.Tiered{memory, summary.NewRedisCache(client, cfg.TTL)}, func() { db.CloseRedis(client) }
}

func NewCompiler(cfg config.ReportConfig) (*report.Compiler, error) {
	opts := report.Options{Path: cfg.Path, Missing: cfg.MissingValue}

	if cfg.MirrorEnabled() {
		mirror, err := report.NewS3Mirror(report.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("report mirror: %w", err)
		}
		opts.Mirror = mirror
	}

	return report.NewCompiler(opts)
}
