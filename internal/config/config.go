// Package config reads process configuration from the environment (and a .env
// file when present) into one typed struct that is handed to each component.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	BackendLocal     = "local"
	BackendOpenAI    = "openai"
	BackendAnthropic = "anthropic"
	BackendGemini    = "gemini"
)

type Config struct {
	Port            string        `env:"PORT" env-default:"8000"`
	FrontendURL     string        `env:"FRONTEND_URL"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" env-default:"30s"`

	Providers  ProviderConfig
	Summarizer SummarizerConfig
	Cache      CacheConfig
	Report     ReportConfig
	RateLimit  RateLimitConfig
}

// ProviderConfig holds upstream credentials. They are forwarded as-is.
type ProviderConfig struct {
	GitHubToken   string `env:"GITHUB_TOKEN"`
	DevToAPIKey   string `env:"DEVTO_API_KEY"`
	RedditToken   string `env:"REDDIT_TOKEN"`
	FinnhubAPIKey string `env:"FINNHUB_API_KEY"`
}

type SummarizerConfig struct {
	Backend         string `env:"SUMMARIZER_BACKEND" env-default:"local"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	GeminiModel     string `env:"GEMINI_MODEL"`
	MinLength       int    `env:"SUMMARY_MIN_LENGTH" env-default:"25"`
	MaxLength       int    `env:"SUMMARY_MAX_LENGTH" env-default:"50"`
}

type CacheConfig struct {
	Size     int           `env:"SUMMARY_CACHE_SIZE" env-default:"256"`
	RedisURL string        `env:"REDIS_URL"`
	TTL      time.Duration `env:"SUMMARY_CACHE_TTL" env-default:"24h"`
}

type ReportConfig struct {
	Path         string `env:"REPORT_PATH" env-default:"market_trends_report.csv"`
	MissingValue string `env:"REPORT_MISSING_VALUE"`
	S3Endpoint   string `env:"REPORT_S3_ENDPOINT"`
	S3Region     string `env:"REPORT_S3_REGION"`
	S3AccessKey  string `env:"REPORT_S3_ACCESS_KEY"`
	S3SecretKey  string `env:"REPORT_S3_SECRET_KEY"`
	S3Bucket     string `env:"REPORT_S3_BUCKET"`
	S3UseSSL     bool   `env:"REPORT_S3_USE_SSL" env-default:"true"`
}

func (r ReportConfig) MirrorEnabled() bool {
	return strings.TrimSpace(r.S3Endpoint) != ""
}

type RateLimitConfig struct {
	RPS   float64 `env:"RATE_LIMIT_RPS" env-default:"5"`
	Burst int     `env:"RATE_LIMIT_BURST" env-default:"10"`
}

// Load reads .env (if any) and then the environment. Variables already set in the
// environment win over .env entries.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func (c *Config) validate() error {
	c.Summarizer.Backend = strings.ToLower(strings.TrimSpace(c.Summarizer.Backend))
	switch c.Summarizer.Backend {
	case BackendLocal, BackendOpenAI, BackendAnthropic, BackendGemini:
	default:
		return fmt.Errorf("unknown summarizer backend %q", c.Summarizer.Backend)
	}

	if c.Summarizer.MinLength < 0 || c.Summarizer.MaxLength <= 0 || c.Summarizer.MinLength > c.Summarizer.MaxLength {
		return fmt.Errorf("invalid summary length bounds: min=%d max=%d", c.Summarizer.MinLength, c.Summarizer.MaxLength)
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("SUMMARY_CACHE_SIZE must be positive, got %d", c.Cache.Size)
	}
	if strings.TrimSpace(c.Report.Path) == "" {
		return fmt.Errorf("REPORT_PATH must not be empty")
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate limit must be positive: rps=%v burst=%d", c.RateLimit.RPS, c.RateLimit.Burst)
	}
	return nil
}
