// Package summary turns a batch of records into one bounded-length summary.
package summary

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"markettrends/internal/model"
	"markettrends/pkg/llm"
)

const (
	DefaultMinLength = 25
	DefaultMaxLength = 50
)

// Bounds are the requested summary length in words. They are passed to the model
// as hints; the model may return less than MinLength for a sparse corpus.
type Bounds struct {
	MinLength int
	MaxLength int
}

func (b Bounds) Validate() error {
	if b.MinLength < 0 || b.MaxLength <= 0 {
		return fmt.Errorf("%w: length bounds must be positive (min=%d, max=%d)", model.ErrInvalidRequest, b.MinLength, b.MaxLength)
	}
	if b.MinLength > b.MaxLength {
		return fmt.Errorf("%w: min_length %d exceeds max_length %d", model.ErrInvalidRequest, b.MinLength, b.MaxLength)
	}
	return nil
}

type Result struct {
	Summary   string
	Words     int
	BelowMin  bool
	ModelUsed string
	Cached    bool
}

// Engine owns the process-wide summarization client. A nil client means no model
// was loaded and every request fails with model.ErrModelUnavailable.
type Engine struct {
	client llm.SummaryClient
	cache  Cache
}

func NewEngine(client llm.SummaryClient, cache Cache) *Engine {
	return &Engine{client: client, cache: cache}
}

func (e *Engine) ModelName() string {
	if e.client == nil {
		return ""
	}
	return e.client.Name()
}

// SummarizeBatch aggregates the batch titles and summarizes the result.
func (e *Engine) SummarizeBatch(ctx context.Context, batch model.RecordBatch, b Bounds) (*Result, error) {
	return e.Summarize(ctx, Corpus(batch), b)
}

func (e *Engine) Summarize(ctx context.Context, corpus string, b Bounds) (*Result, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if !HasContent(corpus) {
		return nil, model.ErrEmptyCorpus
	}
	if e.client == nil {
		return nil, model.ErrModelUnavailable
	}

	key := cacheKey(e.client.Name(), b, corpus)
	if e.cache != nil {
		if text, ok := e.cache.Get(ctx, key); ok {
			return e.result(text, e.client.Name(), b, true), nil
		}
	}

	res, err := e.client.Summarize(ctx, llm.SummaryInput{
		Corpus:    corpus,
		MinLength: b.MinLength,
		MaxLength: b.MaxLength,
	})
	if err != nil {
		return nil, classify(err)
	}

	if e.cache != nil {
		e.cache.Set(ctx, key, res.Text)
	}

	return e.result(res.Text, res.ModelUsed, b, false), nil
}

func (e *Engine) result(text, modelUsed string, b Bounds, cached bool) *Result {
	words := len(strings.Fields(text))
	r := &Result{
		Summary:   text,
		Words:     words,
		BelowMin:  words < b.MinLength,
		ModelUsed: modelUsed,
		Cached:    cached,
	}
	if r.BelowMin {
		slog.Warn("summary shorter than requested minimum", "words", words, "min_length", b.MinLength, "model", modelUsed)
	}
	return r
}

func classify(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", model.ErrUpstreamTimeout, err)
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, model.ErrModelUnavailable), errors.Is(err, model.ErrUpstreamTimeout):
		return err
	default:
		return fmt.Errorf("%w: %w", model.ErrModelUnavailable, err)
	}
}

func cacheKey(modelName string, b Bounds, corpus string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d|%s", modelName, b.MinLength, b.MaxLength, corpus)))
	return fmt.Sprintf("%x", sum)
}
