// Package source fetches trend listings from upstream providers and normalizes them.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"markettrends/internal/model"
	"markettrends/internal/normalize"
)

const (
	GitHubID  = "github"
	DevToID   = "devto"
	RedditID  = "reddit"
	FinnhubID = "finnhub"

	userAgent   = "CustomGPTMarketResearch"
	maxBodySize = 8 << 20
)

// Query carries the caller's parameters. Term is the provider's main selector: the
// search query for GitHub, the tag for Dev.to, the subreddit for Reddit and the news
// category for Finnhub. Empty fields and a nil Limit take the provider defaults.
type Query struct {
	Term  string
	Sort  string
	Order string
	Limit *int
}

func Limit(n int) *int {
	return &n
}

func (q Query) withDefaults(def Query) Query {
	if q.Term == "" {
		q.Term = def.Term
	}
	if q.Sort == "" {
		q.Sort = def.Sort
	}
	if q.Order == "" {
		q.Order = def.Order
	}
	if q.Limit == nil {
		q.Limit = def.Limit
	}
	return q
}

func (q Query) top() int {
	if q.Limit == nil {
		return normalize.NoLimit
	}
	return *q.Limit
}

type Client interface {
	Fetch(ctx context.Context, q Query) (model.RecordBatch, error)
	Name() string
}

func defaultHTTPClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// getJSON performs one GET and returns the body of a 200 response. Every failure is an
// *model.UpstreamError so the gateway can echo the provider status.
func getJSON(ctx context.Context, httpClient *http.Client, provider, rawURL string, params url.Values, header http.Header) ([]byte, error) {
	if len(params) > 0 {
		rawURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", provider, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, transportError(provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &model.UpstreamError{Provider: provider, StatusCode: resp.StatusCode, Err: model.ErrUpstreamUnavailable}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, transportError(provider, err)
	}
	return body, nil
}

func transportError(provider string, err error) error {
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		return &model.UpstreamError{Provider: provider, Err: fmt.Errorf("%w: %w", model.ErrUpstreamTimeout, err)}
	}
	return &model.UpstreamError{Provider: provider, Err: fmt.Errorf("%w: %w", model.ErrUpstreamUnavailable, err)}
}

func bearer(header http.Header, token string) http.Header {
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	return header
}
