package source

import (
	"context"
	"net/http"
	"net/url"

	"markettrends/internal/model"
	"markettrends/internal/normalize"
)

const devtoArticlesURL = "https://dev.to/api/articles"

type DevToClient struct {
	apiKey     string
	httpClient *http.Client
}

func NewDevToClient(apiKey string, httpClient *http.Client) *DevToClient {
	return &DevToClient{apiKey: apiKey, httpClient: defaultHTTPClient(httpClient)}
}

func (c *DevToClient) Name() string {
	return "Dev.to"
}

func (c *DevToClient) Fetch(ctx context.Context, q Query) (model.RecordBatch, error) {
	q = q.withDefaults(Query{Term: "webdev", Limit: Limit(5)})

	params := url.Values{}
	params.Set("tag", q.Term)

	header := http.Header{}
	if c.apiKey != "" {
		header.Set("api-key", c.apiKey)
	}

	body, err := getJSON(ctx, c.httpClient, DevToID, devtoArticlesURL, params, header)
	if err != nil {
		return nil, err
	}

	return normalize.Normalize(normalize.DevTo, body, q.top())
}
