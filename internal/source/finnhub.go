package source

import (
	"context"
	"encoding/json"
	"net/http"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"markettrends/internal/model"
	"markettrends/internal/normalize"
)

type FinnhubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnhubClient(apiKey string, httpClient *http.Client) *FinnhubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.UserAgent = userAgent
	cfg.HTTPClient = defaultHTTPClient(httpClient)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnhubClient{client: client}
}

func (c *FinnhubClient) Name() string {
	return "Finnhub"
}

// Fetch reads the market news feed. The SDK decodes into typed structs, which are
// re-encoded so the items go through the same schema validation as every other provider.
func (c *FinnhubClient) Fetch(ctx context.Context, q Query) (model.RecordBatch, error) {
	q = q.withDefaults(Query{Term: "general"})

	res, resp, err := c.client.MarketNews(ctx).Category(q.Term).Execute()
	if err != nil {
		if resp != nil && resp.StatusCode != http.StatusOK {
			return nil, &model.UpstreamError{Provider: FinnhubID, StatusCode: resp.StatusCode, Err: model.ErrUpstreamUnavailable}
		}
		if resp != nil {
			return nil, normalize.Malformed(FinnhubID, "decode: %v", err)
		}
		return nil, transportError(FinnhubID, err)
	}
	if res == nil {
		res = []finnhub.MarketNews{}
	}

	payload, err := json.Marshal(res)
	if err != nil {
		return nil, normalize.Malformed(FinnhubID, "encode: %v", err)
	}

	return normalize.Normalize(normalize.Finnhub, payload, q.top())
}
