package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"markettrends/internal/model"
	"markettrends/internal/normalize"
)

const redditBaseURL = "https://www.reddit.com"

type RedditClient struct {
	token      string
	httpClient *http.Client
}

func NewRedditClient(token string, httpClient *http.Client) *RedditClient {
	return &RedditClient{token: token, httpClient: defaultHTTPClient(httpClient)}
}

func (c *RedditClient) Name() string {
	return "Reddit"
}

func (c *RedditClient) Fetch(ctx context.Context, q Query) (model.RecordBatch, error) {
	q = q.withDefaults(Query{Term: "webdev", Sort: "hot", Limit: Limit(5)})

	endpoint := fmt.Sprintf("%s/r/%s/%s.json", redditBaseURL, url.PathEscape(q.Term), url.PathEscape(q.Sort))
	params := url.Values{}
	if top := q.top(); top >= 0 {
		params.Set("limit", strconv.Itoa(top))
	}

	body, err := getJSON(ctx, c.httpClient, RedditID, endpoint, params, bearer(http.Header{}, c.token))
	if err != nil {
		return nil, err
	}

	var listing redditListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, normalize.Malformed(RedditID, "decode: %v", err)
	}
	if listing.Data.Children == nil {
		return nil, normalize.Malformed(RedditID, "listing has no children")
	}

	posts := make([]json.RawMessage, len(listing.Data.Children))
	for i, child := range listing.Data.Children {
		posts[i] = child.Data
	}

	return normalize.NormalizeItems(normalize.Reddit, posts, q.top())
}

type redditListing struct {
	Data struct {
		Children []struct {
			Kind string          `json:"kind"`
			Data json.RawMessage `json:"data"`
		} `json:"children"`
	} `json:"data"`
}
