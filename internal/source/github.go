package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"markettrends/internal/model"
	"markettrends/internal/normalize"
)

const (
	githubSearchURL  = "https://api.github.com/search/repositories"
	githubMaxPerPage = 100
)

type GitHubClient struct {
	token      string
	httpClient *http.Client
}

func NewGitHubClient(token string, httpClient *http.Client) *GitHubClient {
	return &GitHubClient{token: token, httpClient: defaultHTTPClient(httpClient)}
}

func (c *GitHubClient) Name() string {
	return "GitHub"
}

func (c *GitHubClient) Fetch(ctx context.Context, q Query) (model.RecordBatch, error) {
	q = q.withDefaults(Query{Term: "topic:AI", Sort: "stars", Order: "desc"})

	params := url.Values{}
	params.Set("q", q.Term)
	params.Set("sort", q.Sort)
	params.Set("order", q.Order)
	if top := q.top(); top > 0 {
		params.Set("per_page", strconv.Itoa(min(top, githubMaxPerPage)))
	}

	header := bearer(http.Header{}, c.token)
	header.Set("Accept", "application/vnd.github+json")

	body, err := getJSON(ctx, c.httpClient, GitHubID, githubSearchURL, params, header)
	if err != nil {
		return nil, err
	}

	var raw githubSearchResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, normalize.Malformed(GitHubID, "decode: %v", err)
	}
	if raw.Items == nil {
		return nil, normalize.Malformed(GitHubID, "response has no items")
	}

	return normalize.Normalize(normalize.GitHub, raw.Items, q.top())
}

type githubSearchResponse struct {
	TotalCount int             `json:"total_count"`
	Items      json.RawMessage `json:"items"`
}
