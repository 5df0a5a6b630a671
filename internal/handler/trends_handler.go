package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"markettrends/internal/model"
	"markettrends/internal/source"
)

type TrendsHandler struct {
	sources map[string]source.Client
	timeout time.Duration
}

// NewTrendsHandler serves the fetch routes. sources is keyed by provider id
// (source.GitHubID, ...). A zero timeout leaves the request context as is.
func NewTrendsHandler(sources map[string]source.Client, timeout time.Duration) *TrendsHandler {
	return &TrendsHandler{sources: sources, timeout: timeout}
}

func (h *TrendsHandler) Index(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to the Market Research API")
}

func (h *TrendsHandler) FetchGitHubRepos(c *gin.Context) {
	h.fetch(c, source.GitHubID, source.Query{
		Term:  c.Query("query"),
		Sort:  c.Query("sort"),
		Order: c.Query("order"),
		Limit: getQueryLimit("limit", c),
	})
}

func (h *TrendsHandler) FetchDevToArticles(c *gin.Context) {
	h.fetch(c, source.DevToID, source.Query{
		Term:  c.Query("tag"),
		Limit: getQueryLimit("top", c),
	})
}

func (h *TrendsHandler) FetchRedditPosts(c *gin.Context) {
	h.fetch(c, source.RedditID, source.Query{
		Term:  c.Query("subreddit"),
		Sort:  c.Query("sort"),
		Limit: getQueryLimit("limit", c),
	})
}

func (h *TrendsHandler) FetchFinnhubNews(c *gin.Context) {
	h.fetch(c, source.FinnhubID, source.Query{
		Term:  c.Query("category"),
		Limit: getQueryLimit("limit", c),
	})
}

func (h *TrendsHandler) fetch(c *gin.Context, id string, q source.Query) {
	client, ok := h.sources[id]
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Provider not configured: " + id, Code: "provider_not_configured"})
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	batch, err := client.Fetch(ctx, q)
	if err != nil {
		respondError(c, err, "Failed to fetch data from "+client.Name())
		return
	}

	if batch == nil {
		batch = model.RecordBatch{}
	}

	c.JSON(http.StatusOK, batch)
}
