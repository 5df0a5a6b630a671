package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"markettrends/internal/model"
	"markettrends/internal/summary"
)

type Summarizer interface {
	SummarizeBatch(ctx context.Context, batch model.RecordBatch, b summary.Bounds) (*summary.Result, error)
	ModelName() string
}

type SummaryHandler struct {
	engine   Summarizer
	defaults summary.Bounds
	timeout  time.Duration
}

func NewSummaryHandler(engine Summarizer, defaults summary.Bounds, timeout time.Duration) *SummaryHandler {
	return &SummaryHandler{engine: engine, defaults: defaults, timeout: timeout}
}

func (h *SummaryHandler) SummarizeTrends(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %w", model.ErrInvalidRequest, err), "Invalid request body")
		return
	}

	batch := make(model.RecordBatch, 0, len(req.Data))
	for i, r := range req.Data {
		rec, err := model.TitledRecord(r)
		if err != nil {
			respondError(c, fmt.Errorf("data[%d]: %w", i, err), fmt.Sprintf("Invalid entry at index %d: a string title is required", i))
			return
		}
		batch = append(batch, rec)
	}

	bounds := h.defaults
	if req.MinLength != nil {
		bounds.MinLength = *req.MinLength
	}
	if req.MaxLength != nil {
		bounds.MaxLength = *req.MaxLength
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	res, err := h.engine.SummarizeBatch(ctx, batch, bounds)
	if err != nil {
		respondError(c, err, summaryErrorMessage(err))
		return
	}

	c.JSON(http.StatusOK, SummarizeResponse{Summary: res.Summary})
}

func summaryErrorMessage(err error) string {
	switch codeFor(err) {
	case "empty_corpus":
		return "Nothing to summarize"
	case "invalid_request":
		return "Invalid summary length bounds"
	case "upstream_timeout":
		return "Summarization timed out"
	default:
		return "Summarization model unavailable"
	}
}
