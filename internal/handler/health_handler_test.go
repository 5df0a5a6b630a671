package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"markettrends/internal/summary"
)

func newTestHealthRouter(engine Summarizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHealthHandler(engine, &fakeCompiler{})
	r.GET("/health", h.GetHealth)
	return r
}

func TestGetHealth_Healthy(t *testing.T) {
	r := newTestHealthRouter(&fakeSummarizer{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var res HealthResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "healthy", res.Status)
	assert.Equal(t, "fake", res.Summarizer)
	assert.Equal(t, "market_trends_report.csv", res.Report)
}

func TestGetHealth_NoModel(t *testing.T) {
	r := newTestHealthRouter(summary.NewEngine(nil, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var res HealthResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "degraded", res.Status)
}
