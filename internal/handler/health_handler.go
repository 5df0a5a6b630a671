package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	engine   Summarizer
	compiler ReportCompiler
}

func NewHealthHandler(engine Summarizer, compiler ReportCompiler) *HealthHandler {
	return &HealthHandler{engine: engine, compiler: compiler}
}

func (h *HealthHandler) GetHealth(c *gin.Context) {
	modelName := h.engine.ModelName()
	if modelName == "" {
		c.JSON(http.StatusServiceUnavailable, HealthResponse{
			Status:     "degraded",
			Summarizer: "unavailable",
			Report:     h.compiler.Name(),
		})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:     "healthy",
		Summarizer: modelName,
		Report:     h.compiler.Name(),
	})
}
