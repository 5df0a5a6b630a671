package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"markettrends/internal/model"
	"markettrends/internal/report"
)

type ReportCompiler interface {
	Compile(ctx context.Context, records []model.Record) (*report.Result, error)
	Name() string
}

type ReportHandler struct {
	compiler ReportCompiler
}

func NewReportHandler(compiler ReportCompiler) *ReportHandler {
	return &ReportHandler{compiler: compiler}
}

func (h *ReportHandler) CompileReport(c *gin.Context) {
	var req CompileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %w", model.ErrInvalidRequest, err), "Invalid request body")
		return
	}

	res, err := h.compiler.Compile(c.Request.Context(), req.Data)
	if err != nil {
		respondError(c, err, "Failed to generate report")
		return
	}

	resp := MessageResponse{Message: "Report generated successfully and saved as " + h.compiler.Name()}
	if res.MirrorErr != nil {
		resp.Warning = "Report copy to object storage failed"
	}
	c.JSON(http.StatusOK, resp)
}
