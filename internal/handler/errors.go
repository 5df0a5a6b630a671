package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"markettrends/internal/model"
)

// statusFor maps the error taxonomy onto HTTP. A provider that answered with an
// error status has that status echoed back.
func statusFor(err error) int {
	var ue *model.UpstreamError
	switch {
	case errors.Is(err, model.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, model.ErrMalformedUpstreamPayload):
		return http.StatusBadGateway
	case errors.As(err, &ue) && ue.StatusCode >= 400:
		return ue.StatusCode
	case errors.Is(err, model.ErrUpstreamUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, model.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrEmptyCorpus):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrModelUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(err error) string {
	switch {
	case errors.Is(err, model.ErrUpstreamTimeout):
		return "upstream_timeout"
	case errors.Is(err, model.ErrMalformedUpstreamPayload):
		return "malformed_upstream_payload"
	case errors.Is(err, model.ErrUpstreamUnavailable):
		return "upstream_unavailable"
	case errors.Is(err, model.ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, model.ErrEmptyCorpus):
		return "empty_corpus"
	case errors.Is(err, model.ErrModelUnavailable):
		return "model_unavailable"
	case errors.Is(err, model.ErrPersistenceFailure):
		return "persistence_failure"
	default:
		return "internal"
	}
}

func respondError(c *gin.Context, err error, message string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error(message, "error", err, "status", status)
	} else {
		slog.Warn(message, "error", err, "status", status)
	}
	c.JSON(status, ErrorResponse{Error: message, Code: codeFor(err)})
}
