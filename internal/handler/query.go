package handler

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
)

// getQueryLimit returns nil when the parameter is absent so the provider default applies.
func getQueryLimit(name string, c *gin.Context) *int {
	param := c.Query(name)
	if param == "" {
		return nil
	}

	parsedValue, err := strconv.Atoi(param)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", param, "error", err)
		return nil
	}

	if parsedValue < 0 {
		slog.Warn("negative query parameter, using default", "param", name, "value", parsedValue)
		return nil
	}

	return &parsedValue
}
