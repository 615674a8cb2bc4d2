package handlers

import (
	"errors"
	"net/http"

	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/geo"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/server/utils"
	"github.com/gin-gonic/gin"
)

const (
	CodeInvalidParams = "INVALID_PARAMS"
	CodeNoMatch       = "NO_MATCH"
	CodeUpstream      = "UPSTREAM_ERROR"
)

// bindQuery binds and validates query parameters, writing a 400 on failure.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    CodeInvalidParams,
			Details: err.Error(),
		})
		return false
	}

	if fields := utils.ValidateStruct(req); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:  "Invalid request parameters",
			Code:   CodeInvalidParams,
			Fields: fields,
		})
		return false
	}

	return true
}

// writeLookupError maps resolver and upstream failures to responses.
func writeLookupError(c *gin.Context, err error, message string) {
	_ = c.Error(err)

	if errors.Is(err, geo.ErrNoMatch) {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error: "No city found",
			Code:  CodeNoMatch,
		})
		return
	}

	c.JSON(http.StatusBadGateway, ErrorResponse{
		Error:   message,
		Code:    CodeUpstream,
		Details: err.Error(),
	})
}
