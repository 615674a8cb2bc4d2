package handlers

import (
	"net/http"

	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/server/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CityHandler struct {
	resolver CityResolver
	logger   *zap.Logger
}

func NewCityHandler(resolver CityResolver, logger *zap.Logger) *CityHandler {
	return &CityHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// Suggest serves GET /cities/suggest?q=.
func (h *CityHandler) Suggest(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := utils.RequestLogger(c, h.logger)

	var req CityQueryRequest
	if !bindQuery(c, &req) {
		return
	}

	suggestions, err := h.resolver.Suggest(ctx, req.Query)
	if err != nil {
		reqLogger.Error("Failed to get suggestions", zap.String("query", req.Query), zap.Error(err))
		writeLookupError(c, err, "Failed to fetch city suggestions")
		return
	}

	c.JSON(http.StatusOK, suggestions)
}

// Resolve serves GET /cities/resolve?q=.
func (h *CityHandler) Resolve(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)

	var req CityQueryRequest
	if !bindQuery(c, &req) {
		return
	}

	city, err := h.resolver.ResolveCity(ctx, req.Query)
	if err != nil {
		utils.RequestLogger(c, h.logger).Info("City not resolved",
			zap.String("query", req.Query),
			zap.Error(err))
		writeLookupError(c, err, "Failed to fetch city suggestions")
		return
	}

	c.JSON(http.StatusOK, city)
}
