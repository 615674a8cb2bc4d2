package handlers

import (
	"net/http"

	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/server/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type WeatherHandler struct {
	weather  WeatherProvider
	resolver CityResolver
	logger   *zap.Logger
}

func NewWeatherHandler(provider WeatherProvider, resolver CityResolver, logger *zap.Logger) *WeatherHandler {
	return &WeatherHandler{
		weather:  provider,
		resolver: resolver,
		logger:   logger,
	}
}

// GetWeather serves GET /weather?lat=&lon=.
func (h *WeatherHandler) GetWeather(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := utils.RequestLogger(c, h.logger)

	var req WeatherRequest
	if !bindQuery(c, &req) {
		reqLogger.Warn("Invalid weather request parameters")
		return
	}

	reqLogger.Info("Processing weather request",
		zap.Float64("lat", *req.Lat),
		zap.Float64("lon", *req.Lon))

	data, err := h.weather.GetCityWeather(ctx, *req.Lat, *req.Lon)
	if err != nil {
		reqLogger.Error("Failed to get weather data", zap.Error(err))
		writeLookupError(c, err, "Failed to fetch weather data")
		return
	}

	c.JSON(http.StatusOK, data)
}

// SearchWeather serves GET /weather/search?q=: resolve the city, then load
// its weather.
func (h *WeatherHandler) SearchWeather(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := utils.RequestLogger(c, h.logger)

	var req CityQueryRequest
	if !bindQuery(c, &req) {
		reqLogger.Warn("Invalid search request parameters")
		return
	}

	city, err := h.resolver.ResolveCity(ctx, req.Query)
	if err != nil {
		reqLogger.Info("City search failed", zap.String("query", req.Query), zap.Error(err))
		writeLookupError(c, err, "Failed to fetch city suggestions")
		return
	}

	data, err := h.weather.GetCityWeather(ctx, city.Lat, city.Lon)
	if err != nil {
		reqLogger.Error("Failed to get weather data",
			zap.String("city", city.Label),
			zap.Error(err))
		writeLookupError(c, err, "Failed to fetch weather data")
		return
	}

	reqLogger.Info("Search completed successfully",
		zap.String("query", req.Query),
		zap.String("city", city.Label))

	c.JSON(http.StatusOK, SearchResponse{City: city, Weather: *data})
}
