package handlers

import (
	"context"

	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/geo"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/server/utils"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/weather"
)

// WeatherProvider builds a CityWeather for a coordinate pair.
type WeatherProvider interface {
	GetCityWeather(ctx context.Context, lat, lon float64) (*weather.CityWeather, error)
}

// CityResolver turns free text into city suggestions.
type CityResolver interface {
	Suggest(ctx context.Context, query string) ([]geo.CitySuggestion, error)
	ResolveCity(ctx context.Context, query string) (geo.CitySuggestion, error)
}

// WeatherRequest represents the weather API request with comprehensive validation
type WeatherRequest struct {
	Lat *float64 `form:"lat" json:"lat" validate:"required,latitude"`
	Lon *float64 `form:"lon" json:"lon" validate:"required,longitude"`
}

// CityQueryRequest carries the free-text city query
type CityQueryRequest struct {
	Query string `form:"q" json:"q" validate:"required,notblank,max=100"`
}

// SearchResponse is the submit flow result: the chosen city and its weather
type SearchResponse struct {
	City    geo.CitySuggestion  `json:"city"`
	Weather weather.CityWeather `json:"weather"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string                  `json:"error"`
	Code    string                  `json:"code,omitempty"`
	Details string                  `json:"details,omitempty"`
	Fields  []utils.ValidationError `json:"fields,omitempty"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp,omitempty"`
	Reason    string `json:"reason,omitempty"`
}
