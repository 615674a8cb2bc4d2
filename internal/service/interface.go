package service

import (
	"context"

	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/geo"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/weather"
)

type WeatherService interface {
	CurrentConditions(ctx context.Context, lat, lon float64) (*weather.CurrentConditions, error)
	Forecast(ctx context.Context, lat, lon float64) (*weather.ForecastResponse, error)
	Name() string
}

// MetricsRecorder interface for recording upstream calls
type MetricsRecorder interface {
	RecordWeatherServiceCall(ctx context.Context, service string, success bool)
}

var (
	_ WeatherService = (*OpenWeatherService)(nil)
	_ geo.Geocoder   = (*OpenWeatherService)(nil)
)
