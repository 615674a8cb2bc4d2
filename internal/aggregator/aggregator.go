package aggregator

import (
	"context"
	"fmt"
	"sync"

	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/service"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/weather"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/pkg/logger"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Aggregator fetches current conditions and the forecast for a coordinate
// pair and normalizes them into one CityWeather.
type Aggregator struct {
	service service.WeatherService
	logger  *zap.Logger
	tele    *telemetry.Telemetry
}

func NewAggregator(svc service.WeatherService, logger *zap.Logger, tele *telemetry.Telemetry) *Aggregator {
	return &Aggregator{
		service: svc,
		logger:  logger,
		tele:    tele,
	}
}

func (a *Aggregator) GetCityWeather(ctx context.Context, lat, lon float64) (*weather.CityWeather, error) {
	tracer := a.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "aggregator.GetCityWeather")
	defer span.End()

	reqLogger := logger.WithContext(ctx, a.logger)

	span.SetAttributes(
		attribute.Float64("lat", lat),
		attribute.Float64("lon", lon),
		attribute.String("service", a.service.Name()),
	)

	reqLogger.Debug("Weather data requested",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon))

	current, forecast, err := a.fetchWeatherData(ctx, lat, lon)
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		reqLogger.Error("Failed to fetch weather data",
			zap.Error(err),
			zap.Float64("lat", lat),
			zap.Float64("lon", lon))
		return nil, err
	}

	snapshot := weather.BuildSnapshot(*current, forecast.List)

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("samples", len(forecast.List)),
		attribute.Int("days", len(snapshot.Daily)),
	)

	reqLogger.Info("Weather snapshot built",
		zap.String("city", snapshot.CityName),
		zap.Int("samples", len(forecast.List)),
		zap.Int("days", len(snapshot.Daily)))

	return &snapshot, nil
}

// fetchWeatherData issues both upstream requests concurrently and waits for
// both. Either failure fails the whole fetch.
func (a *Aggregator) fetchWeatherData(ctx context.Context, lat, lon float64) (*weather.CurrentConditions, *weather.ForecastResponse, error) {
	tracer := a.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "aggregator.fetchWeatherData")
	defer span.End()

	var (
		wg          sync.WaitGroup
		current     *weather.CurrentConditions
		forecast    *weather.ForecastResponse
		currentErr  error
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		current, currentErr = a.service.CurrentConditions(ctx, lat, lon)
	}()
	go func() {
		defer wg.Done()
		forecast, forecastErr = a.service.Forecast(ctx, lat, lon)
	}()
	wg.Wait()

	var err error
	if currentErr != nil {
		err = multierr.Append(err, fmt.Errorf("current conditions: %w", currentErr))
	}
	if forecastErr != nil {
		err = multierr.Append(err, fmt.Errorf("forecast: %w", forecastErr))
	}
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, nil, err
	}

	if current == nil {
		current = &weather.CurrentConditions{}
	}
	if forecast == nil {
		forecast = &weather.ForecastResponse{}
	}

	span.SetAttributes(attribute.Bool("success", true))
	return current, forecast, nil
}
