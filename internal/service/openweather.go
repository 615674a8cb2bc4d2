package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/config"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/geo"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/weather"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"resty.dev/v3"
)

var (
	ErrMissingAPIKey = errors.New("openweather API key not configured")
	ErrUpstream      = errors.New("openweather request failed")
)

// OpenWeatherService talks to the OpenWeatherMap current, forecast and
// direct geocoding endpoints.
type OpenWeatherService struct {
	data    *resty.Client
	geo     *resty.Client
	apiKey  string
	units   string
	lang    string
	logger  *zap.Logger
	tele    *telemetry.Telemetry
	metrics MetricsRecorder
}

func NewOpenWeatherServiceWithConfig(cfg config.OpenWeatherConfig, logger *zap.Logger, tele *telemetry.Telemetry) *OpenWeatherService {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &OpenWeatherService{
		data: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
		geo: resty.New().
			SetBaseURL(cfg.GeoBaseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
		apiKey: cfg.APIKey,
		units:  cfg.Units,
		lang:   cfg.Lang,
		logger: logger,
		tele:   tele,
	}
}

func (s *OpenWeatherService) Name() string {
	return "openweather"
}

// SetMetricsRecorder sets the metrics recorder for upstream calls
func (s *OpenWeatherService) SetMetricsRecorder(metrics MetricsRecorder) {
	s.metrics = metrics
}

func (s *OpenWeatherService) Close() error {
	return errors.Join(s.data.Close(), s.geo.Close())
}

func (s *OpenWeatherService) CurrentConditions(ctx context.Context, lat, lon float64) (*weather.CurrentConditions, error) {
	var current weather.CurrentConditions
	if err := s.get(ctx, s.data, "current", "/weather", s.coordParams(lat, lon), &current); err != nil {
		return nil, err
	}
	return &current, nil
}

func (s *OpenWeatherService) Forecast(ctx context.Context, lat, lon float64) (*weather.ForecastResponse, error) {
	var forecast weather.ForecastResponse
	if err := s.get(ctx, s.data, "forecast", "/forecast", s.coordParams(lat, lon), &forecast); err != nil {
		return nil, err
	}
	return &forecast, nil
}

// Geocode implements geo.Geocoder.
func (s *OpenWeatherService) Geocode(ctx context.Context, query string, limit int) ([]geo.Candidate, error) {
	params := map[string]string{
		"q":     query,
		"limit": strconv.Itoa(limit),
	}

	var candidates []geo.Candidate
	if err := s.get(ctx, s.geo, "geocode", "/direct", params, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

func (s *OpenWeatherService) coordParams(lat, lon float64) map[string]string {
	return map[string]string{
		"lat":   strconv.FormatFloat(lat, 'f', 6, 64),
		"lon":   strconv.FormatFloat(lon, 'f', 6, 64),
		"units": s.units,
		"lang":  s.lang,
	}
}

func (s *OpenWeatherService) get(ctx context.Context, client *resty.Client, endpoint, path string, params map[string]string, out interface{}) (err error) {
	tracer := s.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "openweather."+endpoint)
	defer span.End()

	span.SetAttributes(
		attribute.String("service", s.Name()),
		attribute.String("endpoint", endpoint),
	)

	defer func() {
		success := err == nil
		span.SetAttributes(attribute.Bool("success", success))
		if !success {
			s.tele.RecordError(ctx, err, map[string]interface{}{"endpoint": endpoint})
		}
		if s.metrics != nil {
			s.metrics.RecordWeatherServiceCall(ctx, s.Name()+"."+endpoint, success)
		}
	}()

	if s.apiKey == "" {
		s.logger.Warn("OpenWeather called without API key", zap.String("endpoint", endpoint))
		return ErrMissingAPIKey
	}

	s.logger.Debug("Calling OpenWeather",
		zap.String("endpoint", endpoint),
		zap.String("path", path))

	resp, err := client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("appid", s.apiKey).
		Get(path)
	if err != nil {
		return fmt.Errorf("%s request: %w", endpoint, err)
	}

	if resp.IsError() {
		s.logger.Warn("OpenWeather returned error status",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode()))
		return fmt.Errorf("%w: %s returned %s", ErrUpstream, endpoint, resp.Status())
	}

	if err := json.Unmarshal(resp.Bytes(), out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	return nil
}
