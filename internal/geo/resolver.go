package geo

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/config"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Geocoder looks up raw candidates for a free-text query.
type Geocoder interface {
	Geocode(ctx context.Context, query string, limit int) ([]Candidate, error)
}

// MetricsRecorder interface for recording lookup outcomes
type MetricsRecorder interface {
	RecordCityLookup(ctx context.Context, result string)
}

type Resolver struct {
	geocoder       Geocoder
	fetchLimit     int
	minQueryLength int
	logger         *zap.Logger
	tele           *telemetry.Telemetry
	metrics        MetricsRecorder
}

func NewResolver(cfg config.SuggestConfig, geocoder Geocoder, logger *zap.Logger, tele *telemetry.Telemetry) *Resolver {
	fetchLimit := cfg.FetchLimit
	if fetchLimit <= 0 {
		fetchLimit = 5
	}

	return &Resolver{
		geocoder:       geocoder,
		fetchLimit:     fetchLimit,
		minQueryLength: cfg.MinQueryLength,
		logger:         logger,
		tele:           tele,
	}
}

// SetMetricsRecorder sets the metrics recorder for the resolver
func (r *Resolver) SetMetricsRecorder(metrics MetricsRecorder) {
	r.metrics = metrics
}

// Suggest returns autocomplete suggestions for query. Queries shorter than
// the configured minimum return an empty list without a lookup.
func (r *Resolver) Suggest(ctx context.Context, query string) ([]CitySuggestion, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < r.minQueryLength {
		return []CitySuggestion{}, nil
	}

	tracer := r.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "geo.Suggest")
	defer span.End()

	span.SetAttributes(attribute.String("query", query))

	candidates, err := r.geocoder.Geocode(ctx, query, r.fetchLimit)
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		return nil, fmt.Errorf("geocode %q: %w", query, err)
	}

	suggestions := ResolveSuggestions(candidates, r.fetchLimit)

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("candidates", len(candidates)),
		attribute.Int("suggestions", len(suggestions)),
	)

	r.logger.Debug("Suggestions resolved",
		zap.String("query", query),
		zap.Int("candidates", len(candidates)),
		zap.Int("suggestions", len(suggestions)))

	return suggestions, nil
}

// ResolveCity returns the first surviving candidate for query, or
// ErrNoMatch.
func (r *Resolver) ResolveCity(ctx context.Context, query string) (CitySuggestion, error) {
	tracer := r.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "geo.ResolveCity")
	defer span.End()

	query = strings.TrimSpace(query)
	span.SetAttributes(attribute.String("query", query))

	if query == "" {
		r.recordLookup(ctx, "no_match")
		return CitySuggestion{}, ErrNoMatch
	}

	candidates, err := r.geocoder.Geocode(ctx, query, r.fetchLimit)
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		r.recordLookup(ctx, "error")
		return CitySuggestion{}, fmt.Errorf("geocode %q: %w", query, err)
	}

	city, err := FirstSuggestion(candidates)
	if err != nil {
		span.SetAttributes(attribute.Bool("success", false))
		r.recordLookup(ctx, "no_match")
		r.logger.Info("No city matched query",
			zap.String("query", query),
			zap.Int("candidates", len(candidates)))
		return CitySuggestion{}, err
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.String("city", city.Label),
	)
	r.recordLookup(ctx, "match")

	return city, nil
}

func (r *Resolver) recordLookup(ctx context.Context, result string) {
	if r.metrics != nil {
		r.metrics.RecordCityLookup(ctx, result)
	}
}
