package handlers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/server/middlewares"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HTTPMetricsProvider exposes the HTTP metrics gathered by the middleware
type HTTPMetricsProvider interface {
	Snapshot() middlewares.HTTPMetricsSnapshot
}

// AppMetrics holds application-level metrics (upstream calls, city lookups)
type AppMetrics struct {
	mutex                sync.RWMutex
	weatherServiceCalls  map[string]int64
	weatherServiceErrors map[string]int64
	cityLookups          map[string]int64
}

type MetricsHandler struct {
	logger     *zap.Logger
	http       HTTPMetricsProvider
	appMetrics *AppMetrics
}

func NewMetricsHandler(logger *zap.Logger, httpMetrics HTTPMetricsProvider) *MetricsHandler {
	return &MetricsHandler{
		logger: logger,
		http:   httpMetrics,
		appMetrics: &AppMetrics{
			weatherServiceCalls:  make(map[string]int64),
			weatherServiceErrors: make(map[string]int64),
			cityLookups:          make(map[string]int64),
		},
	}
}

// RecordWeatherServiceCall records a weather service API call
func (h *MetricsHandler) RecordWeatherServiceCall(ctx context.Context, service string, success bool) {
	h.appMetrics.mutex.Lock()
	h.appMetrics.weatherServiceCalls[service]++
	if !success {
		h.appMetrics.weatherServiceErrors[service]++
	}
	h.appMetrics.mutex.Unlock()
}

// RecordCityLookup records the outcome of a single-city resolution
func (h *MetricsHandler) RecordCityLookup(ctx context.Context, result string) {
	h.appMetrics.mutex.Lock()
	h.appMetrics.cityLookups[result]++
	h.appMetrics.mutex.Unlock()
}

// ServeMetrics exposes metrics in Prometheus text format
func (h *MetricsHandler) ServeMetrics(c *gin.Context) {
	var b strings.Builder

	if h.http != nil {
		snap := h.http.Snapshot()

		writeHeader(&b, "http_requests_total", "Total number of HTTP requests", "counter")
		writeLabelled(&b, "http_requests_total", "route_status", snap.RequestsTotal)

		writeHeader(&b, "http_request_duration_seconds_avg", "Average duration of HTTP requests", "gauge")
		fmt.Fprintf(&b, "http_request_duration_seconds_avg %.6f\n", snap.AvgDurationSeconds)

		writeHeader(&b, "http_active_requests", "Number of active HTTP requests", "gauge")
		fmt.Fprintf(&b, "http_active_requests %d\n", snap.ActiveRequests)
	}

	h.appMetrics.mutex.RLock()
	writeHeader(&b, "weather_service_calls_total", "Total weather service calls", "counter")
	writeLabelled(&b, "weather_service_calls_total", "service", h.appMetrics.weatherServiceCalls)

	writeHeader(&b, "weather_service_errors_total", "Total weather service errors", "counter")
	writeLabelled(&b, "weather_service_errors_total", "service", h.appMetrics.weatherServiceErrors)

	writeHeader(&b, "city_lookups_total", "Total single-city lookups by result", "counter")
	writeLabelled(&b, "city_lookups_total", "result", h.appMetrics.cityLookups)
	h.appMetrics.mutex.RUnlock()

	c.Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	c.String(200, b.String())
}

func writeHeader(b *strings.Builder, name, help, kind string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}

func writeLabelled(b *strings.Builder, name, label string, values map[string]int64) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(b, "%s{%s=%q} %d\n", name, label, k, values[k])
	}
}
