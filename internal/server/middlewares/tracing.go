package middlewares

import (
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/server/utils"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// lookupParams are the query parameters copied onto the server span so a
// trace shows which coordinates or city text the lookup was for.
var lookupParams = map[string]string{
	"lat": "weather.lat",
	"lon": "weather.lon",
	"q":   "city.query",
}

// TelemetryMiddleware opens a server span per request, continuing any trace
// propagated by the caller. The span context is stored under
// utils.SpanContextKey so handlers and the upstream client join the trace.
func TelemetryMiddleware(logger *zap.Logger, tele *telemetry.Telemetry) gin.HandlerFunc {
	propagator := otel.GetTextMapPropagator()

	return func(c *gin.Context) {
		ctx := propagator.Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		name := spanName(c)
		ctx, span := tele.GetTracer().Start(ctx, name,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(requestAttributes(c)...),
		)
		defer span.End()

		c.Set(utils.SpanContextKey, ctx)
		c.Request = c.Request.WithContext(ctx)

		if tele.IsEnabled() {
			logger.Debug("Request span started",
				zap.String("span_name", name),
				zap.String("trace_id", span.SpanContext().TraceID().String()))
		}

		c.Next()

		status := c.Writer.Status()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= 400 {
			span.SetAttributes(attribute.Bool("error", true))
			if len(c.Errors) > 0 {
				span.SetAttributes(attribute.String("error.message", c.Errors.String()))
			}
		}
	}
}

func spanName(c *gin.Context) string {
	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	return c.Request.Method + " " + route
}

func requestAttributes(c *gin.Context) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("request.id", utils.GetRequestIDFromGinContext(c)),
		attribute.String("http.method", c.Request.Method),
		attribute.String("http.route", c.FullPath()),
	}
	for param, key := range lookupParams {
		if v, ok := c.GetQuery(param); ok {
			attrs = append(attrs, attribute.String(key, v))
		}
	}
	return attrs
}
