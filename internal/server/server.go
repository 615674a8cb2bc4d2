package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/aggregator"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/config"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/geo"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/server/handlers"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/server/middlewares"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/service"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg      *config.Config
	engine   *gin.Engine
	server   *http.Server
	upstream *service.OpenWeatherService
	agg      *aggregator.Aggregator
	resolver *geo.Resolver
	logger   *zap.Logger
	tele     *telemetry.Telemetry
}

func NewServer(cfg *config.Config, logger *zap.Logger, tele *telemetry.Telemetry) *Server {
	httpMetrics := middlewares.NewMetricsMiddleware()
	metricsHandler := handlers.NewMetricsHandler(logger, httpMetrics)

	upstream := service.NewOpenWeatherServiceWithConfig(cfg.OpenWeather, logger, tele)
	upstream.SetMetricsRecorder(metricsHandler)

	resolver := geo.NewResolver(cfg.Suggest, upstream, logger, tele)
	resolver.SetMetricsRecorder(metricsHandler)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middlewares.RequestIDMiddleware())
	engine.Use(middlewares.LoggingMiddleware(logger, "/health", "/health/live", "/health/ready", "/metrics"))
	engine.Use(middlewares.RecoveryMiddleware(logger, true))
	engine.Use(middlewares.TelemetryMiddleware(logger, tele))
	engine.Use(httpMetrics.Handler())

	s := &Server{
		cfg:      cfg,
		engine:   engine,
		upstream: upstream,
		agg:      aggregator.NewAggregator(upstream, logger, tele),
		resolver: resolver,
		logger:   logger,
		tele:     tele,
	}

	s.setupRoutes(metricsHandler)

	return s
}

func (s *Server) setupRoutes(metrics *handlers.MetricsHandler) {
	weatherHandler := handlers.NewWeatherHandler(s.agg, s.resolver, s.logger)
	cityHandler := handlers.NewCityHandler(s.resolver, s.logger)
	healthHandler := handlers.NewHealthHandler(s.logger, s.ready)

	// Business endpoints
	s.engine.GET("/weather", weatherHandler.GetWeather)
	s.engine.GET("/weather/search", weatherHandler.SearchWeather)
	s.engine.GET("/cities/suggest", cityHandler.Suggest)
	s.engine.GET("/cities/resolve", cityHandler.Resolve)

	// Health endpoints (Kubernetes friendly)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/health/live", healthHandler.Liveness)
	s.engine.GET("/health/ready", healthHandler.Readiness)

	// Monitoring endpoints
	s.engine.GET("/metrics", metrics.ServeMetrics)
}

func (s *Server) ready() error {
	if s.cfg.OpenWeather.APIKey == "" {
		return service.ErrMissingAPIKey
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start() error {
	sc := s.cfg.Server

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", sc.Host, sc.Port),
		Handler:      s.engine,
		ReadTimeout:  time.Duration(sc.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(sc.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(sc.IdleTimeout) * time.Second,
	}

	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	defer func() {
		if err := s.upstream.Close(); err != nil {
			s.logger.Warn("Failed to close upstream client", zap.Error(err))
		}
	}()

	if s.server == nil {
		return nil
	}

	return s.server.Shutdown(ctx)
}
