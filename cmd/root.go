package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/config"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/pkg/logger"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/pkg/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	log        *zap.Logger
	tele       *telemetry.Telemetry
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weather",
		Short: "City weather and forecast service",
		Long:  `Looks up Brazilian cities and serves their current weather plus a daily forecast normalized from OpenWeatherMap.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeServices(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return shutdownServices()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default: ./config.yaml)")

	cmd.AddCommand(serverCmd())
	cmd.AddCommand(forecastCmd())
	cmd.AddCommand(suggestCmd())

	return cmd
}

func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		if log != nil {
			log.Info("Received shutdown signal", zap.String("signal", sig.String()))
		}
		cancel()
	}()

	return rootCmd().ExecuteContext(ctx)
}

func initializeServices(ctx context.Context) error {
	// 1. Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Set config
	// Having config in atomic allows changing it during runtime
	config.SetConfig(cfg)

	// 3. Initialize logger
	log, err = logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	tele, err = telemetry.New(ctx, cfg.Telemetry, cfg.Version)
	if err != nil {
		log.Warn("Failed to initialize telemetry", zap.Error(err))
		tele = &telemetry.Telemetry{}
	}

	return nil
}

func shutdownServices() error {
	if err := tele.Shutdown(context.Background()); err != nil {
		log.Warn("Failed to shutdown telemetry", zap.Error(err))
	}
	_ = log.Sync()
	return nil
}
