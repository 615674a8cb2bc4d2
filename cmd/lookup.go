package cmd

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/aggregator"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/config"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/geo"
	"github.com/NicolasVitorCarvalhodeOliveira/weather-app/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func forecastCmd() *cobra.Command {
	var (
		lat, lon float64
		city     string
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Print the weather snapshot for a city or coordinates",
		Example: `  weather forecast --city "Maricá"
  weather forecast --lat -22.92 --lon -42.82`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()
			upstream := service.NewOpenWeatherServiceWithConfig(cfg.OpenWeather, log, tele)
			defer upstream.Close()

			ctx := cmd.Context()

			if city != "" {
				resolver := geo.NewResolver(cfg.Suggest, upstream, log, tele)
				found, err := resolver.ResolveCity(ctx, city)
				if err != nil {
					return err
				}
				log.Debug("City resolved", zap.String("label", found.Label))
				lat, lon = found.Lat, found.Lon
			} else if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
				return errors.New("either --city or both --lat and --lon are required")
			}

			snapshot, err := aggregator.NewAggregator(upstream, log, tele).GetCityWeather(ctx, lat, lon)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), snapshot)
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude")
	cmd.Flags().StringVar(&city, "city", "", "city name to resolve first")
	cmd.MarkFlagsMutuallyExclusive("city", "lat")
	cmd.MarkFlagsMutuallyExclusive("city", "lon")

	return cmd
}

func suggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <query>",
		Short: "Print city suggestions for a partial name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()
			upstream := service.NewOpenWeatherServiceWithConfig(cfg.OpenWeather, log, tele)
			defer upstream.Close()

			suggestions, err := geo.NewResolver(cfg.Suggest, upstream, log, tele).Suggest(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), suggestions)
		},
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
