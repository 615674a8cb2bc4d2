package config

import (
	"sync/atomic"
)

var configValue atomic.Value

func GetConfig() *Config {
	return configValue.Load().(*Config)
}

func SetConfig(cfg *Config) {
	configValue.Store(cfg)
}

type Config struct {
	Version     string            `mapstructure:"version"`
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	OpenWeather OpenWeatherConfig `mapstructure:"openweather"`
	Suggest     SuggestConfig     `mapstructure:"suggest"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Host         string `mapstructure:"host"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// OpenWeatherConfig points the transport at the OpenWeatherMap APIs.
type OpenWeatherConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	GeoBaseURL string `mapstructure:"geo_base_url"`
	APIKey     string `mapstructure:"api_key"`
	Units      string `mapstructure:"units"`
	Lang       string `mapstructure:"lang"`
	Timeout    int    `mapstructure:"timeout"`
}

type SuggestConfig struct {
	FetchLimit     int `mapstructure:"fetch_limit"`
	MinQueryLength int `mapstructure:"min_query_length"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Version:     "1.0.0",
		Environment: "development",
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
		},
		OpenWeather: OpenWeatherConfig{
			BaseURL:    "https://api.openweathermap.org/data/2.5",
			GeoBaseURL: "https://api.openweathermap.org/geo/1.0",
			APIKey:     "",
			Units:      "metric",
			Lang:       "pt_br",
			Timeout:    10,
		},
		Suggest: SuggestConfig{
			FetchLimit:     5,
			MinQueryLength: 3,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:  false,
			Endpoint: "tempo:4317",
		},
	}
}
