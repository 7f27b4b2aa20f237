package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the indicator fetcher service.
type Config struct {
	// FRED requires an API key. It is optional: when absent, FRED-backed
	// indicators are skipped each cycle rather than treated as errors.
	FREDAPIKey string `mapstructure:"fred_api_key"`

	// Base URLs for API endpoints (configurable for testing)
	BLSBaseURL  string `mapstructure:"bls_base_url"`
	FREDBaseURL string `mapstructure:"fred_base_url"`

	// DataFile is the JSON document holding the persisted indicator store
	DataFile string `mapstructure:"data_file"`

	// Port the HTTP API listens on
	Port int `mapstructure:"port"`

	// UpdateInterval between scheduled pipeline runs
	UpdateInterval time.Duration `mapstructure:"update_interval"`
}

// Load reads configuration from environment variables and optional config file.
// Environment variables take precedence over config file values.
//
// Expected environment variables:
//   - FRED_API_KEY (optional; absence disables FRED-backed indicators)
//   - BLS_BASE_URL (optional, defaults to production)
//   - FRED_BASE_URL (optional, defaults to production)
//   - DATA_FILE (optional, defaults to data/indicators.json)
//   - PORT (optional, defaults to 5000)
//   - UPDATE_INTERVAL (optional, defaults to 24h)
func Load() (*Config, error) {
	v := viper.New()

	// Set up environment variable support
	v.SetEnvPrefix("") // No prefix, use full names
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("bls_base_url", "https://api.bls.gov/publicAPI/v2/timeseries/data/")
	v.SetDefault("fred_base_url", "https://api.stlouisfed.org/fred")
	v.SetDefault("data_file", "data/indicators.json")
	v.SetDefault("port", 5000)
	v.SetDefault("update_interval", 24*time.Hour)

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.econfetcher")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	// Bind environment variables
	v.BindEnv("fred_api_key", "FRED_API_KEY")
	v.BindEnv("bls_base_url", "BLS_BASE_URL")
	v.BindEnv("fred_base_url", "FRED_BASE_URL")
	v.BindEnv("data_file", "DATA_FILE")
	v.BindEnv("port", "PORT")
	v.BindEnv("update_interval", "UPDATE_INTERVAL")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Port <= 0 || config.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", config.Port)
	}
	if config.UpdateInterval <= 0 {
		return nil, fmt.Errorf("invalid update interval: %s", config.UpdateInterval)
	}

	return config, nil
}
