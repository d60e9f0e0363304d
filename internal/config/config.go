// Package config loads shopfront configuration from the environment,
// an optional .env file, and an optional config file via viper.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/petalworks/shopfront/pkg/logging"
)

// Config keys. Environment variables use the same names.
const (
	KeyDatabaseURL  = "DATABASE_URL"
	KeyStorePath    = "SHOPFRONT_DB_PATH"
	KeyFetchTimeout = "SHOPFRONT_FETCH_TIMEOUT"
	KeyLogLevel     = "LOG_LEVEL"
	KeyLogFormat    = "LOG_FORMAT"
)

// Config holds the resolved runtime configuration.
type Config struct {
	DatabaseURL  string
	StorePath    string
	FetchTimeout time.Duration
	LogLevel     string
	LogFormat    string
}

// Load resolves configuration. A missing .env file is not an error; the
// environment always wins over file values.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logging.Warn().Err(err).Msg("could not load .env file")
	}

	viper.SetDefault(KeyFetchTimeout, "30s")
	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:  GetString(KeyDatabaseURL),
		StorePath:    GetString(KeyStorePath),
		FetchTimeout: viper.GetDuration(KeyFetchTimeout),
		LogLevel:     GetString(KeyLogLevel),
		LogFormat:    GetString(KeyLogFormat),
	}

	if cfg.StorePath == "" {
		cfg.StorePath = defaultStorePath()
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 30 * time.Second
	}

	return cfg
}

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// defaultStorePath places the cart database under the user config
// directory, falling back to the working directory.
func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "shopfront.db"
	}
	return filepath.Join(dir, "shopfront", "shopfront.db")
}
