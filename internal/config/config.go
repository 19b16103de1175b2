// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/flight-tracker/live-flight-tracker/internal/infrastructure/retry"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	AirLabs AirLabsConfig
	Flags   FlagsConfig
	Tracker TrackerConfig
	Kafka   KafkaConfig
	Logging LoggingConfig
	App     AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
}

// AirLabsConfig holds settings for the upstream flight data API.
type AirLabsConfig struct {
	// APIKey is sent as the api_key query parameter; never logged
	APIKey  string        `env:"AIRLABS_API_KEY,required"`
	BaseURL string        `env:"AIRLABS_BASE_URL" envDefault:"https://airlabs.co/api/v9"`
	Timeout time.Duration `env:"AIRLABS_TIMEOUT" envDefault:"15s"`
}

// FlagsConfig holds settings for the country flag image endpoint.
type FlagsConfig struct {
	BaseURL string `env:"FLAGS_BASE_URL" envDefault:"https://flagsapi.com"`
	Style   string `env:"FLAGS_STYLE" envDefault:"flat"`
	Size    int    `env:"FLAGS_SIZE" envDefault:"64"`

	// RetryAttempts includes the first download attempt
	RetryAttempts int           `env:"FLAGS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryDelay    time.Duration `env:"FLAGS_RETRY_DELAY" envDefault:"250ms"`
}

// RetryPolicy returns the image retry policy with the configured attempts and first delay.
func (f FlagsConfig) RetryPolicy() retry.Policy {
	return retry.ImagePolicy.
		WithMaxAttempts(f.RetryAttempts).
		WithInitialDelay(f.RetryDelay)
}

// TrackerConfig holds polling settings and the initial map viewport.
// The default viewport is roughly 400 km around Stockholm.
type TrackerConfig struct {
	PollInterval time.Duration `env:"TRACKER_POLL_INTERVAL" envDefault:"5s"`
	AutoStart    bool          `env:"TRACKER_AUTOSTART" envDefault:"true"`
	StartLat     float64       `env:"TRACKER_START_LAT" envDefault:"59.3293"`
	StartLon     float64       `env:"TRACKER_START_LON" envDefault:"18.0686"`
	StartLatSpan float64       `env:"TRACKER_START_LAT_SPAN" envDefault:"3.6"`
	StartLonSpan float64       `env:"TRACKER_START_LON_SPAN" envDefault:"7.0"`
}

// KafkaConfig holds settings for the optional position feed.
// The feed is disabled when Brokers is empty.
type KafkaConfig struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"flight-positions"`
}

// Enabled reports whether a broker list was configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}

	if cfg.AirLabs.APIKey == "" {
		return fmt.Errorf("AIRLABS_API_KEY must not be empty")
	}
	if err := validateBaseURL("AIRLABS_BASE_URL", cfg.AirLabs.BaseURL); err != nil {
		return err
	}
	if cfg.AirLabs.Timeout <= 0 {
		return fmt.Errorf("AIRLABS_TIMEOUT must be positive")
	}

	if err := validateBaseURL("FLAGS_BASE_URL", cfg.Flags.BaseURL); err != nil {
		return err
	}
	validStyles := map[string]bool{"flat": true, "shiny": true}
	if !validStyles[cfg.Flags.Style] {
		return fmt.Errorf("FLAGS_STYLE must be one of: flat, shiny; got %q", cfg.Flags.Style)
	}
	validSizes := map[int]bool{16: true, 24: true, 32: true, 48: true, 64: true}
	if !validSizes[cfg.Flags.Size] {
		return fmt.Errorf("FLAGS_SIZE must be one of: 16, 24, 32, 48, 64; got %d", cfg.Flags.Size)
	}
	if cfg.Flags.RetryAttempts < 1 || cfg.Flags.RetryAttempts > 10 {
		return fmt.Errorf("FLAGS_RETRY_ATTEMPTS must be between 1 and 10, got %d", cfg.Flags.RetryAttempts)
	}
	if cfg.Flags.RetryDelay < 0 {
		return fmt.Errorf("FLAGS_RETRY_DELAY must not be negative")
	}

	if cfg.Tracker.PollInterval < time.Second {
		return fmt.Errorf("TRACKER_POLL_INTERVAL must be at least 1s, got %s", cfg.Tracker.PollInterval)
	}
	if cfg.Tracker.StartLat < -90 || cfg.Tracker.StartLat > 90 {
		return fmt.Errorf("TRACKER_START_LAT must be between -90 and 90, got %v", cfg.Tracker.StartLat)
	}
	if cfg.Tracker.StartLon < -180 || cfg.Tracker.StartLon > 180 {
		return fmt.Errorf("TRACKER_START_LON must be between -180 and 180, got %v", cfg.Tracker.StartLon)
	}
	if cfg.Tracker.StartLatSpan <= 0 || cfg.Tracker.StartLonSpan <= 0 {
		return fmt.Errorf("TRACKER_START_LAT_SPAN and TRACKER_START_LON_SPAN must be positive")
	}

	if cfg.Kafka.Enabled() && cfg.Kafka.Topic == "" {
		return fmt.Errorf("KAFKA_TOPIC must be set when KAFKA_BROKERS is configured")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// validateBaseURL checks that raw is an absolute http(s) URL.
func validateBaseURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, raw)
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
