// Package config handles loading and validating the sayas configuration.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/nadzzz/sayas/internal/speech"
)

// Config is the root configuration for the sayas daemon.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Transports TransportsConfig `mapstructure:"transports"`
	Speech     SpeechConfig     `mapstructure:"speech"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Sentry     SentryConfig     `mapstructure:"sentry"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds the health check server settings.
type ServerConfig struct {
	HealthPort int `mapstructure:"health_port"`
}

// TransportsConfig holds the configuration for each transport layer.
type TransportsConfig struct {
	GRPC GRPCConfig `mapstructure:"grpc"`
	HTTP HTTPConfig `mapstructure:"http"`
}

// GRPCConfig configures the gRPC transport.
type GRPCConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// HTTPConfig configures the HTTP/WebSocket transport.
type HTTPConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// SpeechConfig holds rendering defaults.
type SpeechConfig struct {
	// Currency supplies the units for price steps that name none.
	Currency speech.Currency `mapstructure:"currency"`

	// MaxSteps bounds the number of steps in one script. Zero disables the limit.
	MaxSteps int `mapstructure:"max_steps"`
}

// MetricsConfig toggles the Prometheus /metrics endpoint on the health server.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./sayas.yaml, ./configs/sayas.yaml, /etc/sayas/sayas.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("transports.grpc.enabled", true)
	v.SetDefault("transports.grpc.port", 50051)
	v.SetDefault("transports.http.enabled", true)
	v.SetDefault("transports.http.port", 8080)
	v.SetDefault("speech.currency.singular", speech.Dollar.Singular)
	v.SetDefault("speech.currency.plural", speech.Dollar.Plural)
	v.SetDefault("speech.currency.cent_singular", speech.Dollar.CentSingular)
	v.SetDefault("speech.currency.cent_plural", speech.Dollar.CentPlural)
	v.SetDefault("speech.max_steps", 500)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("sayas")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/sayas")
	}

	// Environment variables: SAYAS_SERVER_HEALTH_PORT, SAYAS_SPEECH_MAX_STEPS, etc.
	v.SetEnvPrefix("SAYAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional; env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Resolve env var references in sensitive fields (e.g., "${SENTRY_DSN}")
	cfg.Sentry.DSN = resolveEnvRef(cfg.Sentry.DSN)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the daemon cannot start with.
func (c *Config) Validate() error {
	if c.Speech.MaxSteps < 0 {
		return fmt.Errorf("speech.max_steps must not be negative, got %d", c.Speech.MaxSteps)
	}
	if c.Transports.HTTP.Enabled && !validPort(c.Transports.HTTP.Port) {
		return fmt.Errorf("transports.http.port out of range: %d", c.Transports.HTTP.Port)
	}
	if c.Transports.GRPC.Enabled && !validPort(c.Transports.GRPC.Port) {
		return fmt.Errorf("transports.grpc.port out of range: %d", c.Transports.GRPC.Port)
	}
	if !validPort(c.Server.HealthPort) {
		return fmt.Errorf("server.health_port out of range: %d", c.Server.HealthPort)
	}
	return nil
}

func validPort(p int) bool { return p > 0 && p < 65536 }

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		envKey := val[2 : len(val)-1]
		if envVal := os.Getenv(envKey); envVal != "" {
			return envVal
		}
	}
	return val
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	slog.SetDefault(slog.New(NewLogHandler(cfg, os.Stdout)))
}

// NewLogHandler builds the slog handler described by cfg writing to w.
func NewLogHandler(cfg LoggingConfig, w io.Writer) slog.Handler {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	if strings.ToLower(cfg.Format) == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
