package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting of the gateway. Values come from a .env
// file when present, with environment variables taking precedence.
type Config struct {
	ServerPort   string `mapstructure:"SERVER_PORT"`
	ClientOrigin string `mapstructure:"CLIENT_ORIGIN"`

	// UpstreamBaseURL designates the backend API origin. Its absence is a
	// startup misconfiguration, not a runtime-recoverable error.
	UpstreamBaseURL        string `mapstructure:"UPSTREAM_BASE_URL"`
	UpstreamTimeoutSeconds int    `mapstructure:"UPSTREAM_TIMEOUT_SECONDS"`

	JWTSecret         string `mapstructure:"JWT_SECRET"`
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`

	EmailEnabled bool   `mapstructure:"EMAIL_ENABLED"`
	EmailFrom    string `mapstructure:"EMAIL_FROM"`
	AWSRegion    string `mapstructure:"AWS_REGION"`
}

// SessionTTL returns the configured session lifetime.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// UpstreamTimeout returns the per-request timeout for upstream calls.
func (c Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutSeconds) * time.Second
}

// LoadConfig reads configuration from the given directory and the environment.
func LoadConfig(path string) (Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("CLIENT_ORIGIN", "http://localhost:3000")
	viper.SetDefault("UPSTREAM_TIMEOUT_SECONDS", 15)
	viper.SetDefault("SESSION_TTL_MINUTES", 24*60)
	viper.SetDefault("EMAIL_ENABLED", false)
	viper.SetDefault("AWS_REGION", "us-east-1")

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env file is fine; everything can come from the environment.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	if cfg.UpstreamBaseURL == "" {
		return Config{}, errors.New("config: UPSTREAM_BASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("config: JWT_SECRET is required")
	}
	if cfg.EmailEnabled && cfg.EmailFrom == "" {
		return Config{}, errors.New("config: EMAIL_FROM is required when EMAIL_ENABLED is set")
	}

	return cfg, nil
}
