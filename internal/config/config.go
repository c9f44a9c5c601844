// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `validate:"required"`
	// Environment selects the server URL advertised in the generated
	// API documentation.
	Environment string `validate:"required,oneof=development production"`
	// BaseURL is the externally reachable base URL, used for the OAuth
	// redirect and the documentation server list.
	BaseURL  string `validate:"required,url"`
	LogLevel string `validate:"required,oneof=debug info warn error"`

	MongoURI      string `validate:"required"`
	MongoDatabase string `validate:"required"`

	SessionSecret      string
	GoogleClientID     string
	GoogleClientSecret string
}

// AuthEnabled reports whether the OAuth login flow (and the guard in
// front of the API) is active. It is enabled only when provider
// credentials are configured.
func (c *Config) AuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("ADDR", ":8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MONGODB_DATABASE", "inventoried")
	v.AutomaticEnv()

	cfg := &Config{
		Addr:               v.GetString("ADDR"),
		Environment:        v.GetString("ENVIRONMENT"),
		BaseURL:            v.GetString("BASE_URL"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		MongoURI:           v.GetString("MONGODB_URI"),
		MongoDatabase:      v.GetString("MONGODB_DATABASE"),
		SessionSecret:      v.GetString("SESSION_SECRET"),
		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost" + cfg.Addr
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.AuthEnabled() && cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is required when Google OAuth is configured")
	}
	return cfg, nil
}
