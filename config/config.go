package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// DefaultOAuthURL is the FatSecret client-credentials token endpoint.
	DefaultOAuthURL = "https://oauth.fatsecret.com/connect/token"
	// DefaultAPIURL is the FatSecret platform REST base URL.
	DefaultAPIURL = "https://platform.fatsecret.com/rest"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string

	// Database configuration
	DBPath string

	// FatSecret API configuration
	FatSecretClientID string
	FatSecretSecret   string
	FatSecretRegion   string
	FatSecretScopes   string
	FatSecretOAuthURL string
	FatSecretAPIURL   string
}

// LoadConfig creates a new Config instance with values from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:        getEnv("PORT", "4000"),
		DBPath:            getEnv("DB_PATH", "./data/meals.db"),
		FatSecretClientID: os.Getenv("FATSECRET_CLIENT_ID"),
		FatSecretSecret:   os.Getenv("FATSECRET_SECRET_ID"),
		FatSecretRegion:   getEnv("FATSECRET_REGION", "FI"),
		FatSecretScopes:   getEnv("FATSECRET_SCOPES", "basic barcode"),
		FatSecretOAuthURL: getEnv("FATSECRET_OAUTH_URL", DefaultOAuthURL),
		FatSecretAPIURL:   getEnv("FATSECRET_API_URL", DefaultAPIURL),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ValidateConfig checks that the configuration is usable. Missing FatSecret
// credentials are not fatal here: the token cache reports them when the first
// upstream call is made, so local diary usage works without them.
func ValidateConfig(cfg *Config) error {
	if cfg.ServerPort == "" {
		return fmt.Errorf("server port must not be empty")
	}
	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return fmt.Errorf("invalid server port %q: %w", cfg.ServerPort, err)
	}
	if cfg.DBPath == "" {
		return fmt.Errorf("database path must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
