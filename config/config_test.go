package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DB_PATH",
		"FATSECRET_CLIENT_ID", "FATSECRET_SECRET_ID",
		"FATSECRET_REGION", "FATSECRET_SCOPES",
		"FATSECRET_OAUTH_URL", "FATSECRET_API_URL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, "4000", cfg.ServerPort)
	assert.Equal(t, "./data/meals.db", cfg.DBPath)
	assert.Equal(t, "FI", cfg.FatSecretRegion)
	assert.Equal(t, "basic barcode", cfg.FatSecretScopes)
	assert.Equal(t, DefaultOAuthURL, cfg.FatSecretOAuthURL)
	assert.Equal(t, DefaultAPIURL, cfg.FatSecretAPIURL)

	// Credentials stay empty until the token cache needs them.
	assert.Empty(t, cfg.FatSecretClientID)
	assert.Empty(t, cfg.FatSecretSecret)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_PATH", "/tmp/test-meals.db")
	t.Setenv("FATSECRET_CLIENT_ID", "client-id")
	t.Setenv("FATSECRET_SECRET_ID", "client-secret")
	t.Setenv("FATSECRET_REGION", "US")
	t.Setenv("FATSECRET_SCOPES", "basic")
	t.Setenv("FATSECRET_OAUTH_URL", "http://localhost:9000/token")
	t.Setenv("FATSECRET_API_URL", "http://localhost:9000/rest")

	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "/tmp/test-meals.db", cfg.DBPath)
	assert.Equal(t, "client-id", cfg.FatSecretClientID)
	assert.Equal(t, "client-secret", cfg.FatSecretSecret)
	assert.Equal(t, "US", cfg.FatSecretRegion)
	assert.Equal(t, "basic", cfg.FatSecretScopes)
	assert.Equal(t, "http://localhost:9000/token", cfg.FatSecretOAuthURL)
	assert.Equal(t, "http://localhost:9000/rest", cfg.FatSecretAPIURL)
}

func TestLoadConfigRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	cfg, err := LoadConfig()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
