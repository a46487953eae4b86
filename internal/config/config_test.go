package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("PARKING_AUTH_DISABLED", "true")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Pricing.RateCacheTTL)
	assert.True(t, cfg.Auth.Disabled)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PARKING_FIREBASE_PROJECT_ID", "lots-prod")
	t.Setenv("PARKING_RATE_CACHE_TTL", "30s")
	t.Setenv("PARKING_CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("PARKING_REDIS_ADDR", "redis:6379")
	t.Setenv("PARKING_MAPS_REGION", "br")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.Auth.Disabled)
	assert.Equal(t, "lots-prod", cfg.Auth.ProjectID)
	assert.Equal(t, 30*time.Second, cfg.Pricing.RateCacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "br", cfg.Maps.Region)
}

func TestFromEnv_Errors(t *testing.T) {
	cases := map[string]map[string]string{
		"bad duration":    {"PARKING_AUTH_DISABLED": "true", "PARKING_RATE_CACHE_TTL": "soon"},
		"bad bool":        {"PARKING_AUTH_DISABLED": "maybe"},
		"missing project": {"PARKING_AUTH_DISABLED": "false", "PARKING_FIREBASE_PROJECT_ID": ""},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}
