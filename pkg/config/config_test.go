package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "providers.yaml", cfg.ProvidersFile)
	assert.Equal(t, 30*time.Second, cfg.ProviderTimeout)
	assert.True(t, cfg.HealthCheckEnabled)
	assert.Equal(t, "@every 5m", cfg.HealthCheckSchedule)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.Database.MaxConns)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("PROVIDER_TIMEOUT", "5s")
	t.Setenv("HEALTHCHECK_ENABLED", "false")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 5*time.Second, cfg.ProviderTimeout)
	assert.False(t, cfg.HealthCheckEnabled)
	assert.Equal(t, 25, cfg.Database.MaxConns)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "not-a-duration")
	t.Setenv("DB_MAX_CONNS", "many")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 10, cfg.Database.MaxConns)
}
