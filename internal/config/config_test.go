package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("STORAGE_BUCKET", "prints")
	t.Setenv("STORAGE_ACCESS_KEY", "access")
	t.Setenv("STORAGE_SECRET_KEY", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "localhost:9000", cfg.Storage.Endpoint)
	assert.False(t, cfg.Storage.UseSSL)
	assert.Equal(t, 10, cfg.Database.MaxConns)
}

func TestLoadReadsEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("STORAGE_ENDPOINT", "storage.example.com")
	t.Setenv("STORAGE_USE_SSL", "true")
	t.Setenv("STORAGE_PUBLIC_BASE_URL", "https://cdn.example.com")
	t.Setenv("DATABASE_MAX_CONNS", "25")
	t.Setenv("ADMIN_KEY", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "storage.example.com", cfg.Storage.Endpoint)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, "https://cdn.example.com", cfg.Storage.PublicBaseURL)
	assert.Equal(t, 25, cfg.Database.MaxConns)
	assert.Equal(t, "s3cret", cfg.Admin.Key)
}

func TestLoadRequiresBucket(t *testing.T) {
	t.Setenv("STORAGE_BUCKET", "")
	t.Setenv("STORAGE_ACCESS_KEY", "access")
	t.Setenv("STORAGE_SECRET_KEY", "secret")

	_, err := Load()
	assert.ErrorContains(t, err, "STORAGE_BUCKET")
}

func TestLoadRequiresCredentials(t *testing.T) {
	t.Setenv("STORAGE_BUCKET", "prints")
	t.Setenv("STORAGE_ACCESS_KEY", "")
	t.Setenv("STORAGE_SECRET_KEY", "")

	_, err := Load()
	assert.ErrorContains(t, err, "STORAGE_ACCESS_KEY")
}
