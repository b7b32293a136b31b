package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "8084", cfg.Server.Port)
	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, "Asia/Tokyo", cfg.Timezone)
	assert.True(t, cfg.Scheduler.KeepAliveEnabled)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL())
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig("/no/such/file.yaml")
	require.NoError(t, err)
	assert.Equal(t, "8084", cfg.Server.Port)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "9000"
database:
  type: postgres
  postgres:
    host: db.internal
    port: 5432
    user: portal
auth:
  jwt_secret: sekrit
  token_ttl_hours: 2
scheduler:
  keep_alive_enabled: false
  cron_secret: cron-sekrit
timezone: UTC
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Postgres.Host)
	assert.Equal(t, "sekrit", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL())
	assert.False(t, cfg.Scheduler.KeepAliveEnabled)
	assert.Equal(t, "cron-sekrit", cfg.Scheduler.CronSecret)
	assert.Equal(t, "UTC", cfg.Timezone)

	// Unset sections keep their defaults
	assert.Equal(t, "03:00", cfg.Scheduler.ReindexTime)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a mapping"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
