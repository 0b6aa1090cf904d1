package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	require.NoError(t, err)

	want := Default()
	assert.Equal(t, want.DB, cfg.DB)
	assert.Equal(t, want.Addr, cfg.Addr)
	assert.Equal(t, want.Log.Rotation, cfg.Log.Rotation)

	ttl, err := cfg.TokenLifetime()
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, ttl)
}

func TestConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roomboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9090"
token_ttl: 1h
log:
  level: warn
  file: /tmp/roomboard.log
  rotation:
    max_backups: 2
`), 0o644))

	t.Setenv("ROOMBOARD_DB", "/data/catalog.sqlite3")
	t.Setenv("ROOMBOARD_LOG_ROTATION_COMPRESS", "true")

	v := viper.New()
	require.NoError(t, Init(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "/data/catalog.sqlite3", cfg.DB)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/roomboard.log", cfg.Log.File)
	assert.Equal(t, 2, cfg.Log.Rotation.MaxBackups)
	assert.Equal(t, Default().Log.Rotation.MaxSize, cfg.Log.Rotation.MaxSize)
	assert.True(t, cfg.Log.Rotation.Compress)
}

func TestDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":7000\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ROOMBOARD_ADMIN_USER=keeper\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("ROOMBOARD_ADMIN_USER") })

	v := viper.New()
	require.NoError(t, Init(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "keeper", cfg.AdminUser)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"empty db", func(c *Config) { c.DB = "" }},
		{"empty addr", func(c *Config) { c.Addr = "" }},
		{"bad ttl", func(c *Config) { c.TokenTTL = "soon" }},
		{"zero ttl", func(c *Config) { c.TokenTTL = "0s" }},
		{"bad shutdown", func(c *Config) { c.ShutdownTimeout = "-1s" }},
		{"no uploads", func(c *Config) { c.MaxUploadBytes = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	assert.NoError(t, cfg.Validate())
}
