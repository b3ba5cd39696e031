package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "assets", cfg.Assets)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.Metrics)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Zero(t, cfg.MaxChoices)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("STORYBUILDER_ADDR", ":9090")
	t.Setenv("STORYBUILDER_SESSION_TTL", "15m")
	t.Setenv("STORYBUILDER_MAX_CHOICES", "3")
	t.Setenv("STORYBUILDER_METRICS", "false")
	t.Setenv("STORYBUILDER_SESSION_DIR", "/var/lib/storybuilder")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.MaxChoices)
	assert.False(t, cfg.Metrics)
	assert.Equal(t, "/var/lib/storybuilder", cfg.SessionDir)
}

func TestLoad_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("STORYBUILDER_START=cueva\n"), 0o644))

	// t.Setenv restores the variable once godotenv has set it.
	t.Setenv("STORYBUILDER_START", "")
	require.NoError(t, os.Unsetenv("STORYBUILDER_START"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "cueva", cfg.Start)
}

func TestLoad_EnvironmentWinsOverDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("STORYBUILDER_ADDR=:1111\n"), 0o644))
	t.Setenv("STORYBUILDER_ADDR", ":2222")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":2222", cfg.Addr)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("STORYBUILDER_SESSION_TTL", "soon")
	_, err := Load(filepath.Join(dir, "missing.env"))
	assert.Error(t, err)

	t.Setenv("STORYBUILDER_SESSION_TTL", "1h")
	t.Setenv("STORYBUILDER_MAX_CHOICES", "-1")
	_, err = Load(filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
}
