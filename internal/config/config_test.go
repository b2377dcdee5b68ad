package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIBase, cfg.API.BaseURL)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadFrom_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("api:\n  base_url: https://crm.example.com/api\nlogging:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "https://crm.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Unset fields keep defaults.
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadFrom_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [not: valid"), 0o600))

	_, err := LoadFrom(path)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.API.BaseURL = "https://crm.example.com/api"
	require.NoError(t, Save(cfg, path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.API.BaseURL, loaded.API.BaseURL)
}

func TestAPIBase_EnvOverride(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "https://configured.example.com/api"

	assert.Equal(t, "https://configured.example.com/api", cfg.APIBase())

	t.Setenv(EnvAPIBase, "https://override.example.com/api")
	assert.Equal(t, "https://override.example.com/api", cfg.APIBase())
}
