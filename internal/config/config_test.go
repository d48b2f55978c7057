package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8790", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.Cache.ListTTL)
	assert.Equal(t, 512, cfg.Cache.ByIDSize)
	assert.Equal(t, 2, cfg.Search.MinQueryLength)
	assert.Equal(t, 250*time.Millisecond, cfg.Search.Interval)
	assert.Equal(t, "sse", cfg.Editor.Provider)
	assert.Equal(t, 2000, cfg.Editor.TokenBudget)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mediadesk.yaml")
	content := `
server:
  host: 0.0.0.0
  port: 9000
remote:
  base_url: https://api.example.com
editor:
  provider: websocket
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr())
	assert.Equal(t, "https://api.example.com", cfg.Remote.BaseURL)
	assert.Equal(t, "websocket", cfg.Editor.Provider)
	// Unspecified knobs keep their defaults.
	assert.Equal(t, 512, cfg.Cache.ByIDSize)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MEDIADESK_SERVER_PORT", "9999")
	t.Setenv("MEDIADESK_EDITOR_PROVIDER", "scripted")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "scripted", cfg.Editor.Provider)
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	bad := *cfg
	bad.Server.Port = -1
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Editor.Provider = "carrier-pigeon"
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Remote.BaseURL = ""
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Cache.ByIDSize = 0
	assert.Error(t, bad.Validate())
}
