package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/cmsadmin/internal/flagx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://cms-backend-icem.onrender.com", c.ServerBaseURL)
	assert.Equal(t, "cmsadmin.db", c.DBPath)
	assert.Equal(t, 4*time.Second, c.SlideInterval)
	assert.Equal(t, 700*time.Millisecond, c.TransitionDelay)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.False(t, c.ValidateSession)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "slog", c.LogFormat)
	assert.Equal(t, "download", c.DownloadDir)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv(flagx.ConfigEnvName, "")

	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"server_base_url": "http://from-json:8080",
		"slide_interval": "6s",
		"log_level": "debug"
	}`), 0o600))

	os.Args = []string{"cmsadmin", "-c", path, "-a", "http://from-flag:9090"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "http://from-flag:9090", cfg.ServerBaseURL, "flags override JSON")
	assert.Equal(t, 6*time.Second, cfg.SlideInterval, "JSON overrides defaults")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "cmsadmin.db", cfg.DBPath, "defaults survive")
}
