package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "el", cfg.Render.Fallback)
	assert.Equal(t, "carousel", cfg.Render.MenuStyle)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
  format: json
server:
  port: 9000
  shutdown_timeout: 3s
render:
  menu_style: cards
  base_url: http://localhost:9000
`), 0644))

	t.Setenv("SITE_SERVER__PORT", "9100")
	t.Setenv("SITE_RENDER__FALLBACK_LANGUAGE", "en")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "cards", cfg.Render.MenuStyle)
	assert.Equal(t, "http://localhost:9000", cfg.Render.BaseURL)
	assert.Equal(t, "en", cfg.Render.Fallback)
	assert.Equal(t, "web/index.html", cfg.Render.Shell)
}

func TestValidate(t *testing.T) {
	tt := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "level", mutate: func(c *Config) { c.Log.Level = "loud" }},
		{name: "format", mutate: func(c *Config) { c.Log.Format = "xml" }},
		{name: "port", mutate: func(c *Config) { c.Server.Port = 70000 }},
		{name: "render timeout", mutate: func(c *Config) { c.Render.Timeout = 0 }},
		{name: "menu style", mutate: func(c *Config) { c.Render.MenuStyle = "grid" }},
		{name: "fallback", mutate: func(c *Config) { c.Render.Fallback = "fr" }},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "lang", "el")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"lang":"el"`)
}
