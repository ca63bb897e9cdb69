// Package config loads the site configuration from an optional YAML file
// overlaid with SITE_* environment variables.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/lmittmann/tint"

	"tavernasite/internal/core"
	"tavernasite/internal/render"
)

const envPrefix = "SITE_"

type Config struct {
	Log    LogConfig    `koanf:"log"`
	Server ServerConfig `koanf:"server"`
	Render RenderConfig `koanf:"render"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level"`
	// Format is one of console, json, text.
	Format string `koanf:"format"`
}

type ServerConfig struct {
	Port            int           `koanf:"port"`
	StaticDir       string        `koanf:"static_dir"`
	ContentDir      string        `koanf:"content_dir"`
	Shell           string        `koanf:"shell"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type RenderConfig struct {
	// BaseURL of a running content server. Empty reads ContentDir directly.
	BaseURL    string        `koanf:"base_url"`
	ContentDir string        `koanf:"content_dir"`
	Shell      string        `koanf:"shell"`
	Output     string        `koanf:"output"`
	StatePath  string        `koanf:"state_path"`
	MenuStyle  string        `koanf:"menu_style"`
	Fallback   string        `koanf:"fallback_language"`
	Timeout    time.Duration `koanf:"timeout"`
}

func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "console"},
		Server: ServerConfig{
			Port:            8080,
			StaticDir:       "web",
			ContentDir:      "web/i18n",
			Shell:           "web/index.html",
			ShutdownTimeout: 10 * time.Second,
		},
		Render: RenderConfig{
			ContentDir: "web/i18n",
			Shell:      "web/index.html",
			Output:     "dist/index.html",
			StatePath:  "site.db",
			MenuStyle:  string(render.MenuCarousel),
			Fallback:   core.DefaultLanguage,
			Timeout:    15 * time.Second,
		},
	}
}

// Load reads path (when it exists) on top of the defaults, then applies
// environment overrides: SITE_SERVER__PORT -> server.port.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "console", "json", "text":
	default:
		return fmt.Errorf("invalid log format %q: must be one of console, json, text", c.Log.Format)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 || c.Render.Timeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if _, err := render.ParseMenuStyle(c.Render.MenuStyle); err != nil {
		return err
	}
	if _, ok := core.ParseLanguage(c.Render.Fallback); !ok {
		return fmt.Errorf("invalid fallback language %q", c.Render.Fallback)
	}
	return nil
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
}

// NewLogger builds the process logger. Console output is colorized by tint.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	level, _ := ParseLevel(c.Level)

	var handler slog.Handler
	switch c.Format {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case "text":
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	default:
		handler = tint.NewHandler(w, &tint.Options{Level: level, TimeFormat: time.Kitchen})
	}
	return slog.New(handler)
}
