package main

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tavernasite/internal/chrome"
	"tavernasite/internal/config"
	"tavernasite/internal/core"
	"tavernasite/internal/dom"
	"tavernasite/internal/server"
	"tavernasite/internal/services"
	"tavernasite/internal/store/kvdb"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Render.ContentDir = "../../web/i18n"
	cfg.Render.Shell = "../../web/index.html"
	cfg.Render.Output = filepath.Join(dir, "dist", "index.html")
	cfg.Render.StatePath = filepath.Join(dir, "site.db")
	return cfg
}

func readOutput(t *testing.T, cfg *config.Config) *dom.Document {
	t.Helper()
	f, err := os.Open(cfg.Render.Output)
	require.NoError(t, err)
	defer f.Close()
	doc, err := dom.Parse(f)
	require.NoError(t, err)
	return doc
}

func storedLanguage(t *testing.T, cfg *config.Config) string {
	t.Helper()
	s, err := kvdb.Open(cfg.Render.StatePath)
	require.NoError(t, err)
	defer s.Close()
	v, _, err := s.GetItem(context.Background(), core.LanguageKey)
	require.NoError(t, err)
	return v
}

func TestRunRemembersLanguage(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	// fresh state boots the fallback
	require.NoError(t, run(ctx, cfg, "", discard))
	doc := readOutput(t, cfg)
	assert.Equal(t, "el", doc.Lang())
	assert.Equal(t, "Ταβέρνα Ο Γιώργος", dom.Text(doc.ElementByID("brand")))
	assert.Equal(t, "el", storedLanguage(t, cfg))

	// clicking the button switches and persists
	require.NoError(t, run(ctx, cfg, "en", discard))
	doc = readOutput(t, cfg)
	assert.Equal(t, "en", doc.Lang())
	assert.Equal(t, "Taverna O Giorgos", dom.Text(doc.ElementByID("brand")))
	assert.True(t, dom.HasClass(doc.ElementByID("lang-en"), chrome.ClassLangSelected))
	assert.True(t, dom.HasClass(doc.ElementByID("lang-el"), chrome.ClassLangUnselected))
	assert.Contains(t, dom.InnerHTML(doc.ElementByID("menu-container")), "Tzatziki")
	assert.Equal(t, "en", storedLanguage(t, cfg))

	// a later boot requests the stored language
	require.NoError(t, run(ctx, cfg, "", discard))
	assert.Equal(t, "en", readOutput(t, cfg).Lang())
}

func TestRunFromContentServer(t *testing.T) {
	srv := httptest.NewServer(server.New(server.Config{
		StaticDir: "../../web",
		ShellPath: "../../web/index.html",
	}, services.NewFileContentService("../../web/i18n"), discard).Router())
	defer srv.Close()

	cfg := testConfig(t)
	cfg.Render.BaseURL = srv.URL + "/"
	cfg.Render.ContentDir = t.TempDir()

	require.NoError(t, run(context.Background(), cfg, "en", discard))
	doc := readOutput(t, cfg)
	assert.Equal(t, "en", doc.Lang())
	assert.Equal(t, "Taverna O Giorgos", dom.Text(doc.ElementByID("brand")))
}

func TestRunFailures(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig(t)
	assert.Error(t, run(ctx, cfg, "fr", discard))

	cfg = testConfig(t)
	cfg.Render.ContentDir = t.TempDir()
	assert.Error(t, run(ctx, cfg, "", discard), "no content for either language")
	_, err := os.Stat(cfg.Render.Output)
	assert.True(t, os.IsNotExist(err))

	cfg = testConfig(t)
	cfg.Render.Shell = filepath.Join(t.TempDir(), "missing.html")
	assert.Error(t, run(ctx, cfg, "", discard))
}
