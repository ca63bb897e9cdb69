package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tavernasite/internal/core"
)

func contentFS() fstest.MapFS {
	return fstest.MapFS{
		"el.json":   {Data: []byte(`{"brand":"Ταβέρνα"}`)},
		"en.json":   {Data: []byte(`{"brand":"Taverna","photos":{"items":[{"src":"a.jpg"}]}}`)},
		"sv.json":   {Data: []byte(`{"brand":"Krog"}`)},
		"notes.txt": {Data: []byte(`ignored`)},
		"drafts/x":  {Data: []byte(`ignored`)},
	}
}

func TestFileContentServiceLanguages(t *testing.T) {
	langs, err := NewFSContentService(contentFS()).Languages()
	require.NoError(t, err)
	assert.Equal(t, []string{"el", "en"}, langs)
}

func TestFileContentServiceFetch(t *testing.T) {
	s := NewFSContentService(contentFS())

	d, err := s.Fetch(context.Background(), "en")
	require.NoError(t, err)
	assert.Equal(t, "Taverna", d.Brand)
	require.Len(t, d.Photos.Items, 1)
	assert.Equal(t, "a.jpg", d.Photos.Items[0].Src)
}

func TestFileContentServiceReadsFresh(t *testing.T) {
	fsys := contentFS()
	s := NewFSContentService(fsys)

	d, err := s.Fetch(context.Background(), "el")
	require.NoError(t, err)
	assert.Equal(t, "Ταβέρνα", d.Brand)

	fsys["el.json"] = &fstest.MapFile{Data: []byte(`{"brand":"Νέα Ταβέρνα"}`)}
	d, err = s.Fetch(context.Background(), "el")
	require.NoError(t, err)
	assert.Equal(t, "Νέα Ταβέρνα", d.Brand)
}

func TestFileContentServiceErrors(t *testing.T) {
	fsys := contentFS()
	fsys["el.json"] = &fstest.MapFile{Data: []byte(`{"brand":`)}
	s := NewFSContentService(fsys)
	ctx := context.Background()

	_, err := s.Raw(ctx, "el")
	var le *core.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "el", le.Lang)

	_, err = s.Raw(ctx, "sv")
	assert.ErrorIs(t, err, core.ErrUnsupportedLanguage)

	_, err = s.Raw(ctx, "../secret")
	assert.ErrorIs(t, err, core.ErrUnsupportedLanguage)

	delete(fsys, "en.json")
	_, err = s.Fetch(ctx, "en")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestHTTPSourceFetch(t *testing.T) {
	var gotPath, gotCache, gotPragma string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCache = r.Header.Get("Cache-Control")
		gotPragma = r.Header.Get("Pragma")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"brand":"Taverna","footer":{"rights":"© {year}"}}`))
	}))
	defer srv.Close()

	s, err := NewHTTPSource(srv.URL+"/site", srv.Client())
	require.NoError(t, err)

	d, err := s.Fetch(context.Background(), "en")
	require.NoError(t, err)
	assert.Equal(t, "Taverna", d.Brand)
	assert.Equal(t, "© {year}", d.Footer.Rights)
	assert.Equal(t, "/site/i18n/en.json", gotPath)
	assert.Contains(t, gotCache, "no-store")
	assert.Equal(t, "no-cache", gotPragma)
}

func TestHTTPSourceErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/i18n/el.json":
			http.Error(w, "gone", http.StatusNotFound)
		case "/i18n/en.json":
			_, _ = w.Write([]byte(`<html>not json</html>`))
		case "/trailing/i18n/en.json":
			_, _ = w.Write([]byte(`{"brand":"Taverna"}<html>502 Bad Gateway</html>`))
		case "/huge/i18n/en.json":
			_, _ = w.Write([]byte(`{"brand":"`))
			_, _ = w.Write(bytes.Repeat([]byte("a"), maxContentSize))
			_, _ = w.Write([]byte(`"}`))
		}
	}))
	defer srv.Close()

	s, err := NewHTTPSource(srv.URL, srv.Client())
	require.NoError(t, err)

	_, err = s.Fetch(context.Background(), "el")
	var le *core.LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, http.StatusNotFound, le.Status)

	_, err = s.Fetch(context.Background(), "en")
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 0, le.Status)
	assert.Error(t, le.Err)

	for _, base := range []string{"/trailing", "/huge"} {
		s, err := NewHTTPSource(srv.URL+base, srv.Client())
		require.NoError(t, err)

		d, err := s.Fetch(context.Background(), "en")
		assert.Nil(t, d, base)
		require.True(t, errors.As(err, &le), base)
		assert.Equal(t, "en", le.Lang, base)
		assert.Error(t, le.Err, base)
	}
}

func TestNewHTTPSourceRejectsRelative(t *testing.T) {
	_, err := NewHTTPSource("i18n", nil)
	assert.Error(t, err)
}
