package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tavernasite/internal/core"
)

var tracer = otel.GetTracerProvider().Tracer("tavernasite/internal/services")

// maxContentSize bounds the content document body.
const maxContentSize = 4 << 20

// HTTPSource fetches i18n/<lang>.json relative to a base URL, bypassing
// every cache on the way.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

func NewHTTPSource(baseURL string, client *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{base: u, client: client}, nil
}

// ContentURL returns the content document URL for lang.
func (s *HTTPSource) ContentURL(lang string) string {
	return s.base.ResolveReference(&url.URL{Path: "i18n/" + url.PathEscape(lang) + ".json"}).String()
}

func (s *HTTPSource) Fetch(ctx context.Context, lang string) (*core.Dictionary, error) {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "HTTPSource.Fetch", trace.WithAttributes(attribute.String("lang", lang)))
	defer span.End()

	fail := func(err *core.LoadError) (*core.Dictionary, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.ContentURL(lang), nil)
	if err != nil {
		return fail(&core.LoadError{Lang: lang, Err: err})
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := s.client.Do(req)
	if err != nil {
		return fail(&core.LoadError{Lang: lang, Err: err})
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fail(&core.LoadError{Lang: lang, Status: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxContentSize+1))
	if err != nil {
		return fail(&core.LoadError{Lang: lang, Err: fmt.Errorf("read content: %w", err)})
	}
	if len(body) > maxContentSize {
		return fail(&core.LoadError{Lang: lang, Err: fmt.Errorf("content exceeds %d bytes", maxContentSize)})
	}

	var d core.Dictionary
	if err := json.Unmarshal(body, &d); err != nil {
		return fail(&core.LoadError{Lang: lang, Err: fmt.Errorf("decode content: %w", err)})
	}
	return &d, nil
}
