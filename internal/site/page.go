// Package site owns the page state: the current dictionary and language,
// the document they are rendered into, and the load/boot sequence that keeps
// the three consistent.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tavernasite/internal/chrome"
	"tavernasite/internal/core"
	"tavernasite/internal/dom"
	"tavernasite/internal/render"
)

var tracer = otel.GetTracerProvider().Tracer("tavernasite/internal/site")

// Page renders dictionaries into a document.
//
// Concurrent LoadLanguage calls are not cancelled or ordered: whichever fetch
// resolves last is the one applied, which may not be the language requested
// last. Each apply (state swap plus every render step) is atomic.
type Page struct {
	doc     *dom.Document
	source  core.DictionarySource
	storage core.Storage

	viewport  chrome.Viewport
	collapser chrome.Collapser
	menuStyle render.MenuStyle
	fallback  string
	langs     []string
	now       func() time.Time
	logger    *slog.Logger

	mu   sync.RWMutex
	dict *core.Dictionary
	lang string
}

type Option func(*Page)

func WithViewport(v chrome.Viewport) Option { return func(p *Page) { p.viewport = v } }

func WithCollapser(c chrome.Collapser) Option { return func(p *Page) { p.collapser = c } }

func WithMenuStyle(s render.MenuStyle) Option { return func(p *Page) { p.menuStyle = s } }

// WithClock overrides the time source used for the footer year.
func WithClock(now func() time.Time) Option { return func(p *Page) { p.now = now } }

func WithLogger(l *slog.Logger) Option { return func(p *Page) { p.logger = l } }

// WithFallbackLanguage sets the language used when nothing is stored and
// when the stored one fails to load.
func WithFallbackLanguage(lang string) Option { return func(p *Page) { p.fallback = lang } }

func NewPage(doc *dom.Document, source core.DictionarySource, storage core.Storage, opts ...Option) *Page {
	p := &Page{
		doc:       doc,
		source:    source,
		storage:   storage,
		viewport:  &chrome.StaticViewport{},
		collapser: chrome.ClassCollapser{},
		menuStyle: render.MenuCarousel,
		fallback:  core.DefaultLanguage,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, tag := range core.SupportedLanguages {
		base, _ := tag.Base()
		p.langs = append(p.langs, base.String())
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Page) Document() *dom.Document { return p.doc }

// Dictionary returns the dictionary currently applied, nil before the first
// successful load. The value must be treated as read-only.
func (p *Page) Dictionary() *core.Dictionary {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.dict
}

// Language returns the most recently applied language.
func (p *Page) Language() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lang
}

// LoadLanguage fetches the content document for lang and, on success,
// replaces the dictionary, persists lang, sets the document language and
// re-renders every section. Failures are returned as *core.LoadError and
// leave the page untouched.
func (p *Page) LoadLanguage(ctx context.Context, lang string) error {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "LoadLanguage", trace.WithAttributes(attribute.String("lang", lang)))
	defer span.End()

	err := p.loadLanguage(ctx, lang)
	result := "ok"
	if err != nil {
		result = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	label, ok := core.ParseLanguage(lang)
	if !ok {
		label = "unsupported"
	}
	languageLoads.WithLabelValues(label, result).Inc()
	return err
}

func (p *Page) loadLanguage(ctx context.Context, lang string) error {
	code, ok := core.ParseLanguage(lang)
	if !ok {
		return &core.LoadError{Lang: lang, Err: core.ErrUnsupportedLanguage}
	}

	dict, err := p.source.Fetch(ctx, code)
	if err != nil {
		return err
	}

	p.apply(ctx, code, dict)
	p.logger.Info("language loaded", slog.String("lang", code))
	return nil
}

func (p *Page) apply(ctx context.Context, lang string, dict *core.Dictionary) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.dict = dict
	p.lang = lang

	if err := p.storage.SetItem(ctx, core.LanguageKey, lang); err != nil {
		p.logger.Warn("failed to persist language", slog.String("lang", lang), slog.Any("error", err))
	}

	p.doc.Lock()
	defer p.doc.Unlock()

	p.doc.SetLang(lang)
	render.ApplyTranslations(p.doc, dict, p.now())
	if err := render.RenderMenu(p.doc, dict, p.menuStyle); err != nil {
		p.logger.Error("failed to render menu", slog.Any("error", err))
	}
	if err := render.RenderPhotos(p.doc, dict); err != nil {
		p.logger.Error("failed to render photos", slog.Any("error", err))
	}
	if err := render.RenderEvents(p.doc, dict); err != nil {
		p.logger.Error("failed to render events", slog.Any("error", err))
	}
	chrome.SetActiveLanguage(p.doc, p.langs, lang)
}

// Boot wires the page helpers and the language buttons, then loads the
// stored language. If that fails it retries once with the fallback
// language; a second failure is logged and returned.
func (p *Page) Boot(ctx context.Context) error {
	chrome.SetupBackToTop(p.doc, p.viewport)
	chrome.SetupMobileNavAutoClose(p.doc, p.viewport, p.collapser)
	chrome.SetupLanguageButtons(p.doc, p.langs, func(ctx context.Context, lang string) {
		if err := p.LoadLanguage(ctx, lang); err != nil {
			p.logger.Error("language switch failed", slog.String("lang", lang), slog.Any("error", err))
		}
	})

	initial := p.initialLanguage(ctx)
	err := p.LoadLanguage(ctx, initial)
	if err == nil {
		return nil
	}
	p.logger.Warn("initial language failed, falling back",
		slog.String("lang", initial),
		slog.String("fallback", p.fallback),
		slog.Any("error", err),
	)

	if err := p.LoadLanguage(ctx, p.fallback); err != nil {
		p.logger.Error("fallback language failed", slog.String("lang", p.fallback), slog.Any("error", err))
		return fmt.Errorf("boot: %w", err)
	}
	return nil
}

func (p *Page) initialLanguage(ctx context.Context) string {
	lang, ok, err := p.storage.GetItem(ctx, core.LanguageKey)
	if err != nil {
		p.logger.Warn("failed to read stored language", slog.Any("error", err))
		return p.fallback
	}
	if !ok || lang == "" {
		return p.fallback
	}
	return lang
}
