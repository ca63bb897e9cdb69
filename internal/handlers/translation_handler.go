package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tavernasite/internal/core"
)

// ContentService is the read side of the per-language content documents.
type ContentService interface {
	core.DictionarySource
	Raw(ctx context.Context, lang string) ([]byte, error)
}

// ContentHandler serves GET /i18n/{lang}.json. Responses are never cached so
// content edits show up on the next load.
type ContentHandler struct {
	Content ContentService
	Logger  *slog.Logger
}

func NewContentHandler(c ContentService, logger *slog.Logger) *ContentHandler {
	return &ContentHandler{Content: c, Logger: logger}
}

func (h *ContentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")

	content, err := h.Content.Raw(r.Context(), lang)
	switch {
	case errors.Is(err, core.ErrUnsupportedLanguage), errors.Is(err, core.ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		h.Logger.Error("content document unavailable", slog.String("lang", lang), slog.Any("error", err))
		http.Error(w, "content unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(content)
}

// TranslationHandler serves GET /api/translations?lang=xx as the decoded
// dictionary, falling back to the default language.
type TranslationHandler struct {
	Translator core.DictionarySource
	Logger     *slog.Logger
}

func NewTranslationHandler(t core.DictionarySource, logger *slog.Logger) *TranslationHandler {
	return &TranslationHandler{
		Translator: t,
		Logger:     logger,
	}
}

func (h *TranslationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		lang = core.DefaultLanguage
	}

	translations, err := h.Translator.Fetch(r.Context(), lang)
	if err != nil {
		h.Logger.Warn("translations unavailable, using default",
			slog.String("lang", lang), slog.Any("error", err))
		translations, err = h.Translator.Fetch(r.Context(), core.DefaultLanguage)
	}
	if err != nil {
		h.Logger.Error("default translations unavailable", slog.Any("error", err))
		http.Error(w, "translations unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(translations); err != nil {
		h.Logger.Error("failed to encode translations", slog.Any("error", err))
	}
}
