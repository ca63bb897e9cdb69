package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"os"

	"tavernasite/internal/core"
	"tavernasite/internal/dom"
	"tavernasite/internal/middleware"
)

// HTMLHandler serves the page shell with <html lang> set to the detected
// language and the <title> and description taken from that language's
// dictionary. Body text stays as shipped; the page localizes itself.
type HTMLHandler struct {
	ShellPath  string
	Translator core.DictionarySource
	Logger     *slog.Logger
}

func NewHTMLHandler(shellPath string, t core.DictionarySource, logger *slog.Logger) *HTMLHandler {
	return &HTMLHandler{ShellPath: shellPath, Translator: t, Logger: logger}
}

func (h *HTMLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LanguageFromContext(r.Context())

	f, err := os.Open(h.ShellPath)
	if err != nil {
		h.Logger.Error("page shell not found", slog.String("path", h.ShellPath), slog.Any("error", err))
		http.Error(w, "index.html not found", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		h.Logger.Error("page shell unreadable", slog.Any("error", err))
		http.Error(w, "index.html unreadable", http.StatusInternalServerError)
		return
	}
	doc.SetLang(lang)
	h.localizeHead(r, doc, lang)

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		h.Logger.Error("failed to render page shell", slog.Any("error", err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", lang)
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(buf.Bytes())
}

// localizeHead sets the title and description. A missing dictionary leaves
// the shell's own head in place.
func (h *HTMLHandler) localizeHead(r *http.Request, doc *dom.Document, lang string) {
	if h.Translator == nil {
		return
	}
	d, err := h.Translator.Fetch(r.Context(), lang)
	if err != nil {
		h.Logger.Warn("no dictionary for page head", slog.String("lang", lang), slog.Any("error", err))
		return
	}
	if d.Brand != "" {
		doc.SetTitle(d.Brand)
	}
	if d.Hero.Subtitle != "" {
		doc.SetMeta("description", d.Hero.Subtitle)
	}
}
