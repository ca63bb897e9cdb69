package middleware

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"tavernasite/internal/core"
)

type LanguageKey string

const CtxLanguageKey LanguageKey = "language"

// The first supported language is the matcher's fallback.
var matcher = language.NewMatcher(core.SupportedLanguages)

// LanguageFromContext returns the language set by LanguageDetectorMiddleware,
// or the default language.
func LanguageFromContext(ctx context.Context) string {
	if lang, ok := ctx.Value(CtxLanguageKey).(string); ok && lang != "" {
		return lang
	}
	return core.DefaultLanguage
}

// MatchLanguage picks the best supported language for an Accept-Language
// header value.
func MatchLanguage(accept string) string {
	tag, _ := language.MatchStrings(matcher, accept)
	base, _ := tag.Base()
	if lang, ok := core.ParseLanguage(base.String()); ok {
		return lang
	}
	return core.DefaultLanguage
}

// LanguageDetectorMiddleware determines the page language and stores it in
// the request context.
// Priority: URL prefix (/el/, /en/) -> site_lang cookie -> Accept-Language
// -> default. On the bare root a non-default language redirects to its
// prefix so the URL reflects the content.
func LanguageDetectorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// 1. URL prefix
		if lang, ok := languageFromPath(path); ok {
			ctx := context.WithValue(r.Context(), CtxLanguageKey, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		// 2. Stored preference, then browser preference
		lang := core.DefaultLanguage
		if cookie, err := r.Cookie(core.LanguageKey); err == nil {
			if l, ok := core.ParseLanguage(cookie.Value); ok {
				lang = l
			}
		} else if accept := r.Header.Get("Accept-Language"); accept != "" {
			lang = MatchLanguage(accept)
		}

		if (path == "/" || path == "/index.html") && lang != core.DefaultLanguage {
			http.Redirect(w, r, "/"+lang+"/", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), CtxLanguageKey, lang)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func languageFromPath(path string) (string, bool) {
	seg, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	if len(seg) != 2 {
		return "", false
	}
	return core.ParseLanguage(seg)
}
