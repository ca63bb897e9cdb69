// Package server hosts the site: the page shell, the per-language content
// documents and the static assets.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tavernasite/internal/handlers"
	"tavernasite/internal/middleware"
)

type Config struct {
	Port      int
	StaticDir string
	ShellPath string
}

type Server struct {
	cfg        Config
	content    handlers.ContentService
	logger     *slog.Logger
	router     chi.Router
	httpServer *http.Server
}

func New(cfg Config, content handlers.ContentService, logger *slog.Logger) *Server {
	s := &Server{cfg: cfg, content: content, logger: logger}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.LanguageDetectorMiddleware)
		r.Use(middleware.RequestLogger(s.logger))

		r.Get("/i18n/{lang}.json", handlers.NewContentHandler(s.content, s.logger).ServeHTTP)
		r.Get("/api/translations", handlers.NewTranslationHandler(s.content, s.logger).ServeHTTP)

		page := handlers.NewHTMLHandler(s.cfg.ShellPath, s.content, s.logger)
		r.Get("/", page.ServeHTTP)
		r.Get("/index.html", page.ServeHTTP)
		r.Get("/el/", page.ServeHTTP)
		r.Get("/en/", page.ServeHTTP)

		r.NotFound(s.serveStatic)
	})

	return r
}

// serveStatic serves files under StaticDir. Directories and missing files
// are 404s.
func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	if s.cfg.StaticDir == "" || strings.Contains(r.URL.Path, "..") {
		http.NotFound(w, r)
		return
	}
	fPath := filepath.Join(s.cfg.StaticDir, filepath.FromSlash(filepath.Clean("/"+r.URL.Path)))
	info, err := os.Stat(fPath)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, fPath)
}

// Router returns the handler tree, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start listens until the server is shut down. It returns nil after a
// graceful Shutdown, including one that happened before Start.
func (s *Server) Start() error {
	s.logger.Info("server listening", slog.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
