package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tavernasite/internal/chrome"
	"tavernasite/internal/config"
	"tavernasite/internal/core"
	"tavernasite/internal/dom"
	"tavernasite/internal/render"
	"tavernasite/internal/services"
	"tavernasite/internal/site"
	"tavernasite/internal/store/kvdb"
)

var (
	cfgFile  string
	langFlag string
	output   string
	baseURL  string
)

var rootCmd = &cobra.Command{
	Use:   "render",
	Short: "Boot the page headless and write the localized HTML",
	Long: `Loads the page shell, boots it the way a visitor's browser would and
writes the result. The selected language is remembered in a local state file
between runs. With --lang the language button is clicked after boot.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("output") {
			cfg.Render.Output = output
		}
		if cmd.Flags().Changed("base-url") {
			cfg.Render.BaseURL = baseURL
		}

		logger := cfg.Log.NewLogger(os.Stderr)
		slog.SetDefault(logger)
		return run(cmd.Context(), cfg, langFlag, logger)
	},
}

// run boots the page from cfg.Render, switches to lang when set and writes
// the result to cfg.Render.Output.
func run(ctx context.Context, cfg *config.Config, lang string, logger *slog.Logger) error {
	style, err := render.ParseMenuStyle(cfg.Render.MenuStyle)
	if err != nil {
		return err
	}

	source, err := newSource(cfg.Render)
	if err != nil {
		return err
	}

	storage, err := kvdb.Open(cfg.Render.StatePath)
	if err != nil {
		return err
	}
	defer storage.Close()

	f, err := os.Open(cfg.Render.Shell)
	if err != nil {
		return fmt.Errorf("opening page shell: %w", err)
	}
	doc, err := dom.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("parsing page shell: %w", err)
	}

	page := site.NewPage(doc, source, storage,
		site.WithMenuStyle(style),
		site.WithFallbackLanguage(cfg.Render.Fallback),
		site.WithLogger(logger),
		site.WithViewport(&chrome.StaticViewport{}),
	)

	ctx, cancel := context.WithTimeout(ctx, cfg.Render.Timeout)
	defer cancel()

	if err := page.Boot(ctx); err != nil {
		return err
	}

	if lang != "" {
		code, ok := core.ParseLanguage(lang)
		if !ok {
			return fmt.Errorf("unsupported language %q", lang)
		}
		btn := doc.ElementByID(chrome.LanguageButtonID(code))
		if btn == nil {
			return fmt.Errorf("page shell has no button for %q", code)
		}
		doc.Dispatch(ctx, btn, "click")
		if got := page.Language(); got != code {
			return fmt.Errorf("switching to %q failed, page is still %q", code, got)
		}
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Render.Output), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	out, err := os.Create(cfg.Render.Output)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	doc.Lock()
	err = doc.Render(out)
	doc.Unlock()
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	logger.Info("page rendered",
		slog.String("lang", page.Language()),
		slog.String("output", cfg.Render.Output),
	)
	return nil
}

func newSource(cfg config.RenderConfig) (core.DictionarySource, error) {
	if cfg.BaseURL != "" {
		return services.NewHTTPSource(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout})
	}
	return services.NewFileContentService(cfg.ContentDir), nil
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "site.yml", "config file path")
	rootCmd.Flags().StringVar(&langFlag, "lang", "", "language to switch to after boot (el, en)")
	rootCmd.Flags().StringVarP(&output, "output", "o", "dist/index.html", "output file")
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "content server URL; empty reads the content directory")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
