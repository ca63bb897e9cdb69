package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tavernasite/internal/config"
	"tavernasite/internal/server"
	"tavernasite/internal/services"
)

var (
	cfgFile string
	port    int
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Serve the restaurant site and its per-language content",
	Long: `Serves the page shell, the static assets and the content documents
under /i18n/<lang>.json. Content files are read on every request, so edits
are visible without a restart.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = port
		}

		logger := cfg.Log.NewLogger(os.Stderr)
		slog.SetDefault(logger)

		content := services.NewFileContentService(cfg.Server.ContentDir)
		langs, err := content.Languages()
		if err != nil {
			return err
		}
		logger.Info("content directory ready",
			slog.String("dir", cfg.Server.ContentDir),
			slog.Any("languages", langs),
		)

		srv := server.New(server.Config{
			Port:      cfg.Server.Port,
			StaticDir: cfg.Server.StaticDir,
			ShellPath: cfg.Server.Shell,
		}, content, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-errCh
	},
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "site.yml", "config file path")
	rootCmd.Flags().IntVar(&port, "port", 8080, "port to listen on (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
