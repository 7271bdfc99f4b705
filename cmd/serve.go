package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/autoviz/internal/logging"
	"github.com/KaramelBytes/autoviz/internal/web"
)

var serveListenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the AutoViz web UI",
	Long: `Serve starts an HTTP server with a browser UI: upload a CSV or Excel
file, view the generated charts, and download them as a ZIP archive or
a self-contained HTML report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveListenAddr != "" {
			cfg.ListenAddr = serveListenAddr
		}
		logging.Setup(cfg.LogLevel, cfg.LogFormat)

		srv := web.NewServer(cfg)

		errCh := make(chan error, 1)
		go func() {
			slog.Info("server starting", "addr", cfg.ListenAddr)
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return fmt.Errorf("server error: %w", err)
		case sig := <-quit:
			slog.Info("shutting down", "signal", sig.String())
		}

		ctx, cancel := context.WithTimeout(context.Background(),
			time.Duration(cfg.ShutdownTimeoutSec)*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		slog.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListenAddr, "addr", "", "listen address (overrides config, default :8080)")
	rootCmd.AddCommand(serveCmd)
}
