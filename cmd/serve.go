package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iksnae/cursor-threads/internal"
	"github.com/iksnae/cursor-threads/internal/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	Long: `Serve the conversation API over HTTP for local browsing UIs.

Every request reconstructs from storage; nothing is cached between
requests, so the server always reflects the current on-disk state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine()
		if err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			cfg, err := internal.LoadConfig()
			if err != nil {
				return err
			}
			addr = cfg.ListenAddr
		}

		server := &http.Server{
			Addr:         addr,
			Handler:      httpapi.NewRouter(engine),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
		}

		go func() {
			internal.LogInfo("serving API on http://%s", addr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				internal.LogError("server failed: %v", err)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		internal.LogInfo("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from CURSOR_THREADS_LISTEN_ADDR or 127.0.0.1:8732)")
}
