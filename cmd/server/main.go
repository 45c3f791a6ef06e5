package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tareas/internal/api"
	"tareas/internal/config"
	"tareas/internal/db"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		port            string
		databaseURL     string
		wasmDir         string
		shutdownTimeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "tareas-server",
		Short: "Serve the tareas REST API and the browser client",
		Long: `tareas-server persists tasks and serves them over /api/tareas.

CONFIGURATION:
  Priority order: command-line flags > environment (.env is read first) > defaults

  PORT              HTTP port (default: 3000)
  DATABASE_URL      postgres:// URL, or a SQLite file path (default: data/tareas.db)
  WASM_DIR          static assets served at / (default: web)
  SHUTDOWN_TIMEOUT  grace period for in-flight requests (default: 10s)`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := &config.Overrides{}
			flags := cmd.Flags()
			if flags.Changed("port") {
				o.Port = &port
			}
			if flags.Changed("db") {
				o.DatabaseURL = &databaseURL
			}
			if flags.Changed("wasm-dir") {
				o.WasmDir = &wasmDir
			}
			if flags.Changed("shutdown-timeout") {
				o.ShutdownTimeout = &shutdownTimeout
			}
			cfg, err := config.LoadWithOverrides(o)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "HTTP port")
	cmd.Flags().StringVar(&databaseURL, "db", "", "postgres URL or SQLite file path")
	cmd.Flags().StringVar(&wasmDir, "wasm-dir", "", "directory served at /")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 0, "grace period for in-flight requests")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	tasks, closeStore, err := db.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer closeStore()

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: api.New(tasks, cfg.Server.WasmDir),
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("tareas listening on %s", cfg.Addr())
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Printf("tareas: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}
