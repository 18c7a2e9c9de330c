package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/bryanwahyu/earnings-analyst/internal/config"
	"github.com/bryanwahyu/earnings-analyst/internal/infra/httpserver"
	"github.com/bryanwahyu/earnings-analyst/internal/infra/metrics"
	"github.com/bryanwahyu/earnings-analyst/internal/middleware"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			return serve(cmd.Context(), cfg, opts.offline)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "listen port (default server.port from config)")
	return cmd
}

func serve(parent context.Context, cfg *config.Config, offline bool) error {
	logger := newLogger(os.Stderr, cfg.Log.Level, "json")

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	a, err := newApp(ctx, cfg, logger, offline, m)
	if err != nil {
		return err
	}
	defer a.Close()

	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit.PerSecond, cfg.Server.RateLimit.Burst)
	go limiter.RunCleanup(ctx, 5*time.Minute)

	handler := httpserver.NewRouter(httpserver.Deps{
		Queries:        a.router,
		Library:        a.library,
		Dataset:        a.dataset,
		Logger:         logger,
		Metrics:        m,
		Gatherer:       reg,
		Checks:         a.checks,
		APIKeys:        cfg.Server.APIKeys,
		Limiter:        limiter,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.OpenAI.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// graceful shutdown
	logger.Info("shutting down server...")
	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	return nil
}
