package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"lastmile/cmd"
	httpin "lastmile/internal/adapters/in/http"
	"lastmile/internal/adapters/out/postgres"
	"lastmile/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(cfg *cmd.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			return serve(c.Context(), *cfg)
		},
	}
}

// serve migrates the schema, then runs the HTTP server and the jobs until ctx
// is cancelled.
func serve(ctx context.Context, cfg cmd.Config) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer closeDB(db, logger)
	if err := postgres.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry, err := metrics.NewRegistry(promRegistry)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	app, err := cmd.NewCompositionRoot(cfg, db, registry, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to release adapters", "error", err)
		}
	}()

	e, err := httpin.NewRouter(app.CreateRouterConfig(promRegistry))
	if err != nil {
		return err
	}

	jm := app.CreateJobManager()
	if err := jm.StartAll(); err != nil {
		return err
	}
	defer jm.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", "port", cfg.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
