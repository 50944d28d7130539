package main

import (
	"context"
	"errors"
	"fmt"
	netHttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"yt-tracker/internal/adapters/backend"
	"yt-tracker/internal/adapters/http"
	"yt-tracker/internal/adapters/ws/seriesws"
	"yt-tracker/internal/application/dashboard"
	"yt-tracker/internal/config"
	"yt-tracker/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg)

	if err := cfg.ValidateViewer(); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	provider, closeFn, err := backend.Open(ctx, cfg, true, log)
	if err != nil {
		log.Error("failed to open table backend", "error", err)
		os.Exit(1)
	}
	defer closeFn()

	metrics := http.NewViewerMetrics()
	dashboardService := dashboard.NewService(provider, cfg.TableID, metrics, log)

	router := http.NewRouter(cfg, &http.RouterDeps{
		Dashboard: http.NewDashboardHandler(dashboardService, metrics, log),
		WsSeries:  seriesws.NewHandler(dashboardService, cfg.AllowedOrigins, log),
		Metrics:   metrics,
		Log:       log,
	})

	srv := http.NewServer(router, cfg.Address)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http: starting viewer", "address", cfg.Address, "backend", cfg.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, netHttp.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("http: viewer error", "error", err)
	}

	log.Info("viewer stopped")
}
