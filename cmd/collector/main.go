package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"yt-tracker/internal/adapters/backend"
	"yt-tracker/internal/adapters/youtube"
	"yt-tracker/internal/application/collector"
	"yt-tracker/internal/config"
	"yt-tracker/internal/logger"
)

// runTimeout bounds a whole run, table calls included. The API fetch has
// its own shorter timeout.
const runTimeout = 2 * time.Minute

func main() {
	cfg := config.Load()
	log := logger.New(cfg).With("run_id", uuid.NewString())

	if err := cfg.ValidateCollector(); err != nil {
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("collector failed", "error", err)
		fmt.Fprintln(os.Stderr, "FATAL:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	provider, closeFn, err := backend.Open(ctx, cfg, false, log)
	if err != nil {
		return err
	}
	defer closeFn()

	fetcher, err := youtube.NewClient(ctx, cfg.APIBaseURL, cfg.APIKey, cfg.FetchTimeout, log)
	if err != nil {
		return err
	}

	svc := collector.NewService(fetcher, provider, collector.Options{
		TableID:      cfg.TableID,
		ChannelID:    cfg.ChannelID,
		HeaderPolicy: cfg.HeaderPolicy,
	}, log)

	snap, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Eklendi:", snap.Cells())
	return nil
}
