package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gigwatch/event-listings-service/internal/adapter/feed"
	"github.com/gigwatch/event-listings-service/internal/adapter/gazetteer"
	httpadapter "github.com/gigwatch/event-listings-service/internal/adapter/http"
	"github.com/gigwatch/event-listings-service/internal/config"
	"github.com/gigwatch/event-listings-service/internal/observability"
	"github.com/gigwatch/event-listings-service/internal/pipeline"
	"github.com/gigwatch/event-listings-service/internal/snapshot"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	regions, err := cfg.Regions()
	if err != nil {
		logger.Error("failed to load regions", "error", err)
		os.Exit(1)
	}

	gz, err := gazetteer.Load(cfg.GazetteerPath, logger)
	if err != nil {
		logger.Error("failed to load gazetteer", "error", err, "path", cfg.GazetteerPath)
		os.Exit(1)
	}

	client := feed.NewClient(cfg.FeedBaseURL, cfg.FetchTimeout, logger)
	store := snapshot.NewStore()

	refresher := pipeline.New(client, gz, store, regions, pipeline.Options{
		Interval:     cfg.RefreshInterval,
		FetchTimeout: cfg.FetchTimeout,
		SnapshotPath: cfg.SnapshotPath,
	}, logger, metrics)

	if err := refresher.Restore(); err != nil {
		logger.Warn("could not restore persisted snapshot", "error", err)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, store, regions, refresher, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start refresh loop.
	go func() {
		if err := refresher.Run(ctx); err != nil {
			logger.Error("refresh loop error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
