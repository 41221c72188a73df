package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"yutai/internal/amqp"
	"yutai/internal/catalog"
	gsheet "yutai/internal/catalog/google"
	"yutai/internal/catalog/httpsource"
	"yutai/internal/config"
	"yutai/internal/log"
	"yutai/internal/storage"
	"yutai/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := log.New(log.Config{
		Level:     slog.LevelInfo,
		Component: log.ComponentWorker,
	})
	log.SetDefault(logger)

	logger.Info("Starting yutai-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// The worker always writes to the local SQLite snapshot.
	sqliteRepo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "db_path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer sqliteRepo.Close()

	// The origin is where fresh catalog data comes from.
	var origin catalog.RecordSource
	switch {
	case cfg.GoogleSpreadsheetID != "":
		cli, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		origin = cli
		logger.Info("Google Sheets origin initialized", "sheet", cfg.GoogleSheetName)
	case cfg.SourceURL != "":
		origin = httpsource.New(cfg.SourceURL)
		logger.Info("HTTP origin initialized", "url", cfg.SourceURL)
	default:
		logger.Error("No catalog origin configured, set GOOGLE_SPREADSHEET_ID or SOURCE_URL")
		os.Exit(1)
	}

	// AMQP client for consuming refresh requests
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refreshWorker := worker.NewRefreshWorker(origin, sqliteRepo, cfg.MaxSnapshotAge)

	// On startup, refresh if the stored snapshot is missing or stale.
	logger.Info("Performing startup snapshot check")
	if err := refreshWorker.StartupCheck(ctx); err != nil {
		logger.Error("Startup snapshot check failed", "error", err)
		// Don't exit - refresh messages and the periodic timer can still recover
	}

	// Consume refresh requests from the broker.
	go func() {
		handler := func(msg *amqp.CatalogRefreshMessage) error {
			return refreshWorker.HandleRefreshMessage(ctx, msg)
		}
		if err := amqpClient.ConsumeCatalogRefresh(ctx, handler); err != nil {
			if err != context.Canceled {
				logger.Error("Message consumption failed", "error", err)
			}
			cancel()
		}
	}()

	// Periodic refresh so a quiet broker cannot leave the snapshot stale.
	ticker := time.NewTicker(cfg.RefreshInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := refreshWorker.Refresh(ctx); err != nil {
					logger.Error("Periodic refresh failed", "error", err)
				}
			}
		}
	}()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()
	logger.Info("Worker shutdown complete")
}
