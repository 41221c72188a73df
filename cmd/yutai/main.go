package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"yutai/internal/amqp"
	"yutai/internal/cache"
	"yutai/internal/catalog"
	gsheet "yutai/internal/catalog/google"
	"yutai/internal/catalog/httpsource"
	mem "yutai/internal/catalog/memory"
	"yutai/internal/config"
	apphttp "yutai/internal/http"
	"yutai/internal/log"
	"yutai/internal/services"
	"yutai/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := log.New(log.Config{
		Level:     slog.LevelInfo,
		Component: log.ComponentApp,
	})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	// Choose the catalog origin.
	var source catalog.RecordSource
	switch cfg.DataBackend {
	case "sheets":
		cli, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err, "backend", cfg.DataBackend)
			os.Exit(1)
		}
		source = cli
	case "http":
		source = httpsource.New(cfg.SourceURL)
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			logger.Error("Failed to initialize SQLite repository", "error", err, "db_path", cfg.SQLiteDBPath)
			os.Exit(1)
		}
		defer repo.Close()
		source = repo
	default:
		store, err := mem.NewFromFile(cfg.SeedFile)
		if err != nil {
			logger.Error("Failed to load seed file", "error", err, "path", cfg.SeedFile)
			os.Exit(1)
		}
		source = store
	}
	logger.Info("Initialized catalog origin", "backend", cfg.DataBackend)

	// AMQP is optional for the server; without it refreshes stay local.
	var publisher services.RefreshPublisher
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("AMQP unavailable, refresh messages disabled", "error", err)
	} else {
		defer amqpClient.Close()
		publisher = amqpClient
	}

	catalogSvc := services.NewCatalogService(source, publisher, cfg.CacheSize, cfg.CacheTTL)

	cacheManager := cache.NewManager()
	catalogSvc.RegisterCaches(cacheManager)
	cacheManager.StartCleanup(cfg.CacheCleanup)
	defer cacheManager.Stop()

	// Load the first snapshot. A failed initial load is fatal: serving an
	// empty catalog silently is worse than failing fast.
	loadCtx, loadCancel := context.WithTimeout(context.Background(), time.Minute)
	if err := catalogSvc.Reload(loadCtx); err != nil {
		loadCancel()
		logger.Error("Initial catalog load failed", "error", err)
		os.Exit(1)
	}
	loadCancel()

	srv := apphttp.NewServer(":"+cfg.Port, catalogSvc)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting yutai server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.RefreshInterval)
		defer ticker.Stop()

		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if err := catalogSvc.Reload(gctx); err != nil {
					logger.Error("Periodic catalog reload failed", "error", err)
				}
			}
		}
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		logger.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
