// Package main is the entry point for the Home Ledger API server.
package main

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

	"github.com/joho/godotenv"

	"github.com/homeledger/backend/config"
	"github.com/homeledger/backend/internal/application/adapter"
	infracache "github.com/homeledger/backend/internal/infra/cache"
	"github.com/homeledger/backend/internal/infra/db"
	"github.com/homeledger/backend/internal/infra/dependency"
	"github.com/homeledger/backend/internal/integration/adapters"
	"github.com/homeledger/backend/internal/integration/cache"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Server.LogLevel,
	}))
	slog.SetDefault(logger)

	slog.Info("Starting Home Ledger API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// The ledger cannot run without its database
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if cfg.Database.AutoMigrate {
		if err := db.RunMigrations(cfg.Database.URL); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
	}

	// Reports are served uncached when Redis is unavailable
	var reportCache adapter.ReportCache
	redisClient, err := infracache.NewRedisClient(&cfg.Redis)
	if err != nil {
		slog.Warn("Redis connection failed, annual reports will not be cached", "error", err)
		reportCache = cache.NewNoopReportCache()
	} else {
		reportCache = cache.NewRedisReportCache(redisClient, cfg.Redis.ReportCacheTTL)
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("Failed to close redis connection", "error", err)
			}
		}()
	}

	injector := dependency.NewInjector(cfg, database.DB(), dependency.Options{
		Cache:         reportCache,
		Clock:         adapters.NewSystemClock(),
		BcryptCost:    adapters.DefaultBcryptCost,
		DBHealthCheck: database.HealthCheck,
	})
	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited properly")
}
