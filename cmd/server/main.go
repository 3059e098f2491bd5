package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"projects_backend/internal/app/di"
	"projects_backend/internal/platform/config"
	"projects_backend/internal/platform/logging"
	"projects_backend/internal/platform/mongodb"
	infraredis "projects_backend/internal/platform/redis"
)

func main() {
	// 設定
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Server.IsProduction(), cfg.Server.LogLevel)
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// MongoDB（接続できなくても縮退モードで起動する）
	store := connectStore(cfg.Mongo)

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(context.Background(), cfg.Redis); err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
	} else {
		rdb = tmp
	}

	engine, err := di.NewEngine(cfg, store, rdb)
	if err != nil {
		slog.Error("failed to build server", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "database_connected", store.Available())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown", "error", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		slog.Error("failed to close MongoDB client", "error", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			slog.Error("failed to close Redis client", "error", err)
		}
	}
	slog.Info("server stopped")
}

// connectStore tries every configured descriptor and falls back to a degraded store.
func connectStore(cfg config.MongoConfig) *mongodb.Store {
	descriptors := mongodb.BuildDescriptors(cfg)
	budget := time.Duration(len(descriptors)+1) * cfg.Timeout
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()

	client, used, err := mongodb.Connect(ctx, descriptors, cfg.Timeout)
	if err != nil {
		slog.Error("MongoDB connection failed; starting without database", "error", err)
		return mongodb.NewStore(nil, cfg.Database, "")
	}

	store := mongodb.NewStore(client, cfg.Database, used.Name)
	if err := store.EnsureIndexes(ctx); err != nil {
		slog.Warn("failed to ensure indexes", "error", err)
	}
	slog.Info("MongoDB connected", "descriptor", used.Name, "database", cfg.Database)
	return store
}
