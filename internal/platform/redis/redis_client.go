// Package redis opens the optional Redis connection shared by the project cache and the login limiter.
package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"projects_backend/internal/platform/config"
)

// NewRedisClient connects to Redis and verifies the connection with PING.
// It returns (nil, nil) when Redis is not configured.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	addr := cfg.Addr()
	if addr == "" {
		slog.Info("Redis not configured; cache and shared rate limiting disabled")
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 接続確認
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr)
	return rdb, nil
}
