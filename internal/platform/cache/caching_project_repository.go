// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"projects_backend/internal/feature/projects/domain/entity"
	"projects_backend/internal/feature/projects/usecase"
)

// CachingProjectRepository decorates a ProjectRepository with a Redis copy of the full list.
// Redis errors never fail a request; the decorator falls through to the inner repository.
type CachingProjectRepository struct {
	inner     usecase.ProjectRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ProjectRepository = (*CachingProjectRepository)(nil)

// NewCachingProjectRepository decorates a ProjectRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "projects".
// A nil rdb disables caching.
func NewCachingProjectRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ProjectRepository, namespace string) *CachingProjectRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "projects"
	}
	return &CachingProjectRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// List returns the cached list when present, otherwise reads the inner repository and caches the result.
// Entries are keyed by the current generation, so a snapshot taken before a Create
// is only ever written under a generation that readers have already moved past.
func (c *CachingProjectRepository) List(ctx context.Context) ([]entity.Project, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	gen, err := c.rdb.Get(ctx, c.genKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("project cache generation read failed", "key", c.genKey(), "error", err)
		return c.inner.List(ctx)
	}
	key := c.listKey(gen)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Project
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	} else if err != nil && !errors.Is(err, redis.Nil) {
		slog.Warn("project cache read failed", "key", key, "error", err)
	}

	// 2) Fallback to database
	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// Create writes through to the inner repository and advances the list generation.
func (c *CachingProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	if err := c.rdb.Incr(ctx, c.genKey()).Err(); err != nil {
		slog.Warn("project cache invalidation failed", "key", c.genKey(), "error", err)
	}
	return nil
}

func (c *CachingProjectRepository) genKey() string {
	return safe(c.namespace) + ":gen"
}

func (c *CachingProjectRepository) listKey(gen int64) string {
	return safe(c.namespace) + ":all:" + strconv.FormatInt(gen, 10)
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
