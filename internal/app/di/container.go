// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"projects_backend/internal/app/router"
	authadapters "projects_backend/internal/feature/auth/adapters"
	authhandler "projects_backend/internal/feature/auth/transport/handler"
	authusecase "projects_backend/internal/feature/auth/usecase"
	projectsadapters "projects_backend/internal/feature/projects/adapters"
	projectshandler "projects_backend/internal/feature/projects/transport/handler"
	projectsusecase "projects_backend/internal/feature/projects/usecase"
	"projects_backend/internal/platform/cache"
	"projects_backend/internal/platform/config"
	"projects_backend/internal/platform/http/handler"
	"projects_backend/internal/platform/http/middleware"
	"projects_backend/internal/platform/metrics"
	"projects_backend/internal/platform/mongodb"
	"projects_backend/internal/platform/security"
)

// NewProjectRepository creates a ProjectRepository implementation.
// If Redis is available, the Mongo repository is wrapped with the list cache.
func NewProjectRepository(store *mongodb.Store, rdb *redis.Client, ttl time.Duration) projectsusecase.ProjectRepository {
	repo := projectsadapters.NewProjectMongo(store)
	if rdb != nil {
		return cache.NewCachingProjectRepository(rdb, ttl, repo, "projects")
	}
	return repo
}

// NewEngine builds every repository, usecase and handler and returns the router.
// store may be degraded and rdb may be nil.
func NewEngine(cfg *config.Config, store *mongodb.Store, rdb *redis.Client) (*gin.Engine, error) {
	// /health の初回プローブまでは起動時の接続結果を反映する
	metrics.SetStoreUp(store.Available())

	// Repository
	userRepo := authadapters.NewUserMongo(store)
	projectRepo := NewProjectRepository(store, rdb, cfg.Redis.CacheTTL)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, security.NewBcryptHasher(cfg.Security.BcryptCost), store)
	projectsUC := projectsusecase.NewProjectsUsecase(projectRepo, store)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	projectsH := projectshandler.NewProjectsHandler(projectsUC)
	healthH := handler.NewHealthHandler(store, handler.DefaultProbeTimeout)

	loginLimiter, err := middleware.NewIPRateLimiter(cfg.Security.LoginRateLimit, "login_limiter", rdb)
	if err != nil {
		return nil, err
	}

	return router.NewRouter(router.Options{
		AllowOrigins: cfg.Server.AllowOrigins,
		LoginLimiter: loginLimiter,
	}, healthH, authH, projectsH), nil
}
