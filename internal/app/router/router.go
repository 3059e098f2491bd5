// Package router wires the HTTP routes and the global middleware chain.
package router

import (
	"github.com/gin-gonic/gin"

	authhandler "projects_backend/internal/feature/auth/transport/handler"
	projectshandler "projects_backend/internal/feature/projects/transport/handler"
	"projects_backend/internal/platform/http/handler"
	"projects_backend/internal/platform/http/middleware"
	"projects_backend/internal/platform/metrics"
)

// Options holds router settings that do not belong to a single handler.
type Options struct {
	// AllowOrigins lists CORS origins; "*" allows any.
	AllowOrigins []string
	// LoginLimiter guards POST /api/auth/login. Nil disables it.
	LoginLimiter gin.HandlerFunc
}

func NewRouter(opts Options, health *handler.HealthHandler, auth *authhandler.AuthHandler,
	projects *projectshandler.ProjectsHandler) *gin.Engine {
	r := gin.New()

	corsCfg := middleware.CORSConfig(opts.AllowOrigins)
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		metrics.Middleware(),
		// プリフライトはストアの状態に関係なく200を返す
		middleware.Preflight(corsCfg),
		middleware.CORS(corsCfg),
	)

	// 導通確認用
	r.GET("/", health.Root)
	r.GET("/health", health.Health)
	r.HEAD("/health", health.Health)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		// 新規ユーザー登録
		authGroup.POST("/register", auth.Register)
		// ログイン
		if opts.LoginLimiter != nil {
			authGroup.POST("/login", opts.LoginLimiter, auth.Login)
		} else {
			authGroup.POST("/login", auth.Login)
		}

		api.GET("/projects", projects.List)
		api.POST("/projects", projects.Create)
	}

	return r
}
