// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"projects_backend/internal/platform/metrics"
)

// DefaultProbeTimeout はヘルスチェック時のping上限です。
const DefaultProbeTimeout = 3 * time.Second

// StoreProber はストアの状態確認に必要な操作です。
type StoreProber interface {
	// Available はクライアントが起動時に取得済みかどうかを返します。
	Available() bool
	// Ping はストアへの疎通を確認します。
	Ping(ctx context.Context) error
}

// HealthResponse は/healthのレスポンスボディです。
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

// RootResponse は/のレスポンスボディです。
type RootResponse struct {
	Message  string `json:"message"`
	Status   string `json:"status"`
	Database string `json:"database"`
}

// HealthHandler はストアの状態をリクエストごとに確認して報告します。
type HealthHandler struct {
	store   StoreProber
	timeout time.Duration
	now     func() time.Time
}

// NewHealthHandler はHealthHandlerを生成します。timeoutが0以下の場合はDefaultProbeTimeoutを使用します。
func NewHealthHandler(store StoreProber, timeout time.Duration) *HealthHandler {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &HealthHandler{
		store:   store,
		timeout: timeout,
		now:     time.Now,
	}
}

// Health は/healthエンドポイントを処理します。
// クライアント未取得の場合はpingせずに503を返します。
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	if h.store == nil || !h.store.Available() {
		metrics.SetStoreUp(false)
		h.respond(c, http.StatusServiceUnavailable, HealthResponse{Status: "unhealthy", Database: "disconnected"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		slog.Warn("health probe failed", "error", err)
		metrics.SetStoreUp(false)
		h.respond(c, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		})
		return
	}

	metrics.SetStoreUp(true)
	h.respond(c, http.StatusOK, HealthResponse{Status: "healthy", Database: "connected"})
}

// Root は/エンドポイントを処理します。起動時の接続状態のみを報告し、pingは行いません。
func (h *HealthHandler) Root(c *gin.Context) {
	database := "disconnected"
	if h.store != nil && h.store.Available() {
		database = "connected"
	}
	c.JSON(http.StatusOK, RootResponse{
		Message:  "Student Projects API is running",
		Status:   "active",
		Database: database,
	})
}

func (h *HealthHandler) respond(c *gin.Context, status int, body HealthResponse) {
	// HEADリクエストにはボディを返さない
	if c.Request.Method == http.MethodHead {
		c.Status(status)
		return
	}
	body.Timestamp = h.now().UTC().Format(time.RFC3339)
	c.JSON(status, body)
}
