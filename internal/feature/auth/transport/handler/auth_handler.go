// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"projects_backend/internal/feature/auth/domain/entity"
	"projects_backend/internal/feature/auth/transport/http/dto"
	"projects_backend/internal/feature/auth/usecase"
	"projects_backend/internal/platform/metrics"
	"projects_backend/internal/shared/apperror"
	"projects_backend/internal/shared/request"
	"projects_backend/internal/shared/response"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Available はストアが利用可能かどうかを返します。
	Available() bool
	// Register は新規ユーザーを登録し、ユーザーIDを返します。
	Register(ctx context.Context, in usecase.RegisterInput) (string, error)
	// Login はユーザーを認証し、成功時にユーザーを返します。
	Login(ctx context.Context, email, password string) (*entity.User, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - ストア未接続時は503を返却
// - JSONが不正な場合は400を返却
// - 必須項目の欠落、メール重複時は400を返却
// - 成功時は201を返却
func (h *AuthHandler) Register(c *gin.Context) {
	if !h.auth.Available() {
		response.Error(c, apperror.ErrStoreUnavailable, false)
		return
	}
	var req dto.RegisterReq
	if err := request.BindJSON(c, &req); err != nil {
		slog.Warn("register body rejected", "error", err, "remote_addr", c.ClientIP())
		response.InvalidBody(c)
		return
	}

	userID, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		metrics.RecordAuthAttempt(metrics.EventRegister, false)
		logFailure("register failed", err, req.Email, c.ClientIP())
		response.Error(c, err, true)
		return
	}

	metrics.RecordAuthAttempt(metrics.EventRegister, true)
	slog.Info("user registered", "user_id", userID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.RegisterResp{Message: "User registered successfully", UserID: userID})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - ストア未接続時は503を返却
// - メールまたはパスワード欠落時は400を返却
// - 認証失敗時は401を返却（ユーザー未検出とパスワード不一致は区別しない）
// - 認証成功時はユーザー情報付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	if !h.auth.Available() {
		response.Error(c, apperror.ErrStoreUnavailable, false)
		return
	}
	var req dto.LoginReq
	if err := request.BindJSON(c, &req); err != nil {
		slog.Warn("login body rejected", "error", err, "remote_addr", c.ClientIP())
		response.InvalidBody(c)
		return
	}

	user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		metrics.RecordAuthAttempt(metrics.EventLogin, false)
		logFailure("login failed", err, req.Email, c.ClientIP())
		response.Error(c, err, true)
		return
	}

	metrics.RecordAuthAttempt(metrics.EventLogin, true)
	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginResp{
		Message: "Login successful",
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
	})
}

// logFailure logs client mistakes at warn level and everything else at error level.
func logFailure(msg string, err error, email, remoteAddr string) {
	switch apperror.KindOf(err) {
	case apperror.KindInternal, apperror.KindUnavailable:
		slog.Error(msg, "error", err, "email", email, "remote_addr", remoteAddr)
	default:
		slog.Warn(msg, "error", err, "email", email, "remote_addr", remoteAddr)
	}
}
