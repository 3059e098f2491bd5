// Package handler はprojectsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"projects_backend/internal/feature/projects/domain/entity"
	"projects_backend/internal/feature/projects/transport/http/dto"
	"projects_backend/internal/feature/projects/usecase"
	"projects_backend/internal/shared/apperror"
	"projects_backend/internal/shared/request"
	"projects_backend/internal/shared/response"
)

// ProjectsUsecase はプロジェクト操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ProjectsUsecase interface {
	Available() bool
	List(ctx context.Context) ([]entity.Project, error)
	Create(ctx context.Context, in usecase.CreateProjectInput) (string, error)
}

// ProjectsHandler はプロジェクトのHTTPリクエストを処理します。
type ProjectsHandler struct {
	uc ProjectsUsecase
}

// NewProjectsHandler は指定されたusecaseでProjectsHandlerの新しいインスタンスを生成します。
func NewProjectsHandler(uc ProjectsUsecase) *ProjectsHandler {
	return &ProjectsHandler{uc: uc}
}

// List は全プロジェクトをJSON配列で返します。
//
// エンドポイント例:
// GET /api/projects
func (h *ProjectsHandler) List(c *gin.Context) {
	if !h.uc.Available() {
		response.Error(c, apperror.ErrStoreUnavailable, false)
		return
	}

	projects, err := h.uc.List(c.Request.Context())
	if err != nil {
		slog.Error("failed to list projects", "error", err)
		response.Error(c, err, false)
		return
	}

	out := make([]dto.ProjectItem, 0, len(projects))
	for _, p := range projects {
		out = append(out, dto.NewProjectItem(p))
	}
	c.JSON(http.StatusOK, out)
}

// Create はプロジェクトを作成します。空のボディも受け付けます。
//
// エンドポイント例:
// POST /api/projects
func (h *ProjectsHandler) Create(c *gin.Context) {
	if !h.uc.Available() {
		response.Error(c, apperror.ErrStoreUnavailable, false)
		return
	}
	var req dto.CreateProjectReq
	if err := request.BindJSON(c, &req); err != nil {
		slog.Warn("project body rejected", "error", err, "remote_addr", c.ClientIP())
		response.InvalidBody(c)
		return
	}

	id, err := h.uc.Create(c.Request.Context(), usecase.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
	})
	if err != nil {
		slog.Error("failed to create project", "error", err)
		response.Error(c, err, false)
		return
	}

	slog.Info("project created", "project_id", id)
	c.JSON(http.StatusCreated, dto.CreateProjectResp{Message: "Project created successfully", ProjectID: id})
}
