// Package dto defines the request and response bodies of the projects endpoints.
package dto

import (
	"time"

	"projects_backend/internal/feature/projects/domain/entity"
)

// timestampLayout renders UTC times with millisecond precision, e.g. 2024-05-01T12:00:00.000Z.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// CreateProjectReq は/api/projectsへのPOSTボディです。すべて任意です。
type CreateProjectReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      string `json:"userId"`
}

// CreateProjectResp は作成成功時のレスポンスです。
type CreateProjectResp struct {
	Message   string `json:"message"`
	ProjectID string `json:"projectId"`
}

// ProjectItem は一覧レスポンスの1要素です。
type ProjectItem struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      string `json:"userId"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// NewProjectItem converts a domain project to its JSON shape.
func NewProjectItem(p entity.Project) ProjectItem {
	return ProjectItem{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		UserID:      p.UserID,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}
