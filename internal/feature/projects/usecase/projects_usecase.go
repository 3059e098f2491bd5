// Package usecase はprojectsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"time"

	"projects_backend/internal/feature/projects/domain/entity"
	"projects_backend/internal/shared/apperror"
)

const (
	// MsgFetchFailed は一覧取得失敗時のメッセージです。
	MsgFetchFailed = "Failed to fetch projects"
	// MsgCreateFailed は作成失敗時のメッセージです。
	MsgCreateFailed = "Failed to create project"
)

// ProjectRepository はプロジェクトの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ProjectRepository interface {
	// List はストアの順序で全プロジェクトを返します。
	List(ctx context.Context) ([]entity.Project, error)
	// Create はプロジェクトを保存し、project.IDを設定します。
	Create(ctx context.Context, project *entity.Project) error
}

// Availability はストアのクライアントが取得済みかどうかを報告します。
type Availability interface {
	Available() bool
}

// CreateProjectInput はプロジェクト作成リクエストの値です。すべて任意です。
type CreateProjectInput struct {
	Title       string
	Description string
	UserID      string
}

// ProjectsUsecase はプロジェクト操作のユースケースです。
type ProjectsUsecase struct {
	projects ProjectRepository
	store    Availability
	now      func() time.Time
}

// NewProjectsUsecase はProjectsUsecaseの新しいインスタンスを生成します。
func NewProjectsUsecase(projects ProjectRepository, store Availability) *ProjectsUsecase {
	return &ProjectsUsecase{
		projects: projects,
		store:    store,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Available はストアが利用可能かどうかを返します。
func (u *ProjectsUsecase) Available() bool {
	return u.store != nil && u.store.Available()
}

// List は全プロジェクトを返します。
func (u *ProjectsUsecase) List(ctx context.Context) ([]entity.Project, error) {
	if !u.Available() {
		return nil, apperror.ErrStoreUnavailable
	}
	ps, err := u.projects.List(ctx)
	if err != nil {
		return nil, wrapStoreErr(MsgFetchFailed, err)
	}
	if ps == nil {
		ps = []entity.Project{}
	}
	return ps, nil
}

// Create はプロジェクトを作成し、プロジェクトIDを返します。
// 空の入力も受け付け、各フィールドは空文字列で保存されます。
func (u *ProjectsUsecase) Create(ctx context.Context, in CreateProjectInput) (string, error) {
	if !u.Available() {
		return "", apperror.ErrStoreUnavailable
	}
	now := u.now()
	p := &entity.Project{
		Title:       in.Title,
		Description: in.Description,
		UserID:      in.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.projects.Create(ctx, p); err != nil {
		return "", wrapStoreErr(MsgCreateFailed, err)
	}
	return p.ID, nil
}

func wrapStoreErr(msg string, err error) error {
	if apperror.KindOf(err) == apperror.KindUnavailable {
		return err
	}
	return apperror.Internal(msg, err)
}
