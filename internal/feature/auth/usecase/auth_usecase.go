// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"projects_backend/internal/feature/auth/domain/entity"
	"projects_backend/internal/shared/apperror"
)

// dummyPassword はユーザー未検出時のタイミング攻撃緩和用ハッシュの元になる値です。
const dummyPassword = "timing-equalisation-placeholder"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化し、user.IDを設定します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// PasswordHasher はパスワードの一方向ハッシュと検証を定義します。
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// Availability はストアのクライアントが取得済みかどうかを報告します。
type Availability interface {
	Available() bool
}

// RegisterInput は登録リクエストの値です。NameとPhoneは任意です。
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// AuthUsecase は認証ビジネスロジックを実装します。
type AuthUsecase struct {
	users  UserRepository
	hasher PasswordHasher
	store  Availability
	now    func() time.Time

	dummyHash func() string
}

// NewAuthUsecase はAuthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, hasher PasswordHasher, store Availability) *AuthUsecase {
	u := &AuthUsecase{
		users:  users,
		hasher: hasher,
		store:  store,
		now:    func() time.Time { return time.Now().UTC() },
	}
	u.dummyHash = sync.OnceValue(func() string {
		h, err := hasher.Hash(dummyPassword)
		if err != nil {
			slog.Error("failed to prepare dummy password hash", "error", err)
			return ""
		}
		return h
	})
	return u
}

// Available はストアが利用可能かどうかを返します。
func (u *AuthUsecase) Available() bool {
	return u.store != nil && u.store.Available()
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、ユーザーIDを返します。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (string, error) {
	if !u.Available() {
		return "", apperror.ErrStoreUnavailable
	}
	if in.Email == "" {
		return "", apperror.Input("email is required")
	}
	if in.Password == "" {
		return "", apperror.Input("password is required")
	}

	// 事前チェック。最終的な一意性はストアのユニークインデックスが保証します。
	_, err := u.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return "", apperror.Conflict(MsgUserExists, ErrEmailAlreadyExists)
	case !errors.Is(err, ErrUserNotFound):
		return "", wrapStoreErr(MsgRegistrationFailed, err)
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return "", apperror.Internal(MsgRegistrationFailed, err)
	}

	now := u.now()
	user := &entity.User{
		Name:      in.Name,
		Email:     in.Email,
		Password:  hashed,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			return "", apperror.Conflict(MsgUserExists, err)
		}
		return "", wrapStoreErr(MsgRegistrationFailed, err)
	}
	return user.ID, nil
}

// Login はユーザーを認証し、成功時にユーザーを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもハッシュ比較を実行します。
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (*entity.User, error) {
	if !u.Available() {
		return nil, apperror.ErrStoreUnavailable
	}
	if email == "" || password == "" {
		return nil, apperror.Input(MsgLoginFieldsMissing)
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, wrapStoreErr(MsgLoginFailed, err)
	}

	passwordHash := u.dummyHash()
	if err == nil {
		passwordHash = user.Password
	}
	// 常にパスワードを検証
	matched := u.hasher.Verify(password, passwordHash)

	// ユーザー未検出またはパスワード不一致の場合、同じエラーを返す
	if err != nil || !matched {
		return nil, apperror.Auth(MsgInvalidCredentials, err)
	}
	return user, nil
}

// wrapStoreErr keeps ErrStoreUnavailable intact and classifies everything else as internal.
func wrapStoreErr(msg string, err error) error {
	if apperror.KindOf(err) == apperror.KindUnavailable {
		return err
	}
	return apperror.Internal(msg, err)
}
