// Package adapters はauthフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"projects_backend/internal/feature/auth/domain/entity"
	"projects_backend/internal/feature/auth/usecase"
	"projects_backend/internal/platform/mongodb"
)

// userDocument is the BSON shape of a document in the users collection.
// ID stays untyped so accounts written by other clients with non-ObjectID ids can still log in.
type userDocument struct {
	ID        any       `bson:"_id,omitempty"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	Phone     string    `bson:"phone"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d *userDocument) toEntity() *entity.User {
	return &entity.User{
		ID:        mongodb.IDString(d.ID),
		Name:      d.Name,
		Email:     d.Email,
		Password:  d.Password,
		Phone:     d.Phone,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// userMongo はUserRepositoryインターフェースのMongoDB実装です。
type userMongo struct {
	store *mongodb.Store
}

// userMongoがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userMongo)(nil)

// NewUserMongo は指定されたStoreでuserMongoの新しいインスタンスを生成します。
func NewUserMongo(store *mongodb.Store) *userMongo {
	return &userMongo{store: store}
}

// Create はユーザーをusersコレクションに追加し、採番されたIDをu.IDに設定します。
// ユニークインデックス違反の場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *userMongo) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	coll, err := r.store.Collection(mongodb.UsersCollection)
	if err != nil {
		return err
	}
	doc := userDocument{
		Name:      u.Name,
		Email:     u.Email,
		Password:  u.Password,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	u.ID = oid.Hex()
	return nil
}

// FindByEmail はメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
func (r *userMongo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	coll, err := r.store.Collection(mongodb.UsersCollection)
	if err != nil {
		return nil, err
	}
	var doc userDocument
	if err := coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}
