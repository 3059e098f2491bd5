// Package adapters はprojectsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"projects_backend/internal/feature/projects/domain/entity"
	"projects_backend/internal/feature/projects/usecase"
	"projects_backend/internal/platform/mongodb"
)

// projectDocument is the BSON shape of a projects document.
// ID stays untyped so documents written by other clients with non-ObjectID ids still list.
type projectDocument struct {
	ID          any       `bson:"_id,omitempty"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	UserID      string    `bson:"userId"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

// projectMongo はProjectRepositoryのMongoDB実装です。
type projectMongo struct {
	store *mongodb.Store
}

var _ usecase.ProjectRepository = (*projectMongo)(nil)

// NewProjectMongo は指定されたStoreでprojectMongoの新しいインスタンスを生成します。
func NewProjectMongo(store *mongodb.Store) *projectMongo {
	return &projectMongo{store: store}
}

// List はprojectsコレクションの全ドキュメントを自然順で返します。
func (r *projectMongo) List(ctx context.Context) ([]entity.Project, error) {
	coll, err := r.store.Collection(mongodb.ProjectsCollection)
	if err != nil {
		return nil, err
	}
	cur, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var docs []projectDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]entity.Project, 0, len(docs))
	for _, d := range docs {
		out = append(out, entity.Project{
			ID:          mongodb.IDString(d.ID),
			Title:       d.Title,
			Description: d.Description,
			UserID:      d.UserID,
			CreatedAt:   d.CreatedAt,
			UpdatedAt:   d.UpdatedAt,
		})
	}
	return out, nil
}

// Create はプロジェクトを挿入し、採番されたIDをp.IDに設定します。
func (r *projectMongo) Create(ctx context.Context, p *entity.Project) error {
	coll, err := r.store.Collection(mongodb.ProjectsCollection)
	if err != nil {
		return err
	}
	res, err := coll.InsertOne(ctx, projectDocument{
		Title:       p.Title,
		Description: p.Description,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	})
	if err != nil {
		return err
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	p.ID = oid.Hex()
	return nil
}
