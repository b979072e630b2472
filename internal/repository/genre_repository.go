package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/vidly-api/internal/database"
	"github.com/iliyamo/vidly-api/internal/model"
)

// GenreRepo encapsulates queries on the genres collection.
type GenreRepo struct {
	store store[model.Genre]
}

func NewGenreRepo(db *mongo.Database) *GenreRepo {
	return &GenreRepo{store: store[model.Genre]{
		coll: db.Collection(database.Genres),
		sort: bson.D{{Key: "name", Value: 1}},
	}}
}

func (r *GenreRepo) List(ctx context.Context, page Page) ([]model.Genre, error) {
	return r.store.list(ctx, bson.M{}, page)
}

func (r *GenreRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Genre, error) {
	return r.store.get(ctx, id)
}

func (r *GenreRepo) Create(ctx context.Context, g *model.Genre) error {
	g.ID = primitive.NewObjectID()
	return r.store.insert(ctx, g)
}

// UpdateName renames the genre.  Movies keep the name they were saved with.
func (r *GenreRepo) UpdateName(ctx context.Context, id primitive.ObjectID, name string) (*model.Genre, error) {
	return r.store.set(ctx, id, bson.M{"name": name})
}

func (r *GenreRepo) Delete(ctx context.Context, id primitive.ObjectID) (*model.Genre, error) {
	return r.store.remove(ctx, id)
}
