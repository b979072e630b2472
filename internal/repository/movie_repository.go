package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/vidly-api/internal/database"
	"github.com/iliyamo/vidly-api/internal/model"
)

// MovieRepo encapsulates queries on the movies collection, including the
// stock counters touched by checkouts and returns.
type MovieRepo struct {
	store store[model.Movie]
}

func NewMovieRepo(db *mongo.Database) *MovieRepo {
	return &MovieRepo{store: store[model.Movie]{
		coll: db.Collection(database.Movies),
		sort: bson.D{{Key: "title", Value: 1}},
	}}
}

// List returns movies ordered by title.
func (r *MovieRepo) List(ctx context.Context, page Page) ([]model.Movie, error) {
	return r.store.list(ctx, bson.M{}, page)
}

func (r *MovieRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Movie, error) {
	return r.store.get(ctx, id)
}

func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	m.ID = primitive.NewObjectID()
	return r.store.insert(ctx, m)
}

// Update replaces title, stock, rate and the genre snapshot.
func (r *MovieRepo) Update(ctx context.Context, id primitive.ObjectID, m model.Movie) (*model.Movie, error) {
	return r.store.set(ctx, id, bson.M{
		"title":           m.Title,
		"numberInStock":   m.NumberInStock,
		"dailyRentalRate": m.DailyRentalRate,
		"genre":           m.Genre,
	})
}

func (r *MovieRepo) Delete(ctx context.Context, id primitive.ObjectID) (*model.Movie, error) {
	return r.store.remove(ctx, id)
}

// DecrementStock takes one copy out of stock.  The filter only matches
// while numberInStock is positive, so concurrent checkouts of the last copy
// cannot push the counter below zero; the loser gets ErrOutOfStock.
func (r *MovieRepo) DecrementStock(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.store.coll.UpdateOne(ctx,
		bson.M{"_id": id, "numberInStock": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"numberInStock": -1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrOutOfStock
	}
	return nil
}

// IncrementStock puts one copy back.  ErrNotFound means the movie has been
// deleted since it was rented.
func (r *MovieRepo) IncrementStock(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.store.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"numberInStock": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
