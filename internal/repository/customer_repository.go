package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/vidly-api/internal/database"
	"github.com/iliyamo/vidly-api/internal/model"
)

// CustomerRepo encapsulates queries on the customers collection.
type CustomerRepo struct {
	store store[model.Customer]
}

func NewCustomerRepo(db *mongo.Database) *CustomerRepo {
	return &CustomerRepo{store: store[model.Customer]{
		coll: db.Collection(database.Customers),
		sort: bson.D{{Key: "name", Value: 1}},
	}}
}

// List returns customers ordered by name.
func (r *CustomerRepo) List(ctx context.Context, page Page) ([]model.Customer, error) {
	return r.store.list(ctx, bson.M{}, page)
}

func (r *CustomerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Customer, error) {
	return r.store.get(ctx, id)
}

// Create inserts c and assigns its id.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	c.ID = primitive.NewObjectID()
	return r.store.insert(ctx, c)
}

// Update overwrites the editable fields and returns the stored document.
func (r *CustomerRepo) Update(ctx context.Context, id primitive.ObjectID, c model.Customer) (*model.Customer, error) {
	return r.store.set(ctx, id, bson.M{"name": c.Name, "phone": c.Phone, "isGold": c.IsGold})
}

// Delete removes the customer and returns the removed document.
func (r *CustomerRepo) Delete(ctx context.Context, id primitive.ObjectID) (*model.Customer, error) {
	return r.store.remove(ctx, id)
}
