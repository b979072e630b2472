package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/vidly-api/internal/database"
	"github.com/iliyamo/vidly-api/internal/model"
)

// RentalRepo encapsulates queries on the rentals collection.
type RentalRepo struct {
	store store[model.Rental]
}

func NewRentalRepo(db *mongo.Database) *RentalRepo {
	return &RentalRepo{store: store[model.Rental]{
		coll: db.Collection(database.Rentals),
		sort: bson.D{{Key: "dateOut", Value: -1}},
	}}
}

// List returns rentals, most recent checkout first.
func (r *RentalRepo) List(ctx context.Context, page Page) ([]model.Rental, error) {
	return r.store.list(ctx, bson.M{}, page)
}

func (r *RentalRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*model.Rental, error) {
	return r.store.get(ctx, id)
}

// Insert stores a new rental.  The id is assigned by model.NewRental.
func (r *RentalRepo) Insert(ctx context.Context, rental *model.Rental) error {
	if rental.ID.IsZero() {
		rental.ID = primitive.NewObjectID()
	}
	return r.store.insert(ctx, rental)
}

// Delete removes a rental.  Used to undo a checkout whose stock write
// failed.
func (r *RentalRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.store.remove(ctx, id)
	return err
}

// FindOpen returns the open rental of movieID by customerID.
func (r *RentalRepo) FindOpen(ctx context.Context, customerID, movieID primitive.ObjectID) (*model.Rental, error) {
	return r.store.findOne(ctx, bson.M{
		"customer._id": customerID,
		"movie._id":    movieID,
		"dateReturned": nil,
	})
}

// FindLatest returns the most recent rental of movieID by customerID,
// returned or not.
func (r *RentalRepo) FindLatest(ctx context.Context, customerID, movieID primitive.ObjectID) (*model.Rental, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "dateOut", Value: -1}})
	return r.store.findOne(ctx, bson.M{
		"customer._id": customerID,
		"movie._id":    movieID,
	}, opts)
}

// MarkReturned persists dateReturned and rentalFee, but only while the
// stored rental is still open.  A concurrent return that got there first
// makes this one fail with ErrAlreadyReturned.
func (r *RentalRepo) MarkReturned(ctx context.Context, rental *model.Rental) error {
	res, err := r.store.coll.UpdateOne(ctx,
		bson.M{"_id": rental.ID, "dateReturned": nil},
		bson.M{"$set": bson.M{"dateReturned": rental.DateReturned, "rentalFee": rental.RentalFee}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAlreadyReturned
	}
	return nil
}

// Reopen clears the return fields.  Used to undo a return whose restock
// write failed.
func (r *RentalRepo) Reopen(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.store.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$unset": bson.M{"dateReturned": "", "rentalFee": ""}})
	return err
}
