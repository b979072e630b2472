package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Page restricts a list query.  The zero value returns everything.
type Page struct {
	Skip  int64
	Limit int64
}

// store holds the collection plumbing shared by the resource repositories.
// T is the document type the collection decodes into.
type store[T any] struct {
	coll *mongo.Collection
	sort bson.D
}

func (s store[T]) list(ctx context.Context, filter any, page Page) ([]T, error) {
	opts := options.Find().SetSort(s.sort)
	if page.Limit > 0 {
		opts.SetSkip(page.Skip).SetLimit(page.Limit)
	}
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]T, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s store[T]) get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s store[T]) findOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) (*T, error) {
	var v T
	if err := s.coll.FindOne(ctx, filter, opts...).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (s store[T]) insert(ctx context.Context, doc *T) error {
	_, err := s.coll.InsertOne(ctx, doc)
	return err
}

// set applies a $set with the given fields and returns the updated document.
func (s store[T]) set(ctx context.Context, id primitive.ObjectID, fields bson.M) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var v T
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

// remove deletes the document and returns it as it was before deletion.
func (s store[T]) remove(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var v T
	if err := s.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}
