package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexSpecs lists the indexes the application relies on, per collection.
var indexSpecs = map[string][]mongo.IndexModel{
	Users: {{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	}},
	Rentals: {
		{
			Keys:    bson.D{{Key: "customer._id", Value: 1}, {Key: "movie._id", Value: 1}, {Key: "dateReturned", Value: 1}},
			Options: options.Index().SetName("customer_movie_open"),
		},
		{
			Keys:    bson.D{{Key: "dateOut", Value: -1}},
			Options: options.Index().SetName("date_out_desc"),
		},
	},
	Customers: {{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName("name")}},
	Genres:    {{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetName("name")}},
	Movies:    {{Keys: bson.D{{Key: "title", Value: 1}}, Options: options.Index().SetName("title")}},
}

// EnsureIndexes creates every index in indexSpecs.  Creating an index that
// already exists with the same definition is a no-op on the server.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	for coll, models := range indexSpecs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
