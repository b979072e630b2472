package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Genre is a document in the `genres` collection.
type Genre struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name string             `bson:"name" json:"name"`
}

// GenreSnapshot is embedded into movies at write time.
type GenreSnapshot struct {
	ID   primitive.ObjectID `bson:"_id" json:"_id"`
	Name string             `bson:"name" json:"name"`
}

func (g Genre) Snapshot() GenreSnapshot { return GenreSnapshot{ID: g.ID, Name: g.Name} }
