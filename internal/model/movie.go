package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Movie is a document in the `movies` collection.  Genre holds the id and
// name of the genre as they were when the movie was last written; renaming
// the genre later does not touch existing movies.
type Movie struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title           string             `bson:"title" json:"title"`
	NumberInStock   int                `bson:"numberInStock" json:"numberInStock"`
	DailyRentalRate float64            `bson:"dailyRentalRate" json:"dailyRentalRate"`
	Genre           GenreSnapshot      `bson:"genre" json:"genre"`
}

// MovieSnapshot is the copy of a movie embedded into a rental.
type MovieSnapshot struct {
	ID              primitive.ObjectID `bson:"_id" json:"_id"`
	Title           string             `bson:"title" json:"title"`
	DailyRentalRate float64            `bson:"dailyRentalRate" json:"dailyRentalRate"`
}

func (m Movie) Snapshot() MovieSnapshot {
	return MovieSnapshot{ID: m.ID, Title: m.Title, DailyRentalRate: m.DailyRentalRate}
}

// InStock reports whether at least one copy can be rented out.
func (m Movie) InStock() bool { return m.NumberInStock > 0 }
