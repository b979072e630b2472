package model

import (
	"errors"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrAlreadyReturned is returned when a rental that already carries a
// return date is returned again.
var ErrAlreadyReturned = errors.New("rental already returned")

// Rental records one customer renting one movie.  Customer and Movie are
// historical snapshots.  DateReturned and RentalFee stay nil until the
// rental is returned, which happens at most once.
type Rental struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Customer     CustomerSnapshot   `bson:"customer" json:"customer"`
	Movie        MovieSnapshot      `bson:"movie" json:"movie"`
	DateOut      time.Time          `bson:"dateOut" json:"dateOut"`
	DateReturned *time.Time         `bson:"dateReturned,omitempty" json:"dateReturned,omitempty"`
	RentalFee    *float64           `bson:"rentalFee,omitempty" json:"rentalFee,omitempty"`
}

// NewRental builds an open rental dated now from the current state of the
// customer and the movie.
func NewRental(c Customer, m Movie, now time.Time) Rental {
	return Rental{
		ID:       primitive.NewObjectID(),
		Customer: c.Snapshot(),
		Movie:    m.Snapshot(),
		DateOut:  now.UTC(),
	}
}

// IsOpen reports whether the rental has not been returned yet.
func (r *Rental) IsOpen() bool { return r.DateReturned == nil }

// Return stamps the return date and computes the fee.  It refuses to run
// twice on the same rental.
func (r *Rental) Return(now time.Time) error {
	if !r.IsOpen() {
		return ErrAlreadyReturned
	}
	returned := now.UTC()
	fee := RentalFee(r.DateOut, returned, r.Movie.DailyRentalRate)
	r.DateReturned = &returned
	r.RentalFee = &fee
	return nil
}

// Reopen undoes Return.  Only used to compensate a return whose restock
// write failed.
func (r *Rental) Reopen() {
	r.DateReturned = nil
	r.RentalFee = nil
}

// RentalFee charges the daily rate for every whole day between out and
// returned.  Partial days are not billed and a return dated before the
// checkout costs nothing.
func RentalFee(out, returned time.Time, dailyRate float64) float64 {
	days := math.Floor(returned.Sub(out).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days * dailyRate
}
