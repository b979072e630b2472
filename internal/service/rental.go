// Package service holds the workflows that span more than one collection:
// renting a movie out and taking it back.  Everything else is a single
// repository call made directly by the handlers.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/vidly-api/internal/model"
	q "github.com/iliyamo/vidly-api/internal/queue"
	"github.com/iliyamo/vidly-api/internal/repository"
)

// Business-rule failures.  Handlers answer 400 for all of them except
// ErrRentalNotFound, which is a 404.
var (
	ErrInvalidCustomer = errors.New("invalid customer")
	ErrInvalidMovie    = errors.New("invalid movie")
	ErrOutOfStock      = repository.ErrOutOfStock
	ErrRentalNotFound  = errors.New("rental not found")
	ErrAlreadyReturned = model.ErrAlreadyReturned
)

// CustomerFinder loads customers.
type CustomerFinder interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Customer, error)
}

// MovieStock loads movies and moves their stock counter.
type MovieStock interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Movie, error)
	DecrementStock(ctx context.Context, id primitive.ObjectID) error
	IncrementStock(ctx context.Context, id primitive.ObjectID) error
}

// RentalStore persists rentals.
type RentalStore interface {
	Insert(ctx context.Context, r *model.Rental) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindOpen(ctx context.Context, customerID, movieID primitive.ObjectID) (*model.Rental, error)
	FindLatest(ctx context.Context, customerID, movieID primitive.ObjectID) (*model.Rental, error)
	MarkReturned(ctx context.Context, r *model.Rental) error
	Reopen(ctx context.Context, id primitive.ObjectID) error
}

// Transactor runs fn inside a multi-document transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher delivers rental events to the broker.
type EventPublisher interface {
	Publish(ctx context.Context, event q.RentalEvent) error
}

// RentalService runs checkouts and returns.  Each one is two writes.  With
// Tx set both writes share a transaction.  Without it they run in sequence
// and a failed second write undoes the first one.
type RentalService struct {
	Customers CustomerFinder
	Movies    MovieStock
	Rentals   RentalStore
	Tx        Transactor     // nil: sequential writes with compensation
	Events    EventPublisher // nil: no events
	Log       logrus.FieldLogger
	Now       func() time.Time
}

func (s *RentalService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Checkout rents movieID out to customerID.  The customer and the movie
// must exist and the movie must have a copy in stock.  The stored rental
// keeps snapshots of both.
func (s *RentalService) Checkout(ctx context.Context, customerID, movieID primitive.ObjectID) (*model.Rental, error) {
	customer, err := s.Customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCustomer
		}
		return nil, fmt.Errorf("load customer: %w", err)
	}
	movie, err := s.Movies.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidMovie
		}
		return nil, fmt.Errorf("load movie: %w", err)
	}
	if !movie.InStock() {
		return nil, ErrOutOfStock
	}

	rental := model.NewRental(*customer, *movie, s.now())

	if s.Tx != nil {
		err = s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
			if err := s.Rentals.Insert(ctx, &rental); err != nil {
				return fmt.Errorf("insert rental: %w", err)
			}
			return s.Movies.DecrementStock(ctx, movie.ID)
		})
		if err != nil {
			return nil, err
		}
	} else {
		if err := s.Rentals.Insert(ctx, &rental); err != nil {
			return nil, fmt.Errorf("insert rental: %w", err)
		}
		if err := s.Movies.DecrementStock(ctx, movie.ID); err != nil {
			s.compensate(ctx, "delete rental after failed stock decrement", err, func(ctx context.Context) error {
				return s.Rentals.Delete(ctx, rental.ID)
			})
			return nil, err
		}
	}

	s.publish(ctx, q.RentalCreated, &rental)
	return &rental, nil
}

// Return closes the open rental of movieID by customerID, charges the fee
// and puts the copy back in stock.
func (s *RentalService) Return(ctx context.Context, customerID, movieID primitive.ObjectID) (*model.Rental, error) {
	rental, err := s.Rentals.FindOpen(ctx, customerID, movieID)
	if errors.Is(err, repository.ErrNotFound) {
		// Nothing open.  Tell a second return apart from a bogus one.
		if _, lerr := s.Rentals.FindLatest(ctx, customerID, movieID); lerr == nil {
			return nil, ErrAlreadyReturned
		} else if !errors.Is(lerr, repository.ErrNotFound) {
			return nil, fmt.Errorf("load rental: %w", lerr)
		}
		return nil, ErrRentalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load rental: %w", err)
	}

	if err := rental.Return(s.now()); err != nil {
		return nil, err
	}

	if s.Tx != nil {
		err = s.Tx.WithTransaction(ctx, func(ctx context.Context) error {
			if err := s.Rentals.MarkReturned(ctx, rental); err != nil {
				return err
			}
			return s.restock(ctx, rental.Movie.ID)
		})
		if err != nil {
			return nil, err
		}
	} else {
		if err := s.Rentals.MarkReturned(ctx, rental); err != nil {
			return nil, err
		}
		if err := s.restock(ctx, rental.Movie.ID); err != nil {
			s.compensate(ctx, "reopen rental after failed restock", err, func(ctx context.Context) error {
				return s.Rentals.Reopen(ctx, rental.ID)
			})
			return nil, err
		}
	}

	s.publish(ctx, q.RentalReturned, rental)
	return rental, nil
}

// restock puts one copy back.  A movie deleted while rented out has no
// counter left to fix, so that case is logged and otherwise ignored.
func (s *RentalService) restock(ctx context.Context, movieID primitive.ObjectID) error {
	err := s.Movies.IncrementStock(ctx, movieID)
	if errors.Is(err, repository.ErrNotFound) {
		s.Log.WithField("movie_id", movieID.Hex()).Warn("returned movie no longer exists; stock not restored")
		return nil
	}
	if err != nil {
		return fmt.Errorf("restock movie: %w", err)
	}
	return nil
}

// compensate runs undo on a context that survives the request being
// cancelled.  A failed undo leaves the collections inconsistent, which is
// logged with both errors.
func (s *RentalService) compensate(ctx context.Context, what string, cause error, undo func(ctx context.Context) error) {
	uctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := undo(uctx); err != nil {
		s.Log.WithError(err).WithField("cause", cause.Error()).Errorf("compensation failed: %s", what)
		return
	}
	s.Log.WithField("cause", cause.Error()).Warnf("compensated: %s", what)
}

func (s *RentalService) publish(ctx context.Context, kind string, r *model.Rental) {
	if s.Events == nil {
		return
	}
	ev := q.RentalEvent{
		Type:         kind,
		RentalID:     r.ID.Hex(),
		CustomerID:   r.Customer.ID.Hex(),
		CustomerName: r.Customer.Name,
		MovieID:      r.Movie.ID.Hex(),
		MovieTitle:   r.Movie.Title,
		DailyRate:    r.Movie.DailyRentalRate,
		DateOut:      r.DateOut.Format(time.RFC3339),
		RentalFee:    r.RentalFee,
		OccurredAt:   s.now().UTC().Format(time.RFC3339),
	}
	if r.DateReturned != nil {
		ev.DateReturned = r.DateReturned.Format(time.RFC3339)
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := s.Events.Publish(pctx, ev); err != nil {
		s.Log.WithError(err).WithField("rental_id", ev.RentalID).Warn("publish rental event failed")
	}
}
