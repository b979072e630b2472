// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as the
// rental service and the handlers to tell failure scenarios apart with
// errors.Is.
package repository

import (
	"errors"

	"github.com/iliyamo/vidly-api/internal/model"
)

// ErrNotFound is returned when no document matches the requested id or
// lookup.  Handlers translate it into 404.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when the unique email index rejects an insert.
var ErrEmailExists = errors.New("email already exists")

// ErrOutOfStock is returned by the guarded stock decrement when the movie
// has no copy left (or no longer exists).
var ErrOutOfStock = errors.New("movie not in stock")

// ErrAlreadyReturned is returned when a conditional return write finds the
// rental already closed.
var ErrAlreadyReturned = model.ErrAlreadyReturned
