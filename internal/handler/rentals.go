package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/vidly-api/internal/model"
	"github.com/iliyamo/vidly-api/internal/repository"
	"github.com/iliyamo/vidly-api/internal/service"
)

// RentalReader lists and loads rentals.
type RentalReader interface {
	List(ctx context.Context, page repository.Page) ([]model.Rental, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Rental, error)
}

// RentalWorkflow runs the two-write rental operations.
type RentalWorkflow interface {
	Checkout(ctx context.Context, customerID, movieID primitive.ObjectID) (*model.Rental, error)
	Return(ctx context.Context, customerID, movieID primitive.ObjectID) (*model.Rental, error)
}

// RentalHandler serves /api/rentals and /api/returns.
type RentalHandler struct {
	Rentals  RentalReader
	Workflow RentalWorkflow
	Log      logrus.FieldLogger
}

func NewRentalHandler(r RentalReader, w RentalWorkflow, log logrus.FieldLogger) *RentalHandler {
	return &RentalHandler{Rentals: r, Workflow: w, Log: log}
}

// rentalReq is the body of both a checkout and a return.
type rentalReq struct {
	CustomerID string `json:"customerId" validate:"required,objectid"`
	MovieID    string `json:"movieId" validate:"required,objectid"`
}

func (r rentalReq) ids() (customerID, movieID primitive.ObjectID) {
	customerID, _ = primitive.ObjectIDFromHex(r.CustomerID)
	movieID, _ = primitive.ObjectIDFromHex(r.MovieID)
	return customerID, movieID
}

const rentalNotFound = "Cannot find the rental you are looking for."

// List handles GET /api/rentals, newest first.
func (h *RentalHandler) List(c echo.Context) error {
	page, ok := pageFrom(c)
	if !ok {
		return invalidPage(c)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	out, err := h.Rentals.List(ctx, page)
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/rentals/:id.
func (h *RentalHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, rentalNotFound)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	r, err := h.Rentals.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, rentalNotFound)
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, r)
}

// Create handles POST /api/rentals.
func (h *RentalHandler) Create(c echo.Context) error {
	var req rentalReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	customerID, movieID := req.ids()
	r, err := h.Workflow.Checkout(ctx, customerID, movieID)
	switch {
	case errors.Is(err, service.ErrInvalidCustomer):
		return badRequest(c, "Invalid customer.")
	case errors.Is(err, service.ErrInvalidMovie):
		return badRequest(c, "Invalid movie.")
	case errors.Is(err, service.ErrOutOfStock):
		return badRequest(c, "Movie not in stock.")
	case err != nil:
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, r)
}

// Return handles POST /api/returns.
func (h *RentalHandler) Return(c echo.Context) error {
	var req rentalReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	customerID, movieID := req.ids()
	r, err := h.Workflow.Return(ctx, customerID, movieID)
	switch {
	case errors.Is(err, service.ErrRentalNotFound):
		return notFound(c, "Rental not found.")
	case errors.Is(err, service.ErrAlreadyReturned):
		return badRequest(c, "Return already processed.")
	case err != nil:
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, r)
}
