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
)

// CustomerStore is the persistence the customer endpoints need.
type CustomerStore interface {
	List(ctx context.Context, page repository.Page) ([]model.Customer, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Customer, error)
	Create(ctx context.Context, c *model.Customer) error
	Update(ctx context.Context, id primitive.ObjectID, c model.Customer) (*model.Customer, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Customer, error)
}

// CustomerHandler serves /api/customers.
type CustomerHandler struct {
	Customers CustomerStore
	Log       logrus.FieldLogger
}

func NewCustomerHandler(s CustomerStore, log logrus.FieldLogger) *CustomerHandler {
	return &CustomerHandler{Customers: s, Log: log}
}

type customerReq struct {
	Name   string `json:"name" validate:"required,min=5,max=50"`
	Phone  string `json:"phone" validate:"required,min=5,max=11"`
	IsGold bool   `json:"isGold"`
}

func (r customerReq) toModel() model.Customer {
	return model.Customer{Name: r.Name, Phone: r.Phone, IsGold: r.IsGold}
}

const customerNotFound = "Cannot find the customer you are looking for."

// List handles GET /api/customers.
func (h *CustomerHandler) List(c echo.Context) error {
	page, ok := pageFrom(c)
	if !ok {
		return invalidPage(c)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	out, err := h.Customers.List(ctx, page)
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/customers/:id.
func (h *CustomerHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, customerNotFound)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	cust, err := h.Customers.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, customerNotFound)
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, cust)
}

// Create handles POST /api/customers.
func (h *CustomerHandler) Create(c echo.Context) error {
	var req customerReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	cust := req.toModel()
	if err := h.Customers.Create(ctx, &cust); err != nil {
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, cust)
}

// Update handles PUT /api/customers/:id.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, customerNotFound)
	}
	var req customerReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	cust, err := h.Customers.Update(ctx, id, req.toModel())
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, customerNotFound)
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, cust)
}

// Delete handles DELETE /api/customers/:id.
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, customerNotFound)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	cust, err := h.Customers.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, customerNotFound)
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, cust)
}
