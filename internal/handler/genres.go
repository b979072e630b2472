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

// GenreStore is the persistence the genre endpoints need.
type GenreStore interface {
	List(ctx context.Context, page repository.Page) ([]model.Genre, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Genre, error)
	Create(ctx context.Context, g *model.Genre) error
	UpdateName(ctx context.Context, id primitive.ObjectID, name string) (*model.Genre, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Genre, error)
}

// GenreHandler serves /api/genres.  Renaming a genre leaves the snapshot
// already embedded in movies untouched.
type GenreHandler struct {
	Genres GenreStore
	Log    logrus.FieldLogger
}

func NewGenreHandler(s GenreStore, log logrus.FieldLogger) *GenreHandler {
	return &GenreHandler{Genres: s, Log: log}
}

type genreReq struct {
	Name string `json:"name" validate:"required,min=5,max=50"`
}

const genreNotFound = "Cannot find the genre you are looking for."

func (h *GenreHandler) List(c echo.Context) error {
	page, ok := pageFrom(c)
	if !ok {
		return invalidPage(c)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	out, err := h.Genres.List(ctx, page)
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *GenreHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, genreNotFound)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	g, err := h.Genres.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, genreNotFound)
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GenreHandler) Create(c echo.Context) error {
	var req genreReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	g := model.Genre{Name: req.Name}
	if err := h.Genres.Create(ctx, &g); err != nil {
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GenreHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, genreNotFound)
	}
	var req genreReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	g, err := h.Genres.UpdateName(ctx, id, req.Name)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, genreNotFound)
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, g)
}

func (h *GenreHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, genreNotFound)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	g, err := h.Genres.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, genreNotFound)
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, g)
}
