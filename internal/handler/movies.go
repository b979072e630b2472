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

// MovieStore is the persistence the movie endpoints need.
type MovieStore interface {
	List(ctx context.Context, page repository.Page) ([]model.Movie, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Movie, error)
	Create(ctx context.Context, m *model.Movie) error
	Update(ctx context.Context, id primitive.ObjectID, m model.Movie) (*model.Movie, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*model.Movie, error)
}

// GenreFinder resolves the genre a movie is filed under.
type GenreFinder interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Genre, error)
}

// MovieHandler serves /api/movies.  Writes copy the referenced genre's id
// and name into the movie.
type MovieHandler struct {
	Movies MovieStore
	Genres GenreFinder
	Log    logrus.FieldLogger
}

func NewMovieHandler(m MovieStore, g GenreFinder, log logrus.FieldLogger) *MovieHandler {
	return &MovieHandler{Movies: m, Genres: g, Log: log}
}

type movieReq struct {
	Title           string   `json:"title" validate:"required,min=5,max=255"`
	GenreID         string   `json:"genreId" validate:"required,objectid"`
	NumberInStock   *int     `json:"numberInStock" validate:"required,gte=0,lte=255"`
	DailyRentalRate *float64 `json:"dailyRentalRate" validate:"required,gte=0,lte=255"`
}

const (
	movieNotFound = "Cannot find the movie you are looking for."
	invalidGenre  = "Invalid genre."
)

func (h *MovieHandler) List(c echo.Context) error {
	page, ok := pageFrom(c)
	if !ok {
		return invalidPage(c)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	out, err := h.Movies.List(ctx, page)
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MovieHandler) Get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, movieNotFound)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, movieNotFound)
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, m)
}

// build validates the body and resolves its genre.  When ok is false the
// response is already written.
func (h *MovieHandler) build(ctx context.Context, c echo.Context) (m model.Movie, ok bool, err error) {
	var req movieReq
	if ok, err := bindValid(c, &req); !ok {
		return model.Movie{}, false, err
	}
	genreID, _ := primitive.ObjectIDFromHex(req.GenreID)
	genre, err := h.Genres.GetByID(ctx, genreID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Movie{}, false, badRequest(c, invalidGenre)
	}
	if err != nil {
		return model.Movie{}, false, serverError(c, h.Log, err)
	}
	return model.Movie{
		Title:           req.Title,
		NumberInStock:   *req.NumberInStock,
		DailyRentalRate: *req.DailyRentalRate,
		Genre:           genre.Snapshot(),
	}, true, nil
}

func (h *MovieHandler) Create(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	m, ok, err := h.build(ctx, c)
	if !ok {
		return err
	}
	if err := h.Movies.Create(ctx, &m); err != nil {
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MovieHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, movieNotFound)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	m, ok, err := h.build(ctx, c)
	if !ok {
		return err
	}
	updated, err := h.Movies.Update(ctx, id, m)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, movieNotFound)
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *MovieHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, movieNotFound)
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	m, err := h.Movies.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, movieNotFound)
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, m)
}
