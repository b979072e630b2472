package handler

import (
	"context"  // context for repository calls
	"errors"   // errors.Is on repository sentinels
	"net/http" // status codes

	"github.com/labstack/echo/v4"                // Echo framework for HTTP routing
	"github.com/sirupsen/logrus"                 // logrus for failure logs
	"go.mongodb.org/mongo-driver/bson/primitive" // ObjectId of the caller

	"github.com/iliyamo/vidly-api/internal/config"     // app configuration
	"github.com/iliyamo/vidly-api/internal/model"      // user document
	"github.com/iliyamo/vidly-api/internal/repository" // user persistence
	"github.com/iliyamo/vidly-api/internal/utils"      // hashing and token issuing
)

// UserStore is the persistence the user and auth endpoints need.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
}

// UserHandler bundles dependencies for the registration, profile and login
// endpoints.
type UserHandler struct {
	Cfg   config.Config
	Users UserStore
	Log   logrus.FieldLogger
}

func NewUserHandler(cfg config.Config, u UserStore, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u, Log: log}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name" validate:"required,min=5,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=255"`
}

type registerResp struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

const userExists = "User already registered."

// Register: create the user and hand back a token in the x-auth-token
// header.  Admins are never created here.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	email := repository.NormalizeEmail(req.Email)

	ctx, cancel := dbCtx(c)
	defer cancel()

	if _, err := h.Users.GetByEmail(ctx, email); err == nil {
		return badRequest(c, userExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return serverError(c, h.Log, err)
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return serverError(c, h.Log, err)
	}
	u := model.User{Name: req.Name, Email: email, Password: hash}
	if err := h.Users.Create(ctx, &u); err != nil {
		// Lost a race with a concurrent registration; the unique index caught it.
		if errors.Is(err, repository.ErrEmailExists) {
			return badRequest(c, userExists)
		}
		return serverError(c, h.Log, err)
	}

	tok, err := utils.NewAuthToken(h.Cfg.JWTSecret, utils.Claims{UserID: u.ID.Hex(), IsAdmin: u.IsAdmin}, h.Cfg.TokenTTLMin)
	if err != nil {
		return serverError(c, h.Log, err)
	}
	c.Response().Header().Set("x-auth-token", tok.Token)
	c.Response().Header().Add(echo.HeaderAccessControlExposeHeaders, "x-auth-token")
	return c.JSON(http.StatusOK, registerResp{ID: u.ID, Name: u.Name, Email: u.Email})
}

// Me: the caller's own record, without the password hash.
func (h *UserHandler) Me(c echo.Context) error {
	id, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token."})
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return notFound(c, "Cannot find the user you are looking for.")
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, u.Profile())
}
