package handler

import (
	"errors"   // errors.Is on repository sentinels
	"net/http" // HTTP status codes

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/vidly-api/internal/repository" // user lookups
	"github.com/iliyamo/vidly-api/internal/utils"      // password check and token issuing
)

type loginReq struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=255"`
}

// Unknown email and wrong password share one message so the endpoint does
// not reveal which accounts exist.
const badCredentials = "Invalid email or password."

// Login: verify credentials and answer the token as plain text.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx, cancel := dbCtx(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, repository.NormalizeEmail(req.Email))
	if errors.Is(err, repository.ErrNotFound) {
		return badRequest(c, badCredentials)
	}
	if err != nil {
		return serverError(c, h.Log, err)
	}
	if !utils.VerifyPassword(u.Password, req.Password) {
		return badRequest(c, badCredentials)
	}

	tok, err := utils.NewAuthToken(h.Cfg.JWTSecret, utils.Claims{UserID: u.ID.Hex(), IsAdmin: u.IsAdmin}, h.Cfg.TokenTTLMin)
	if err != nil {
		return serverError(c, h.Log, err)
	}
	return c.String(http.StatusOK, tok.Token)
}
