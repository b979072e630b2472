package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vidly-api/internal/middleware" // JWT + role + cache middlewares
)

// resource is the set of handlers every catalogue collection exposes.
type resource interface {
	List(c echo.Context) error
	Get(c echo.Context) error
	Create(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
}

// RegisterCatalogue registers customers, genres and movies.  Reads are
// public and cached; creating and updating need a token; deleting needs an
// admin token.  A successful write drops the cached reads of its resource.
func RegisterCatalogue(api *echo.Group, h Handlers, jwtSecret string, cache *middleware.ResponseCache) {
	auth := middleware.JWTAuth(jwtSecret)
	admin := middleware.RequireAdmin()

	mount := func(name string, r resource) {
		g := api.Group("/" + name)
		read := cache.Read(name)
		drop := cache.Invalidate(name)

		g.GET("", r.List, read)
		g.GET("/:id", r.Get, read)
		g.POST("", r.Create, auth, drop)
		g.PUT("/:id", r.Update, auth, drop)
		g.DELETE("/:id", r.Delete, auth, admin, drop)
	}
	mount("customers", h.Customers)
	mount("genres", h.Genres)
	mount("movies", h.Movies)
}
