package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vidly-api/internal/handler"
	"github.com/iliyamo/vidly-api/internal/middleware"
)

// RegisterRentals registers rentals and returns.  Checkouts and returns
// move stock, so they invalidate cached movies along with cached rentals.
func RegisterRentals(api *echo.Group, r *handler.RentalHandler, jwtSecret string, cache *middleware.ResponseCache) {
	auth := middleware.JWTAuth(jwtSecret)
	read := cache.Read("rentals")
	drop := cache.Invalidate("rentals", "movies")

	api.GET("/rentals", r.List, read)
	api.GET("/rentals/:id", r.Get, read)
	api.POST("/rentals", r.Create, auth, drop)
	api.POST("/returns", r.Return, auth, drop)
}
