package router // package router defines how HTTP routes are registered for the API

import (
	"context" // health probe signature

	"github.com/google/uuid"                        // request id generator
	"github.com/labstack/echo/v4"                   // import the Echo web framework to handle routing
	echomw "github.com/labstack/echo/v4/middleware" // echo's stock middleware (request id, recover)
	"github.com/sirupsen/logrus"                    // request logging

	"github.com/iliyamo/vidly-api/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/vidly-api/internal/middleware" // JWT, role, cache and logging middleware
)

// Handlers groups the endpoint implementations the router mounts.
type Handlers struct {
	Users     *handler.UserHandler
	Customers *handler.CustomerHandler
	Genres    *handler.GenreHandler
	Movies    *handler.MovieHandler
	Rentals   *handler.RentalHandler
}

// Deps carries what the middleware chain needs.  RateLimit and Cache may be
// nil, which switches the feature off.  Debug exposes internal error
// messages in responses and is off in production.
type Deps struct {
	JWTSecret   string
	Log         logrus.FieldLogger
	RateLimit   echo.MiddlewareFunc
	Cache       *middleware.ResponseCache
	HealthCheck func(ctx context.Context) error
	Debug       bool
}

// New builds the Echo instance with the global middleware and every route.
func New(d Deps, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = d.Debug

	// Request id first so the logger and error responses can see it.
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomw.Recover())

	RegisterRoutes(e, d.HealthCheck)

	api := e.Group("/api")
	if d.RateLimit != nil {
		api.Use(d.RateLimit)
	}
	RegisterAuth(api, h.Users, d.JWTSecret)
	RegisterCatalogue(api, h, d.JWTSecret, d.Cache)
	RegisterRentals(api, h.Rentals, d.JWTSecret, d.Cache)
	return e
}

// RegisterRoutes registers routes that live outside /api.  Currently it
// exposes only a health check for load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo, check func(ctx context.Context) error) {
	e.GET("/healthz", handler.Health(check))
}

// RegisterAuth registers login, registration and the caller's profile.
// Only /users/me needs a token.
func RegisterAuth(api *echo.Group, u *handler.UserHandler, jwtSecret string) {
	api.POST("/auth", u.Login)
	api.POST("/users", u.Register)
	api.GET("/users/me", u.Me, middleware.JWTAuth(jwtSecret))
}
