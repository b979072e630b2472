package middleware

// identity.go holds the caller lookup shared by the rate limiter and the
// request logger.  JWTAuth only runs on protected routes, so a public
// request has no user and is reported as "guest".

import (
	"github.com/labstack/echo/v4"
)

// userID returns the authenticated user id stored by JWTAuth, or "guest".
func userID(c echo.Context) string {
	if v, ok := c.Get("user_id").(string); ok && v != "" {
		return v
	}
	return "guest"
}
