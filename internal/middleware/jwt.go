package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/vidly-api/internal/utils" // token parsing
)

// TokenHeader is the header clients send the auth token in.  The same
// header carries the token back on registration.
const TokenHeader = "x-auth-token"

// Roles stored on the context under "role".
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// JWTAuth returns an Echo middleware that validates the auth token and
// injects its claims into the request context.  The token is read from the
// x-auth-token header, falling back to an "Authorization: Bearer" header.
// Handlers read the caller via c.Get("user_id") (hex ObjectId string) and
// c.Get("role") ("admin" or "user").
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c.Request())
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Access denied. No token provided."})
			}
			claims, err := utils.ParseAuthToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid token."})
			}

			role := RoleUser
			if claims.IsAdmin {
				role = RoleAdmin
			}
			c.Set("user_id", claims.UserID)
			c.Set("role", role)
			return next(c)
		}
	}
}

func tokenFromRequest(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get(TokenHeader)); t != "" {
		return t
	}
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
