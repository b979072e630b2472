package handler // declare the package name; contains HTTP handlers

import (
	"context"  // context bounds the dependency check
	"net/http" // net/http provides status codes and response helpers
	"time"     // time for the check timeout

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health returns the health-check endpoint used by load balancers and
// monitoring systems.  check, when set, probes the database; a failing probe
// turns the answer into 503 so the instance is taken out of rotation.
func Health(check func(ctx context.Context) error) echo.HandlerFunc {
	return func(c echo.Context) error {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				return c.String(http.StatusServiceUnavailable, "database unavailable")
			}
		}
		return c.String(http.StatusOK, "ok")
	}
}
