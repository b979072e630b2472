package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// RequestLogger writes one entry per request.  Server errors log at error
// level, client errors at warn, everything else at info.
func RequestLogger(log logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Let echo write the response so the status below is final.
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			entry := log.WithFields(logrus.Fields{
				"method":     req.Method,
				"path":       req.URL.Path,
				"status":     res.Status,
				"latency_ms": time.Since(start).Milliseconds(),
				"ip":         c.RealIP(),
				"request_id": res.Header().Get(echo.HeaderXRequestID),
				"user":       userID(c),
			})
			switch {
			case res.Status >= 500:
				entry.Error("request failed")
			case res.Status >= 400:
				entry.Warn("request rejected")
			default:
				entry.Info("request served")
			}
			return nil
		}
	}
}
