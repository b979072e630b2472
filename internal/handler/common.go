package handler // handler defines http handlers

import (
	"context"  // context bounds every database call
	"net/http" // http provides status code constants
	"strconv"  // strconv parses pagination parameters
	"time"     // time for the database timeout

	"github.com/labstack/echo/v4"                     // echo defines request context types
	"github.com/sirupsen/logrus"                      // logrus logs unexpected failures
	"go.mongodb.org/mongo-driver/bson/primitive"      // primitive parses ObjectId path params

	"github.com/iliyamo/vidly-api/internal/repository" // repository.Page for list queries
	"github.com/iliyamo/vidly-api/internal/validator"  // validator checks request DTOs
)

// dbTimeout bounds each database call made while serving a request.
const dbTimeout = 5 * time.Second

// maxPageSize caps the pageSize query parameter.
const maxPageSize = 100

// dbCtx derives the per-request database context.
func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// parseID reads the :id path parameter.  A malformed id can never match a
// document, so callers answer it with the same 404 as a missing one.
func parseID(c echo.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	return id, err == nil
}

// bindValid binds the JSON body into dst and validates it.  On failure the
// 400 response has already been written and ok is false; the caller returns
// err as is.
func bindValid(c echo.Context, dst any) (ok bool, err error) {
	if err := c.Bind(dst); err != nil {
		return false, badRequest(c, "Invalid request body.")
	}
	if fields := validator.ValidateStruct(dst); len(fields) > 0 {
		return false, c.JSON(http.StatusBadRequest, echo.Map{
			"error":  firstMessage(fields),
			"fields": fields,
		})
	}
	return true, nil
}

// firstMessage picks a deterministic message for the top-level error.
func firstMessage(fields map[string]string) string {
	var key string
	for k := range fields {
		if key == "" || k < key {
			key = k
		}
	}
	return fields[key]
}

// pageFrom reads the optional page/pageSize query parameters.  Both absent
// means no paging; a bad value is a 400 written by the caller.
func pageFrom(c echo.Context) (repository.Page, bool) {
	rawPage, rawSize := c.QueryParam("page"), c.QueryParam("pageSize")
	if rawPage == "" && rawSize == "" {
		return repository.Page{}, true
	}
	page, size := 1, 10
	var err error
	if rawPage != "" {
		if page, err = strconv.Atoi(rawPage); err != nil || page < 1 {
			return repository.Page{}, false
		}
	}
	if rawSize != "" {
		if size, err = strconv.Atoi(rawSize); err != nil || size < 1 || size > maxPageSize {
			return repository.Page{}, false
		}
	}
	return repository.Page{Skip: int64((page - 1) * size), Limit: int64(size)}, true
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": msg})
}

func invalidPage(c echo.Context) error {
	return badRequest(c, "Invalid page or pageSize.")
}

// serverError logs err with the request it broke and answers 500.
func serverError(c echo.Context, log logrus.FieldLogger, err error) error {
	log.WithError(err).WithFields(logrus.Fields{
		"method":     c.Request().Method,
		"path":       c.Request().URL.Path,
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	}).Error("unhandled failure")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Something failed."})
}

// callerID returns the authenticated user id put on the context by the JWT
// middleware.
func callerID(c echo.Context) (primitive.ObjectID, bool) {
	s, _ := c.Get("user_id").(string)
	id, err := primitive.ObjectIDFromHex(s)
	return id, err == nil
}
