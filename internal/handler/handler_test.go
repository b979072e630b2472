package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/vidly-api/internal/config"
	"github.com/iliyamo/vidly-api/internal/logging"
	"github.com/iliyamo/vidly-api/internal/middleware"
	"github.com/iliyamo/vidly-api/internal/model"
	"github.com/iliyamo/vidly-api/internal/service"
	"github.com/iliyamo/vidly-api/internal/utils"
)

const testSecret = "handler-test-secret"

type testAPI struct {
	e         *echo.Echo
	customers memCustomers
	genres    memGenres
	movies    memMovies
	rentals   memRentals
	users     memUsers
	svc       *service.RentalService
	clock     time.Time
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	a := &testAPI{
		e:         echo.New(),
		customers: newMemCustomers(),
		genres:    newMemGenres(),
		movies:    newMemMovies(),
		rentals:   newMemRentals(),
		users:     newMemUsers(),
		clock:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	log := logging.Discard()
	cfg := config.Config{JWTSecret: testSecret, BcryptCost: 4}
	svc := &service.RentalService{
		Customers: a.customers,
		Movies:    a.movies,
		Rentals:   a.rentals,
		Log:       log,
		Now:       func() time.Time { return a.clock },
	}
	a.svc = svc

	users := NewUserHandler(cfg, a.users, log)
	customers := NewCustomerHandler(a.customers, log)
	genres := NewGenreHandler(a.genres, log)
	movies := NewMovieHandler(a.movies, a.genres, log)
	rentals := NewRentalHandler(a.rentals, svc, log)

	auth := middleware.JWTAuth(testSecret)
	admin := middleware.RequireAdmin()

	api := a.e.Group("/api")
	api.POST("/auth", users.Login)
	api.POST("/users", users.Register)
	api.GET("/users/me", users.Me, auth)

	crud := func(path string, list, get, create, update, del echo.HandlerFunc) {
		g := api.Group(path)
		g.GET("", list)
		g.GET("/:id", get)
		g.POST("", create, auth)
		g.PUT("/:id", update, auth)
		g.DELETE("/:id", del, auth, admin)
	}
	crud("/customers", customers.List, customers.Get, customers.Create, customers.Update, customers.Delete)
	crud("/genres", genres.List, genres.Get, genres.Create, genres.Update, genres.Delete)
	crud("/movies", movies.List, movies.Get, movies.Create, movies.Update, movies.Delete)

	api.GET("/rentals", rentals.List)
	api.GET("/rentals/:id", rentals.Get)
	api.POST("/rentals", rentals.Create, auth)
	api.POST("/returns", rentals.Return, auth)
	return a
}

func (a *testAPI) token(t *testing.T, admin bool) string {
	t.Helper()
	tok, err := utils.NewAuthToken(testSecret, utils.Claims{UserID: primitive.NewObjectID().Hex(), IsAdmin: admin}, 0)
	require.NoError(t, err)
	return tok.Token
}

func (a *testAPI) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]any](t, rec)["error"].(string)
}

func (a *testAPI) seedGenre(t *testing.T, name string) model.Genre {
	t.Helper()
	g := model.Genre{Name: name}
	require.NoError(t, a.genres.insert(&g))
	return g
}

func (a *testAPI) seedMovie(t *testing.T, stock int, rate float64) model.Movie {
	t.Helper()
	g := a.seedGenre(t, "Action")
	m := model.Movie{Title: "Terminator", NumberInStock: stock, DailyRentalRate: rate, Genre: g.Snapshot()}
	require.NoError(t, a.movies.insert(&m))
	return m
}

func (a *testAPI) seedCustomer(t *testing.T) model.Customer {
	t.Helper()
	c := model.Customer{Name: "Customer One", Phone: "123456"}
	require.NoError(t, a.customers.insert(&c))
	return c
}

// ----- validation -----

func TestNameLengthBoundsForEveryResource(t *testing.T) {
	a := newTestAPI(t)
	tok := a.token(t, false)
	g := a.seedGenre(t, "Comedy")

	long := strings.Repeat("a", 51)
	cases := []struct{ path, body string }{
		{"/api/genres", `{"name":"abcd"}`},
		{"/api/genres", `{"name":"` + long + `"}`},
		{"/api/customers", `{"name":"abcd","phone":"12345"}`},
		{"/api/customers", `{"name":"` + long + `","phone":"12345"}`},
		{"/api/customers", `{"name":"abcde","phone":"1234"}`},
		{"/api/movies", `{"title":"abcd","genreId":"` + g.ID.Hex() + `","numberInStock":1,"dailyRentalRate":1}`},
		{"/api/movies", `{"title":"` + strings.Repeat("a", 256) + `","genreId":"` + g.ID.Hex() + `","numberInStock":1,"dailyRentalRate":1}`},
		{"/api/movies", `{"title":"abcde","genreId":"` + g.ID.Hex() + `","numberInStock":256,"dailyRentalRate":1}`},
		{"/api/users", `{"name":"abcd","email":"x@y.com","password":"12345678"}`},
		{"/api/users", `{"name":"abcde","email":"x@y.com","password":"1234567"}`},
	}
	for _, tc := range cases {
		rec := a.do(http.MethodPost, tc.path, tok, tc.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%s %s", tc.path, tc.body)
		assert.NotEmpty(t, decode[map[string]any](t, rec)["fields"], tc.body)
	}
}

func TestValidationReportsJSONFieldNames(t *testing.T) {
	a := newTestAPI(t)
	rec := a.do(http.MethodPost, "/api/genres", a.token(t, false), `{"name":"abc"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]any](t, rec)
	fields := body["fields"].(map[string]any)
	assert.Equal(t, "The field 'name' must be at least 5.", fields["name"])
	assert.Equal(t, fields["name"], body["error"])
}

// ----- auth and roles -----

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := newTestAPI(t)
	id := primitive.NewObjectID().Hex()
	for _, r := range []struct{ method, path string }{
		{http.MethodPost, "/api/genres"},
		{http.MethodPut, "/api/genres/" + id},
		{http.MethodDelete, "/api/genres/" + id},
		{http.MethodPost, "/api/customers"},
		{http.MethodPost, "/api/movies"},
		{http.MethodPost, "/api/rentals"},
		{http.MethodPost, "/api/returns"},
		{http.MethodGet, "/api/users/me"},
	} {
		rec := a.do(r.method, r.path, "", `{}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", r.method, r.path)
	}

	rec := a.do(http.MethodPost, "/api/genres", "garbage", `{"name":"genre1"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteRequiresAdmin(t *testing.T) {
	a := newTestAPI(t)
	g := a.seedGenre(t, "Drama1")

	rec := a.do(http.MethodDelete, "/api/genres/"+g.ID.Hex(), a.token(t, false), "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = a.do(http.MethodDelete, "/api/genres/"+g.ID.Hex(), a.token(t, true), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Drama1", decode[model.Genre](t, rec).Name)

	rec = a.do(http.MethodGet, "/api/genres/"+g.ID.Hex(), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ----- lookups -----

func TestUnknownAndMalformedIDsAre404(t *testing.T) {
	a := newTestAPI(t)
	admin := a.token(t, true)
	for _, res := range []string{"genres", "customers", "movies", "rentals"} {
		for _, id := range []string{primitive.NewObjectID().Hex(), "1", "not-an-object-id"} {
			rec := a.do(http.MethodGet, "/api/"+res+"/"+id, "", "")
			assert.Equal(t, http.StatusNotFound, rec.Code, "GET %s/%s", res, id)
			if res != "rentals" {
				rec = a.do(http.MethodDelete, "/api/"+res+"/"+id, admin, "")
				assert.Equal(t, http.StatusNotFound, rec.Code, "DELETE %s/%s", res, id)
			}
		}
	}
	rec := a.do(http.MethodPut, "/api/genres/1", a.token(t, false), `{"name":"genre1"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetIsRepeatable(t *testing.T) {
	a := newTestAPI(t)
	a.seedGenre(t, "Genre B")
	a.seedGenre(t, "Genre A")

	first := a.do(http.MethodGet, "/api/genres", "", "")
	second := a.do(http.MethodGet, "/api/genres", "", "")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())

	genres := decode[[]model.Genre](t, first)
	require.Len(t, genres, 2)
	assert.Equal(t, "Genre A", genres[0].Name)
}

func TestListPagination(t *testing.T) {
	a := newTestAPI(t)
	for _, n := range []string{"Genre 1", "Genre 2", "Genre 3"} {
		a.seedGenre(t, n)
	}
	rec := a.do(http.MethodGet, "/api/genres?page=2&pageSize=2", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	genres := decode[[]model.Genre](t, rec)
	require.Len(t, genres, 1)
	assert.Equal(t, "Genre 3", genres[0].Name)

	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/api/genres?pageSize=101", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, a.do(http.MethodGet, "/api/genres?page=0", "", "").Code)

	empty := a.do(http.MethodGet, "/api/movies", "", "")
	require.Equal(t, http.StatusOK, empty.Code)
	assert.JSONEq(t, `[]`, empty.Body.String())
}

// ----- CRUD -----

func TestCustomerCreateAndUpdate(t *testing.T) {
	a := newTestAPI(t)
	tok := a.token(t, false)

	rec := a.do(http.MethodPost, "/api/customers", tok, `{"name":"Jane Doe","phone":"0123456"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[model.Customer](t, rec)
	assert.False(t, created.ID.IsZero())
	assert.False(t, created.IsGold)

	rec = a.do(http.MethodPut, "/api/customers/"+created.ID.Hex(), tok, `{"name":"Jane Smith","phone":"0123456","isGold":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[model.Customer](t, rec)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Jane Smith", updated.Name)
	assert.True(t, updated.IsGold)

	rec = a.do(http.MethodPut, "/api/customers/"+primitive.NewObjectID().Hex(), tok, `{"name":"Jane Smith","phone":"0123456"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMovieGenreSnapshot(t *testing.T) {
	a := newTestAPI(t)
	tok := a.token(t, false)
	g := a.seedGenre(t, "Thriller")

	rec := a.do(http.MethodPost, "/api/movies", tok,
		`{"title":"Movie One","genreId":"`+primitive.NewObjectID().Hex()+`","numberInStock":3,"dailyRentalRate":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid genre.", errorOf(t, rec))

	rec = a.do(http.MethodPost, "/api/movies", tok,
		`{"title":"Movie One","genreId":"`+g.ID.Hex()+`","numberInStock":3,"dailyRentalRate":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	m := decode[model.Movie](t, rec)
	assert.Equal(t, model.GenreSnapshot{ID: g.ID, Name: "Thriller"}, m.Genre)
	assert.Equal(t, 3, m.NumberInStock)

	// Renaming the genre does not reach into the movie.
	rec = a.do(http.MethodPut, "/api/genres/"+g.ID.Hex(), tok, `{"name":"Suspense"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = a.do(http.MethodGet, "/api/movies/"+m.ID.Hex(), "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Thriller", decode[model.Movie](t, rec).Genre.Name)

	// Zero stock is a valid value, a missing one is not.
	rec = a.do(http.MethodPut, "/api/movies/"+m.ID.Hex(), tok,
		`{"title":"Movie One","genreId":"`+g.ID.Hex()+`","numberInStock":0,"dailyRentalRate":2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decode[model.Movie](t, rec).NumberInStock)
	rec = a.do(http.MethodPut, "/api/movies/"+m.ID.Hex(), tok, `{"title":"Movie One","genreId":"`+g.ID.Hex()+`","dailyRentalRate":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStoreFailureIs500(t *testing.T) {
	a := newTestAPI(t)
	a.genres.fail = errors.New("connection reset")

	rec := a.do(http.MethodGet, "/api/genres", "", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Something failed.", errorOf(t, rec))
}

// ----- users -----

func TestRegisterLoginAndMe(t *testing.T) {
	a := newTestAPI(t)
	body := `{"name":"Finn Huynh","email":"a@b.com","password":"12345678"}`

	rec := a.do(http.MethodPost, "/api/users", "", body)
	require.Equal(t, http.StatusOK, rec.Code)
	tok := rec.Header().Get("x-auth-token")
	require.NotEmpty(t, tok)
	resp := decode[map[string]any](t, rec)
	assert.Equal(t, "Finn Huynh", resp["name"])
	assert.Equal(t, "a@b.com", resp["email"])
	assert.NotEmpty(t, resp["_id"])
	assert.NotContains(t, resp, "password")

	claims, err := utils.ParseAuthToken(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, resp["_id"], claims.UserID)
	assert.False(t, claims.IsAdmin)

	rec = a.do(http.MethodPost, "/api/users", "", `{"name":"Finn Huynh","email":" A@B.com ","password":"12345678"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodPost, "/api/users", "", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already registered.", errorOf(t, rec))

	rec = a.do(http.MethodPost, "/api/auth", "", `{"email":"a@b.com","password":"12345678"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMETextPlain))
	loginTok := rec.Body.String()
	_, err = utils.ParseAuthToken(testSecret, loginTok)
	require.NoError(t, err)

	rec = a.do(http.MethodPost, "/api/auth", "", `{"email":"a@b.com","password":"wrongpass"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email or password.", errorOf(t, rec))
	rec = a.do(http.MethodPost, "/api/auth", "", `{"email":"nobody@b.com","password":"12345678"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = a.do(http.MethodPost, "/api/auth", "", `{"email":"nobody"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = a.do(http.MethodGet, "/api/users/me", loginTok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[map[string]any](t, rec)
	assert.Equal(t, "a@b.com", me["email"])
	assert.Equal(t, false, me["isAdmin"])
	assert.NotContains(t, me, "password")
}

func TestRegisterAndLoginWithLongPasswords(t *testing.T) {
	a := newTestAPI(t)
	for i, n := range []int{72, 73, 100, 255} {
		email := fmt.Sprintf("user%d@b.com", i)
		password := strings.Repeat("x", n-1) + "!"
		rec := a.do(http.MethodPost, "/api/users", "",
			fmt.Sprintf(`{"name":"Finn Huynh","email":%q,"password":%q}`, email, password))
		require.Equal(t, http.StatusOK, rec.Code, "register with %d characters: %s", n, rec.Body.String())

		rec = a.do(http.MethodPost, "/api/auth", "", fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
		require.Equal(t, http.StatusOK, rec.Code, "login with %d characters", n)

		rec = a.do(http.MethodPost, "/api/auth", "", fmt.Sprintf(`{"email":%q,"password":%q}`, email, strings.Repeat("x", n)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "wrong last character with %d characters", n)
	}

	rec := a.do(http.MethodPost, "/api/users", "",
		fmt.Sprintf(`{"name":"Finn Huynh","email":"long@b.com","password":%q}`, strings.Repeat("x", 256)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeForDeletedUser(t *testing.T) {
	a := newTestAPI(t)
	rec := a.do(http.MethodGet, "/api/users/me", a.token(t, false), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ----- rentals and returns -----

func TestCheckoutAndReturn(t *testing.T) {
	a := newTestAPI(t)
	tok := a.token(t, false)
	c := a.seedCustomer(t)
	m := a.seedMovie(t, 5, 2)
	body := `{"customerId":"` + c.ID.Hex() + `","movieId":"` + m.ID.Hex() + `"}`

	rec := a.do(http.MethodPost, "/api/returns", tok, body)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Rental not found.", errorOf(t, rec))

	rec = a.do(http.MethodPost, "/api/rentals", tok, body)
	require.Equal(t, http.StatusOK, rec.Code)
	rental := decode[map[string]any](t, rec)
	assert.Equal(t, c.Name, rental["customer"].(map[string]any)["name"])
	assert.Equal(t, m.Title, rental["movie"].(map[string]any)["title"])
	assert.NotContains(t, rental, "dateReturned")
	assert.NotContains(t, rental, "rentalFee")

	stored, err := a.movies.get(m.ID)
	require.NoError(t, err)
	require.Equal(t, 4, stored.NumberInStock)

	a.clock = a.clock.Add(7 * 24 * time.Hour)
	rec = a.do(http.MethodPost, "/api/returns", tok, body)
	require.Equal(t, http.StatusOK, rec.Code)
	returned := decode[map[string]any](t, rec)
	for _, k := range []string{"dateOut", "dateReturned", "rentalFee", "customer", "movie"} {
		assert.Contains(t, returned, k)
	}
	assert.Equal(t, 14.0, returned["rentalFee"])

	stored, err = a.movies.get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.NumberInStock)

	rec = a.do(http.MethodPost, "/api/returns", tok, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Return already processed.", errorOf(t, rec))

	rec = a.do(http.MethodGet, "/api/rentals/"+returned["_id"].(string), "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 14.0, decode[map[string]any](t, rec)["rentalFee"])
}

// racedRentals closes the rental between the open lookup and the
// conditional update, the way a concurrent return would.
type racedRentals struct {
	memRentals
	at time.Time
}

func (s racedRentals) MarkReturned(ctx context.Context, r *model.Rental) error {
	_, err := s.update(r.ID, func(d *model.Rental) error { return d.Return(s.at) })
	if err != nil {
		return err
	}
	return s.memRentals.MarkReturned(ctx, r)
}

func TestConcurrentReturnIsRejected(t *testing.T) {
	a := newTestAPI(t)
	tok := a.token(t, false)
	c := a.seedCustomer(t)
	m := a.seedMovie(t, 1, 2)
	body := `{"customerId":"` + c.ID.Hex() + `","movieId":"` + m.ID.Hex() + `"}`

	rec := a.do(http.MethodPost, "/api/rentals", tok, body)
	require.Equal(t, http.StatusOK, rec.Code)

	a.svc.Rentals = racedRentals{memRentals: a.rentals, at: a.clock.Add(time.Hour)}
	a.clock = a.clock.Add(2 * 24 * time.Hour)

	rec = a.do(http.MethodPost, "/api/returns", tok, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Return already processed.", errorOf(t, rec))

	stored, err := a.movies.get(m.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.NumberInStock)
}

func TestCheckoutRejections(t *testing.T) {
	a := newTestAPI(t)
	tok := a.token(t, false)
	c := a.seedCustomer(t)
	m := a.seedMovie(t, 0, 2)
	unknown := primitive.NewObjectID().Hex()

	cases := []struct{ body, msg string }{
		{`{"customerId":"` + unknown + `","movieId":"` + m.ID.Hex() + `"}`, "Invalid customer."},
		{`{"customerId":"` + c.ID.Hex() + `","movieId":"` + unknown + `"}`, "Invalid movie."},
		{`{"customerId":"` + c.ID.Hex() + `","movieId":"` + m.ID.Hex() + `"}`, "Movie not in stock."},
	}
	for _, tc := range cases {
		rec := a.do(http.MethodPost, "/api/rentals", tok, tc.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tc.body)
		assert.Equal(t, tc.msg, errorOf(t, rec))
	}

	rec := a.do(http.MethodPost, "/api/rentals", tok, `{"customerId":"123","movieId":"`+m.ID.Hex()+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[map[string]any](t, rec)["fields"], "customerId")

	rec = a.do(http.MethodPost, "/api/returns", tok, `{"movieId":"`+m.ID.Hex()+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	list := a.do(http.MethodGet, "/api/rentals", "", "")
	require.Equal(t, http.StatusOK, list.Code)
	assert.JSONEq(t, `[]`, list.Body.String())
}

// ----- health -----

func TestHealth(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, Health(nil)(e.NewContext(httptest.NewRequest(http.MethodGet, "/healthz", nil), rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	failing := func(context.Context) error { return errors.New("down") }
	require.NoError(t, Health(failing)(e.NewContext(httptest.NewRequest(http.MethodGet, "/healthz", nil), rec)))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
