package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"event-planner-api/handlers"
	"event-planner-api/repository"
	"event-planner-api/routes"
	"event-planner-api/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer() *echo.Echo {
	return newServerWithStorageCheck(func() error { return nil })
}

func newServerWithStorageCheck(storageCheck func() error) *echo.Echo {
	userStore := store.NewMemoryUserStore()
	eventStore := store.NewMemoryEventStore()
	userRepo := repository.NewUsers(userStore, eventStore, nil)
	eventRepo := repository.NewEvents(eventStore, userStore, nil)

	e := echo.New()
	e.Validator = handlers.NewValidator()
	routes.RegisterRoutes(
		e,
		handlers.NewUserHandler(userRepo),
		handlers.NewEventHandler(eventRepo),
		handlers.NewHealthHandler(storageCheck),
	)
	return e
}

func doJSON(e *echo.Echo, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSignUpCreated(t *testing.T) {
	e := newServer()

	rec := doJSON(e, http.MethodPost, "/user/signup", `{"email":"a@x.com","password":"p"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "User created successfully")
}

func TestSignUpDuplicateEmailConflict(t *testing.T) {
	e := newServer()

	rec := doJSON(e, http.MethodPost, "/user/signup", `{"email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/user/signup", `{"email":"a@x.com","password":"other"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSignUpRejectsInvalidEmail(t *testing.T) {
	e := newServer()

	rec := doJSON(e, http.MethodPost, "/user/signup", `{"email":"not-an-email","password":"p"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSignInUnknownEmail(t *testing.T) {
	e := newServer()

	rec := doJSON(e, http.MethodPost, "/user/signin", `{"email":"a@x.com","password":"p"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSignInSetsSessionCookie(t *testing.T) {
	e := newServer()

	rec := doJSON(e, http.MethodPost, "/user/signup", `{"email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/user/signin", `{"email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookieFrom(t, rec)
	assert.NotEmpty(t, cookie.Value)
	assert.NotContains(t, rec.Body.String(), `"password"`)
}

func TestMeWithoutCookie(t *testing.T) {
	e := newServer()

	rec := doJSON(e, http.MethodPost, "/user/me", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "not signed in")
}

func TestMeWithStaleCookie(t *testing.T) {
	e := newServer()

	rec := doJSON(e, http.MethodPost, "/user/me", "", &http.Cookie{Name: "user_id", Value: "999"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "User does not exist")
}

func TestGetUserNotFound(t *testing.T) {
	e := newServer()

	rec := doJSON(e, http.MethodGet, "/user/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	e := newServer()

	require.Equal(t, http.StatusCreated,
		doJSON(e, http.MethodPost, "/user/signup", `{"email":"a@x.com","password":"p"}`).Code)
	require.Equal(t, http.StatusCreated,
		doJSON(e, http.MethodPost, "/user/signup", `{"email":"b@x.com","password":"p"}`).Code)

	rec := doJSON(e, http.MethodPost, "/user/signin", `{"email":"b@x.com","password":"p"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	id := userIDFrom(t, rec)

	rec = doJSON(e, http.MethodPut, "/user/edit/"+id, `{"email":"a@x.com"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteAllUsersEmpty(t *testing.T) {
	e := newServer()

	rec := doJSON(e, http.MethodDelete, "/user/", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No users found to delete")
}

func TestHealthUnhealthyStorage(t *testing.T) {
	e := newServerWithStorageCheck(func() error { return errors.New("connection refused") })

	rec := doJSON(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = doJSON(e, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthHealthy(t *testing.T) {
	e := newServer()

	rec := doJSON(e, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/live", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "user_id" {
			return cookie
		}
	}
	t.Fatal("no user_id cookie in response")
	return nil
}

func userIDFrom(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.ID)
	return body.ID
}
