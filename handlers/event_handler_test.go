package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"event-planner-api/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEventMissingUserID(t *testing.T) {
	e := newServer()

	rec := doJSON(e, http.MethodPost, "/event/new", `{"title":"No owner"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateEventUnknownUserID(t *testing.T) {
	e := newServer()

	rec := doJSON(e, http.MethodPost, "/event/new", `{"title":"Ghost","user_id":"999"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User with supplied ID does not exist")
}

func TestGetEventNotFound(t *testing.T) {
	e := newServer()

	rec := doJSON(e, http.MethodGet, "/event/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteEventNotFound(t *testing.T) {
	e := newServer()

	rec := doJSON(e, http.MethodDelete, "/event/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAllEventsEmpty(t *testing.T) {
	e := newServer()

	rec := doJSON(e, http.MethodDelete, "/event/", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No events found to delete")
}

func TestListEventsByUnknownUser(t *testing.T) {
	e := newServer()

	rec := doJSON(e, http.MethodGet, "/event/user/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateEventViaEditAlias(t *testing.T) {
	e := newServer()
	userID := signUpAndSignIn(t, e, "a@x.com")

	rec := doJSON(e, http.MethodPost, "/event/new", `{"title":"Original","user_id":"`+userID+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// Both PUT forms must hit the same partial update.
	rec = doJSON(e, http.MethodPut, "/event/edit/"+created.ID, `{"title":"Renamed"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPut, "/event/"+created.ID, `{"location":"Online"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "Online", updated.Location)
}

// Runs the whole signup → signin → create → list-by-user flow over HTTP.
func TestEventLifecycleScenario(t *testing.T) {
	e := newServer()

	rec := doJSON(e, http.MethodPost, "/user/signup", `{"email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/user/signin", `{"email":"a@x.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodPost, "/user/signin", `{"email":"a@x.com","password":"p"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookieFrom(t, rec)
	userID := userIDFrom(t, rec)

	payload := `{
		"title": "FastAPI Book Launch",
		"image": "https://linktomyimage.com/image.png",
		"description": "Bring your own copy to win gifts!",
		"tags": ["python", "book", "launch"],
		"location": "Google Meet",
		"user_id": "` + userID + `"
	}`
	rec = doJSON(e, http.MethodPost, "/event/new", payload)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"python", "book", "launch"}, created.Tags)

	rec = doJSON(e, http.MethodGet, "/event/user/"+userID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []models.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// The session cookie resolves back to the profile, events included.
	rec = doJSON(e, http.MethodPost, "/user/me", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var profile models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, userID, profile.ID)
	require.Len(t, profile.Events, 1)
	assert.Equal(t, created.ID, profile.Events[0].ID)
}

func TestDeleteAllEventsRemovesEverything(t *testing.T) {
	e := newServer()
	userID := signUpAndSignIn(t, e, "a@x.com")

	for _, title := range []string{"one", "two"} {
		rec := doJSON(e, http.MethodPost, "/event/new", `{"title":"`+title+`","user_id":"`+userID+`"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(e, http.MethodDelete, "/event/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "All 2 events deleted successfully")

	rec = doJSON(e, http.MethodGet, "/event/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []models.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Empty(t, listed)
}

func signUpAndSignIn(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/user/signup", `{"email":"`+email+`","password":"p"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/user/signin", `{"email":"`+email+`","password":"p"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	return userIDFrom(t, rec)
}
