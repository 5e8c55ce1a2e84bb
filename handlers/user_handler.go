package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"event-planner-api/models"
	"event-planner-api/repository"
	"event-planner-api/store"

	"github.com/labstack/echo/v4"
)

// sessionCookie carries the signed-in user's opaque ID. Plain value,
// no signing or expiry, matching the source behavior.
const sessionCookie = "user_id"

type UserHandler struct {
	repo *repository.Users
}

func NewUserHandler(repo *repository.Users) *UserHandler {
	return &UserHandler{repo: repo}
}

func (h *UserHandler) SignUp(c echo.Context) error {
	var in models.UserSignIn
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request"})
	}
	if err := c.Validate(&in); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "A valid email and password are required"})
	}

	if _, err := h.repo.SignUp(c.Request().Context(), in); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "User with email provided exists already"})
		}
		return internalError(c)
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "User created successfully"})
}

func (h *UserHandler) SignIn(c echo.Context) error {
	var in models.UserSignIn
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request"})
	}
	if err := c.Validate(&in); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "A valid email and password are required"})
	}

	user, err := h.repo.SignIn(c.Request().Context(), in)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User with email does not exist"})
	case errors.Is(err, repository.ErrWrongPassword):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid details passed"})
	case err != nil:
		return internalError(c)
	}

	c.SetCookie(&http.Cookie{
		Name:  sessionCookie,
		Value: user.ID,
		Path:  "/",
	})
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Me(c echo.Context) error {
	cookie, err := c.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "You're not signed in"})
	}

	user, err := h.repo.Profile(c.Request().Context(), cookie.Value)
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "User does not exist"})
	}
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.repo.List(c.Request().Context())
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := h.repo.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User with supplied ID does not exist"})
	}
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c echo.Context) error {
	var patch models.UserUpdate
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request"})
	}
	if err := c.Validate(&patch); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "A valid email is required"})
	}

	user, err := h.repo.Update(c.Request().Context(), c.Param("id"), patch)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User with supplied ID does not exist"})
	case errors.Is(err, repository.ErrEmailTaken):
		return c.JSON(http.StatusConflict, echo.Map{"error": "User with email provided exists already"})
	case err != nil:
		return internalError(c)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c echo.Context) error {
	_, err := h.repo.Delete(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User with supplied ID does not exist"})
	}
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted successfully"})
}

func (h *UserHandler) DeleteAll(c echo.Context) error {
	count, err := h.repo.DeleteAll(c.Request().Context())
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No users found to delete"})
	}
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("All %d users deleted successfully", count),
	})
}

func internalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
}
