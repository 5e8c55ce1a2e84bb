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

type EventHandler struct {
	repo *repository.Events
}

func NewEventHandler(repo *repository.Events) *EventHandler {
	return &EventHandler{repo: repo}
}

func (h *EventHandler) List(c echo.Context) error {
	events, err := h.repo.List(c.Request().Context())
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetByID(c echo.Context) error {
	event, err := h.repo.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Event with supplied ID does not exist"})
	}
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Create(c echo.Context) error {
	var event models.Event
	if err := c.Bind(&event); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request"})
	}
	if err := c.Validate(&event); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "user_id is required"})
	}

	created, err := h.repo.Create(c.Request().Context(), event)
	switch {
	case errors.Is(err, repository.ErrOwnerRequired):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "user_id is required"})
	case errors.Is(err, repository.ErrOwnerNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User with supplied ID does not exist"})
	case err != nil:
		return internalError(c)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *EventHandler) Update(c echo.Context) error {
	var patch models.EventUpdate
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request"})
	}

	event, err := h.repo.Update(c.Request().Context(), c.Param("id"), patch)
	switch {
	case errors.Is(err, repository.ErrOwnerNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User with supplied ID does not exist"})
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Event with supplied ID does not exist"})
	case err != nil:
		return internalError(c)
	}
	return c.JSON(http.StatusOK, event)
}

func (h *EventHandler) Delete(c echo.Context) error {
	_, err := h.repo.Delete(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Event with supplied ID does not exist"})
	}
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Event deleted successfully"})
}

func (h *EventHandler) DeleteAll(c echo.Context) error {
	count, err := h.repo.DeleteAll(c.Request().Context())
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "No events found to delete"})
	}
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("All %d events deleted successfully", count),
	})
}

func (h *EventHandler) ListByUser(c echo.Context) error {
	events, err := h.repo.ListByUser(c.Request().Context(), c.Param("user_id"))
	if errors.Is(err, store.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "User with supplied ID does not exist"})
	}
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, events)
}
