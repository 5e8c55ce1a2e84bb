package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Service   string                 `json:"service"`
	Checks    map[string]HealthCheck `json:"checks"`
}

type HealthCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthHandler reports service health. The storage check is injected
// so it pings whichever backend the process was started with.
type HealthHandler struct {
	storageCheck func() error
}

func NewHealthHandler(storageCheck func() error) *HealthHandler {
	return &HealthHandler{storageCheck: storageCheck}
}

func (h *HealthHandler) Health(c echo.Context) error {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Service:   "event-planner-api",
		Checks:    make(map[string]HealthCheck),
	}

	if err := h.storageCheck(); err != nil {
		response.Checks["storage"] = HealthCheck{
			Status:  "unhealthy",
			Message: err.Error(),
		}
		response.Status = "unhealthy"
	} else {
		response.Checks["storage"] = HealthCheck{Status: "healthy"}
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}
	return c.JSON(statusCode, response)
}

// Readiness checks if the service is ready to accept traffic.
func (h *HealthHandler) Readiness(c echo.Context) error {
	if err := h.storageCheck(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"ready":   false,
			"message": "Storage not ready",
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"ready": true})
}

// Liveness checks if the service is alive.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"alive": true})
}
