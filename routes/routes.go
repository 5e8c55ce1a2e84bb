package routes

import (
	"event-planner-api/handlers"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, users *handlers.UserHandler, events *handlers.EventHandler, health *handlers.HealthHandler) {
	e.GET("/health", health.Health)
	e.GET("/ready", health.Readiness)
	e.GET("/live", health.Liveness)

	event := e.Group("/event")
	event.GET("/", events.List)
	event.GET("/:id", events.GetByID)
	event.POST("/new", events.Create)
	event.PUT("/:id", events.Update)
	event.PUT("/edit/:id", events.Update)
	event.DELETE("/:id", events.Delete)
	event.DELETE("/", events.DeleteAll)
	event.GET("/user/:user_id", events.ListByUser)

	user := e.Group("/user")
	user.POST("/signup", users.SignUp)
	user.POST("/signin", users.SignIn)
	user.POST("/me", users.Me)
	user.GET("/", users.List)
	user.GET("/:id", users.GetByID)
	user.PUT("/edit/:id", users.Update)
	user.DELETE("/:id", users.Delete)
	user.DELETE("/", users.DeleteAll)
}
