package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/gridworks/roadnet/cmd/roadnet/container"
	"github.com/gridworks/roadnet/cmd/roadnet/handlers"
)

// RegisterAuthRoutes registers registration and session routes
func RegisterAuthRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewAuthHandler(c.AuthService)

	e.POST("/api/v1/users", h.Register) // POST /api/v1/users

	sessions := e.Group("/api/v1/sessions")
	{
		sessions.POST("", h.Login)    // POST /api/v1/sessions
		sessions.DELETE("", h.Logout) // DELETE /api/v1/sessions
	}
}
