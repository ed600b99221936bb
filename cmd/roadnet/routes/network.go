package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/gridworks/roadnet/cmd/roadnet/container"
	"github.com/gridworks/roadnet/cmd/roadnet/handlers"
)

// RegisterNetworkRoutes registers all network-related routes
func RegisterNetworkRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewNetworkHandler(c.NetworkService)

	networks := e.Group("/api/v1/networks")
	{
		networks.POST("", h.Create)          // POST /api/v1/networks
		networks.GET("", h.Get)              // GET /api/v1/networks?id=&name=
		networks.POST("/versions", h.Append) // POST /api/v1/networks/versions
		networks.GET("/edges", h.Edges)      // GET /api/v1/networks/edges?network_id=&network_name=&version=
	}
}
