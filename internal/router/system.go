package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/trip-booking/internal/handler"
)

// registerSystemRoutes registers the endpoints outside the business API:
// health, docs UI and the static assets the docs page loads.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", "static")

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
