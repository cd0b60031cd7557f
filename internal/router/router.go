// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/trip-booking/internal/handler"
	"github.com/deppfellow/trip-booking/internal/middleware"
	"github.com/deppfellow/trip-booking/internal/server"
)

// NewRouter builds the echo instance with the global middleware chain, the
// system routes and the /api routes.
//
// Order matters: the request id must exist before the context logger is
// built, and the New Relic transaction before the logger reads trace ids.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api", middlewares.RateLimit.Limit())
	registerTripRoutes(api, h)

	return router
}

func registerTripRoutes(api *echo.Group, h *handler.Handlers) {
	trips := api.Group("/trips")

	trips.GET("", h.Trip.ListTrips)
	trips.DELETE("/clients/:idClient", h.Client.DeleteClient)
	trips.POST("/trips/:idTrip/clients", h.Trip.AssignClientToTrip)
}
