package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/trip-booking/internal/model"
	"github.com/deppfellow/trip-booking/internal/server"
	"github.com/deppfellow/trip-booking/internal/service"
)

// TripHandler serves the trip listing and client registration routes.
type TripHandler struct {
	Handler
	tripService *service.TripService
}

func NewTripHandler(s *server.Server, tripService *service.TripService) *TripHandler {
	return &TripHandler{
		Handler:     NewHandler(s),
		tripService: tripService,
	}
}

// ListTrips handles GET /api/trips?page=&pageSize=.
func (h *TripHandler) ListTrips(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.ListTripsPayload) (*model.TripPage, error) {
			return h.tripService.ListTrips(c.Request().Context(), payload.Page, payload.PageSize)
		},
		http.StatusOK,
		model.NewListTripsPayload,
	)(c)
}

// AssignClientToTrip handles POST /api/trips/trips/:idTrip/clients.
func (h *TripHandler) AssignClientToTrip(c echo.Context) error {
	return Handle(
		h.Handler,
		func(c echo.Context, payload *model.AssignClientPayload) (*model.ClientTrip, error) {
			return h.tripService.AssignClient(c.Request().Context(), payload)
		},
		http.StatusOK,
		func() *model.AssignClientPayload { return &model.AssignClientPayload{} },
	)(c)
}
