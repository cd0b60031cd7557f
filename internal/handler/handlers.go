package handler

import (
	"github.com/deppfellow/trip-booking/internal/server"
	"github.com/deppfellow/trip-booking/internal/service"
)

// Handlers groups every HTTP handler so the router receives one object.
type Handlers struct {
	Health  *HealthHandler  // GET /status
	OpenAPI *OpenAPIHandler // GET /docs
	Trip    *TripHandler
	Client  *ClientHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Trip:    NewTripHandler(s, services.Trip),
		Client:  NewClientHandler(s, services.Client),
	}
}
