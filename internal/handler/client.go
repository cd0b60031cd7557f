package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/trip-booking/internal/model"
	"github.com/deppfellow/trip-booking/internal/server"
	"github.com/deppfellow/trip-booking/internal/service"
)

type ClientHandler struct {
	Handler
	clientService *service.ClientService
}

func NewClientHandler(s *server.Server, clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{
		Handler:       NewHandler(s),
		clientService: clientService,
	}
}

// DeleteClient handles DELETE /api/trips/clients/:idClient.
func (h *ClientHandler) DeleteClient(c echo.Context) error {
	return HandleNoContent(
		h.Handler,
		func(c echo.Context, payload *model.DeleteClientPayload) error {
			return h.clientService.DeleteClient(c.Request().Context(), payload.ClientID)
		},
		http.StatusNoContent,
		func() *model.DeleteClientPayload { return &model.DeleteClientPayload{} },
	)(c)
}
