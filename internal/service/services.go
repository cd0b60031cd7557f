package service

import (
	"github.com/deppfellow/trip-booking/internal/repository"
)

// Services groups the business services handed to handlers.
type Services struct {
	Trip   *TripService
	Client *ClientService
}

func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		Trip:   NewTripService(repos),
		Client: NewClientService(repos),
	}
}
