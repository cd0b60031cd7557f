package model

import (
	"time"

	"github.com/deppfellow/trip-booking/internal/validation"
)

// Listing defaults and bounds.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListTripsPayload is bound from GET /api/trips?page=&pageSize=.
type ListTripsPayload struct {
	Page     int `query:"page" validate:"min=1"`
	PageSize int `query:"pageSize" validate:"min=1,max=100"`
}

// NewListTripsPayload returns the payload with default paging.
func NewListTripsPayload() *ListTripsPayload {
	return &ListTripsPayload{Page: DefaultPage, PageSize: DefaultPageSize}
}

func (p *ListTripsPayload) Validate() error {
	return validation.Struct(p)
}

// DeleteClientPayload is bound from DELETE /api/trips/clients/:idClient.
type DeleteClientPayload struct {
	ClientID int `param:"idClient" validate:"required,min=1"`
}

func (p *DeleteClientPayload) Validate() error {
	return validation.Struct(p)
}

// ClientPayload describes the client being registered. An existing client
// is matched by Pesel; the other fields are only used to create a new one.
type ClientPayload struct {
	FirstName string `json:"firstName" validate:"required,max=120"`
	LastName  string `json:"lastName" validate:"required,max=120"`
	Email     string `json:"email" validate:"required,max=120,email"`
	Telephone string `json:"telephone" validate:"required,max=120"`
	Pesel     string `json:"pesel" validate:"required,pesel"`
}

// ToClient builds the client row created for an unknown Pesel.
func (p ClientPayload) ToClient() *Client {
	return &Client{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Telephone: p.Telephone,
		Pesel:     p.Pesel,
	}
}

// AssignClientPayload is bound from POST /api/trips/trips/:idTrip/clients.
type AssignClientPayload struct {
	TripID      int           `param:"idTrip" json:"-" validate:"required,min=1"`
	Client      ClientPayload `json:"client"`
	PaymentDate *time.Time    `json:"paymentDate"`
}

func (p *AssignClientPayload) Validate() error {
	return validation.Struct(p)
}
