// Package repository defines the data access contracts used by services and
// builds them for the configured storage engine.
//
// Lookups that match nothing return the driver's no-rows error wrapped;
// callers check it with sqlerr.IsNotFound.
package repository

import (
	"context"

	"github.com/deppfellow/trip-booking/internal/model"
)

type TripRepository interface {
	Count(ctx context.Context) (int, error)
	ListPage(ctx context.Context, limit, offset int) ([]model.Trip, error)
	CountriesForTrips(ctx context.Context, tripIDs []int) ([]model.TripCountry, error)
	ClientsForTrips(ctx context.Context, tripIDs []int) ([]model.TripClient, error)
	GetByID(ctx context.Context, id int) (*model.Trip, error)
	Create(ctx context.Context, trip *model.Trip) error
	AddCountry(ctx context.Context, tripID int, countryName string) error
}

type ClientRepository interface {
	GetByID(ctx context.Context, id int) (*model.Client, error)
	GetByPesel(ctx context.Context, pesel string) (*model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	CountTrips(ctx context.Context, id int) (int, error)
	Delete(ctx context.Context, id int) error
}

type ClientTripRepository interface {
	Exists(ctx context.Context, clientID, tripID int) (bool, error)
	Create(ctx context.Context, ct *model.ClientTrip) error
}
