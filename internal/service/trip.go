package service

import (
	"context"
	"time"

	"github.com/deppfellow/trip-booking/internal/model"
	"github.com/deppfellow/trip-booking/internal/repository"
	"github.com/deppfellow/trip-booking/internal/sqlerr"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type TripService struct {
	repos *repository.Repositories
	now   func() time.Time
}

func NewTripService(repos *repository.Repositories) *TripService {
	return &TripService{repos: repos, now: time.Now}
}

// ListTrips returns one page of trips, newest start date first, each with
// its countries and registered clients.
//
// page and pageSize are validated by the caller (both >= 1). A page past the
// end is empty and costs only the count query.
func (s *TripService) ListTrips(ctx context.Context, page, pageSize int) (*model.TripPage, error) {
	total, err := s.repos.Trip.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "count trips")
	}

	result := &model.TripPage{
		PageNum:  page,
		PageSize: pageSize,
		AllPages: model.AllPages(total, pageSize),
		Trips:    []model.TripSummary{},
	}

	if page > result.AllPages {
		return result, nil
	}

	trips, err := s.repos.Trip.ListPage(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "list trips")
	}
	if len(trips) == 0 {
		return result, nil
	}

	ids := make([]int, 0, len(trips))
	byID := make(map[int]int, len(trips))
	for i, trip := range trips {
		ids = append(ids, trip.ID)
		byID[trip.ID] = i
		result.Trips = append(result.Trips, model.NewTripSummary(trip))
	}

	countries, err := s.repos.Trip.CountriesForTrips(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "list trip countries")
	}
	for _, c := range countries {
		summary := &result.Trips[byID[c.TripID]]
		summary.Countries = append(summary.Countries, model.CountrySummary{Name: c.Name})
	}

	clients, err := s.repos.Trip.ClientsForTrips(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "list trip clients")
	}
	for _, c := range clients {
		summary := &result.Trips[byID[c.TripID]]
		summary.Clients = append(summary.Clients, model.ClientSummary{FirstName: c.FirstName, LastName: c.LastName})
	}

	return result, nil
}

// AssignClient registers the client identified by PESEL for a trip that has
// not started yet, creating the client when the PESEL is unknown.
//
// All reads and writes share one transaction and one timestamp, which is
// both the start check reference and the registration time.
func (s *TripService) AssignClient(ctx context.Context, payload *model.AssignClientPayload) (*model.ClientTrip, error) {
	// Microseconds are the finest precision both engines store.
	now := s.now().UTC().Truncate(time.Microsecond)
	logger := zerolog.Ctx(ctx)

	var registration *model.ClientTrip
	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		trip, err := tx.Trip.GetByID(ctx, payload.TripID)
		if err != nil {
			if sqlerr.IsNotFound(err) {
				return errTripNotAvailable()
			}
			return errors.Wrap(err, "load trip")
		}
		if !trip.OpenAt(now) {
			return errTripNotAvailable()
		}

		client, err := tx.Client.GetByPesel(ctx, payload.Client.Pesel)
		switch {
		case err == nil:
			registered, err := tx.ClientTrip.Exists(ctx, client.ID, trip.ID)
			if err != nil {
				return errors.Wrap(err, "check registration")
			}
			if registered {
				return errClientAlreadyRegistered()
			}
		case sqlerr.IsNotFound(err):
			client = payload.Client.ToClient()
			if err := tx.Client.Create(ctx, client); err != nil {
				return errors.Wrap(err, "create client")
			}
			logger.Info().Int("client_id", client.ID).Msg("created client for registration")
		default:
			return errors.Wrap(err, "load client")
		}

		registration = &model.ClientTrip{
			ClientID:     client.ID,
			TripID:       trip.ID,
			RegisteredAt: now,
			PaymentDate:  payload.PaymentDate,
		}
		if err := tx.ClientTrip.Create(ctx, registration); err != nil {
			// A concurrent request registered the same pair after our check.
			if sqlerr.IsUniqueViolation(err) {
				return errClientAlreadyRegistered()
			}
			return errors.Wrap(err, "create registration")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("client_id", registration.ClientID).
		Int("trip_id", registration.TripID).
		Msg("client registered for trip")

	return registration, nil
}
