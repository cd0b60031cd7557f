package service

import (
	"context"

	"github.com/deppfellow/trip-booking/internal/repository"
	"github.com/deppfellow/trip-booking/internal/sqlerr"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type ClientService struct {
	repos *repository.Repositories
}

func NewClientService(repos *repository.Repositories) *ClientService {
	return &ClientService{repos: repos}
}

// DeleteClient removes a client that has no registrations.
func (s *ClientService) DeleteClient(ctx context.Context, clientID int) error {
	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		if _, err := tx.Client.GetByID(ctx, clientID); err != nil {
			if sqlerr.IsNotFound(err) {
				return errClientNotFound()
			}
			return errors.Wrap(err, "load client")
		}

		trips, err := tx.Client.CountTrips(ctx, clientID)
		if err != nil {
			return errors.Wrap(err, "count client trips")
		}
		if trips > 0 {
			return errClientHasTrips()
		}

		if err := tx.Client.Delete(ctx, clientID); err != nil {
			switch {
			case sqlerr.IsNotFound(err):
				return errClientNotFound()
			case sqlerr.IsForeignKeyViolation(err):
				// Registered between the count and the delete.
				return errClientHasTrips()
			}
			return errors.Wrap(err, "delete client")
		}
		return nil
	})
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Int("client_id", clientID).Msg("client deleted")
	return nil
}
