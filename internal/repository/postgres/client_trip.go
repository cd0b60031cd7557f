package postgres

import (
	"context"
	"fmt"

	"github.com/deppfellow/trip-booking/internal/model"
)

type ClientTripRepository struct {
	q querier
}

func (r *ClientTripRepository) Exists(ctx context.Context, clientID, tripID int) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM client_trip WHERE id_client = $1 AND id_trip = $2)`,
		clientID, tripID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check registration of client %d on trip %d: %w", clientID, tripID, err)
	}
	return exists, nil
}

// Create inserts the registration. A duplicate pair fails with a unique
// violation on the primary key.
func (r *ClientTripRepository) Create(ctx context.Context, ct *model.ClientTrip) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO client_trip (id_client, id_trip, registered_at, payment_date)
		VALUES ($1, $2, $3, $4)`,
		ct.ClientID, ct.TripID, ct.RegisteredAt, ct.PaymentDate)
	if err != nil {
		return fmt.Errorf("register client %d on trip %d: %w", ct.ClientID, ct.TripID, err)
	}
	return nil
}
