package sqlite

import (
	"context"
	"fmt"

	"github.com/deppfellow/trip-booking/internal/model"
	"github.com/jmoiron/sqlx"
)

type ClientTripRepository struct {
	q sqlx.ExtContext
}

func (r *ClientTripRepository) Exists(ctx context.Context, clientID, tripID int) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.q, &exists,
		`SELECT EXISTS (SELECT 1 FROM client_trip WHERE id_client = ? AND id_trip = ?)`,
		clientID, tripID)
	if err != nil {
		return false, fmt.Errorf("check registration of client %d on trip %d: %w", clientID, tripID, err)
	}
	return exists, nil
}

// Create inserts the registration. A duplicate pair fails with a primary key
// constraint error.
func (r *ClientTripRepository) Create(ctx context.Context, ct *model.ClientTrip) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO client_trip (id_client, id_trip, registered_at, payment_date)
		VALUES (?, ?, ?, ?)`,
		ct.ClientID, ct.TripID, timestamp{ct.RegisteredAt}, nullTimestamp{ct.PaymentDate})
	if err != nil {
		return fmt.Errorf("register client %d on trip %d: %w", ct.ClientID, ct.TripID, err)
	}
	return nil
}
