package postgres

import (
	"context"
	"fmt"

	"github.com/deppfellow/trip-booking/internal/model"
	"github.com/jackc/pgx/v5"
)

type TripRepository struct {
	q querier
}

const tripColumns = `id_trip, name, description, date_from, date_to, max_people`

func (r *TripRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM trip`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count trips: %w", err)
	}
	return total, nil
}

// ListPage returns trips ordered by start date, newest first.
func (r *TripRepository) ListPage(ctx context.Context, limit, offset int) ([]model.Trip, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+tripColumns+`
		FROM trip
		ORDER BY date_from DESC, id_trip DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}

	trips, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Trip])
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}
	return trips, nil
}

func (r *TripRepository) CountriesForTrips(ctx context.Context, tripIDs []int) ([]model.TripCountry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT ct.id_trip, c.name
		FROM country_trip ct
		JOIN country c ON c.id_country = ct.id_country
		WHERE ct.id_trip = ANY($1)
		ORDER BY ct.id_trip, c.name`, tripIDs)
	if err != nil {
		return nil, fmt.Errorf("list trip countries: %w", err)
	}

	countries, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.TripCountry])
	if err != nil {
		return nil, fmt.Errorf("list trip countries: %w", err)
	}
	return countries, nil
}

func (r *TripRepository) ClientsForTrips(ctx context.Context, tripIDs []int) ([]model.TripClient, error) {
	rows, err := r.q.Query(ctx, `
		SELECT ct.id_trip, c.first_name, c.last_name
		FROM client_trip ct
		JOIN client c ON c.id_client = ct.id_client
		WHERE ct.id_trip = ANY($1)
		ORDER BY ct.id_trip, ct.registered_at, c.id_client`, tripIDs)
	if err != nil {
		return nil, fmt.Errorf("list trip clients: %w", err)
	}

	clients, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.TripClient])
	if err != nil {
		return nil, fmt.Errorf("list trip clients: %w", err)
	}
	return clients, nil
}

// GetByID returns pgx.ErrNoRows (wrapped) when the trip does not exist.
func (r *TripRepository) GetByID(ctx context.Context, id int) (*model.Trip, error) {
	rows, err := r.q.Query(ctx, `SELECT `+tripColumns+` FROM trip WHERE id_trip = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get trip %d: %w", id, err)
	}

	trip, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Trip])
	if err != nil {
		return nil, fmt.Errorf("get trip %d: %w", id, err)
	}
	return trip, nil
}

// Create inserts a trip and sets its ID. Used for seeding and tests.
func (r *TripRepository) Create(ctx context.Context, trip *model.Trip) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO trip (name, description, date_from, date_to, max_people)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_trip`,
		trip.Name, trip.Description, trip.DateFrom, trip.DateTo, trip.MaxPeople,
	).Scan(&trip.ID)
	if err != nil {
		return fmt.Errorf("create trip: %w", err)
	}
	return nil
}

// AddCountry links a trip to a country, creating the country by name if needed.
func (r *TripRepository) AddCountry(ctx context.Context, tripID int, countryName string) error {
	_, err := r.q.Exec(ctx, `
		WITH existing AS (
			SELECT id_country FROM country WHERE name = $2
		), inserted AS (
			INSERT INTO country (name)
			SELECT $2 WHERE NOT EXISTS (SELECT 1 FROM existing)
			RETURNING id_country
		)
		INSERT INTO country_trip (id_country, id_trip)
		SELECT id_country, $1 FROM existing
		UNION ALL
		SELECT id_country, $1 FROM inserted
		ON CONFLICT DO NOTHING`, tripID, countryName)
	if err != nil {
		return fmt.Errorf("add country %q to trip %d: %w", countryName, tripID, err)
	}
	return nil
}
