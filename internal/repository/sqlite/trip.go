package sqlite

import (
	"context"
	"fmt"

	"github.com/deppfellow/trip-booking/internal/model"
	"github.com/jmoiron/sqlx"
)

type TripRepository struct {
	q sqlx.ExtContext
}

type tripRow struct {
	ID          int       `db:"id_trip"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	DateFrom    timestamp `db:"date_from"`
	DateTo      timestamp `db:"date_to"`
	MaxPeople   int       `db:"max_people"`
}

func (r tripRow) toModel() model.Trip {
	return model.Trip{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		DateFrom:    r.DateFrom.Time,
		DateTo:      r.DateTo.Time,
		MaxPeople:   r.MaxPeople,
	}
}

const tripColumns = `id_trip, name, description, date_from, date_to, max_people`

func (r *TripRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := sqlx.GetContext(ctx, r.q, &total, `SELECT COUNT(*) FROM trip`); err != nil {
		return 0, fmt.Errorf("count trips: %w", err)
	}
	return total, nil
}

// ListPage returns trips ordered by start date, newest first.
func (r *TripRepository) ListPage(ctx context.Context, limit, offset int) ([]model.Trip, error) {
	var rows []tripRow
	err := sqlx.SelectContext(ctx, r.q, &rows, `
		SELECT `+tripColumns+`
		FROM trip
		ORDER BY date_from DESC, id_trip DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}

	trips := make([]model.Trip, 0, len(rows))
	for _, row := range rows {
		trips = append(trips, row.toModel())
	}
	return trips, nil
}

func (r *TripRepository) CountriesForTrips(ctx context.Context, tripIDs []int) ([]model.TripCountry, error) {
	if len(tripIDs) == 0 {
		return []model.TripCountry{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT ct.id_trip, c.name
		FROM country_trip ct
		JOIN country c ON c.id_country = ct.id_country
		WHERE ct.id_trip IN (?)
		ORDER BY ct.id_trip, c.name`, tripIDs)
	if err != nil {
		return nil, fmt.Errorf("list trip countries: %w", err)
	}

	var countries []model.TripCountry
	if err := sqlx.SelectContext(ctx, r.q, &countries, r.q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list trip countries: %w", err)
	}
	return countries, nil
}

func (r *TripRepository) ClientsForTrips(ctx context.Context, tripIDs []int) ([]model.TripClient, error) {
	if len(tripIDs) == 0 {
		return []model.TripClient{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT ct.id_trip, c.first_name, c.last_name
		FROM client_trip ct
		JOIN client c ON c.id_client = ct.id_client
		WHERE ct.id_trip IN (?)
		ORDER BY ct.id_trip, ct.registered_at, c.id_client`, tripIDs)
	if err != nil {
		return nil, fmt.Errorf("list trip clients: %w", err)
	}

	var clients []model.TripClient
	if err := sqlx.SelectContext(ctx, r.q, &clients, r.q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list trip clients: %w", err)
	}
	return clients, nil
}

// GetByID returns sql.ErrNoRows (wrapped) when the trip does not exist.
func (r *TripRepository) GetByID(ctx context.Context, id int) (*model.Trip, error) {
	var row tripRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+tripColumns+` FROM trip WHERE id_trip = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get trip %d: %w", id, err)
	}

	trip := row.toModel()
	return &trip, nil
}

// Create inserts a trip and sets its ID. Used for seeding and tests.
func (r *TripRepository) Create(ctx context.Context, trip *model.Trip) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO trip (name, description, date_from, date_to, max_people)
		VALUES (?, ?, ?, ?, ?)`,
		trip.Name, trip.Description, timestamp{trip.DateFrom}, timestamp{trip.DateTo}, trip.MaxPeople)
	if err != nil {
		return fmt.Errorf("create trip: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create trip: %w", err)
	}
	trip.ID = int(id)
	return nil
}

// AddCountry links a trip to a country, creating the country by name if needed.
func (r *TripRepository) AddCountry(ctx context.Context, tripID int, countryName string) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO country (name)
		SELECT ? WHERE NOT EXISTS (SELECT 1 FROM country WHERE name = ?)`,
		countryName, countryName)
	if err != nil {
		return fmt.Errorf("add country %q: %w", countryName, err)
	}

	_, err = r.q.ExecContext(ctx, `
		INSERT OR IGNORE INTO country_trip (id_country, id_trip)
		SELECT id_country, ? FROM country WHERE name = ? ORDER BY id_country LIMIT 1`,
		tripID, countryName)
	if err != nil {
		return fmt.Errorf("add country %q to trip %d: %w", countryName, tripID, err)
	}
	return nil
}
