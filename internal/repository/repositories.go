package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/trip-booking/internal/config"
	"github.com/deppfellow/trip-booking/internal/database"
	"github.com/deppfellow/trip-booking/internal/repository/postgres"
	"github.com/deppfellow/trip-booking/internal/repository/sqlite"
	"github.com/deppfellow/trip-booking/internal/server"
)

// Repositories groups the repositories of one engine.
//
// The repositories passed to a WithTx callback all share that transaction.
type Repositories struct {
	Trip       TripRepository
	Client     ClientRepository
	ClientTrip ClientTripRepository

	runInTx func(ctx context.Context, fn func(*Repositories) error) error
}

// NewRepositories builds the repositories for the server's database engine.
func NewRepositories(s *server.Server) (*Repositories, error) {
	return FromDatabase(s.DB)
}

// FromDatabase builds the repositories for an opened database.
func FromDatabase(db *database.Database) (*Repositories, error) {
	switch db.Driver {
	case config.DriverPostgres:
		return fromPostgres(postgres.NewStore(db.Pool)), nil
	case config.DriverSQLite:
		return fromSQLite(sqlite.NewStore(db.SQL)), nil
	default:
		return nil, fmt.Errorf("no repositories for database driver %q", db.Driver)
	}
}

// WithTx runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (r *Repositories) WithTx(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.runInTx(ctx, fn)
}

func fromPostgres(store *postgres.Store) *Repositories {
	return &Repositories{
		Trip:       store.Trips(),
		Client:     store.Clients(),
		ClientTrip: store.ClientTrips(),
		runInTx: func(ctx context.Context, fn func(*Repositories) error) error {
			return store.WithTx(ctx, func(tx *postgres.Store) error {
				return fn(fromPostgres(tx))
			})
		},
	}
}

func fromSQLite(store *sqlite.Store) *Repositories {
	return &Repositories{
		Trip:       store.Trips(),
		Client:     store.Clients(),
		ClientTrip: store.ClientTrips(),
		runInTx: func(ctx context.Context, fn func(*Repositories) error) error {
			return store.WithTx(ctx, func(tx *sqlite.Store) error {
				return fn(fromSQLite(tx))
			})
		},
	}
}
