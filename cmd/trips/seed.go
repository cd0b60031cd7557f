package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/deppfellow/trip-booking/internal/database"
	"github.com/deppfellow/trip-booking/internal/model"
	"github.com/deppfellow/trip-booking/internal/repository"
)

type sampleTrip struct {
	name        string
	description string
	startsIn    time.Duration
	length      time.Duration
	maxPeople   int
	countries   []string
}

const day = 24 * time.Hour

var sampleTrips = []sampleTrip{
	{"Alpine Lakes", "Hiking between the lakes of the northern Alps", 30 * day, 7 * day, 16, []string{"Austria", "Switzerland"}},
	{"Baltic Coast", "Cycling along the dunes and fishing villages", 45 * day, 5 * day, 20, []string{"Poland", "Lithuania"}},
	{"Cretan Gorges", "Gorge walks and village stays in western Crete", 60 * day, 10 * day, 12, []string{"Greece"}},
	{"Danube Delta", "Boat trip through the reed channels", 90 * day, 6 * day, 10, []string{"Romania"}},
	{"Tatra Ridge", "Ridge walk from Zakopane to Štrbské Pleso", -10 * day, 4 * day, 8, []string{"Poland", "Slovakia"}},
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample trips into an empty database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.loggerService.Shutdown()

			db, err := database.New(a.cfg, &a.logger, a.loggerService)
			if err != nil {
				a.logger.Error().Err(err).Msg("failed to open database")
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			if err := database.Migrate(ctx, &a.logger, db); err != nil {
				a.logger.Error().Err(err).Msg("failed to migrate database")
				return err
			}

			repos, err := repository.FromDatabase(db)
			if err != nil {
				return err
			}

			created, err := seedTrips(ctx, repos, time.Now().UTC())
			if err != nil {
				a.logger.Error().Err(err).Msg("failed to seed trips")
				return err
			}

			a.logger.Info().Int("trips", created).Msg("seed finished")
			return nil
		},
	}
}

// seedTrips inserts sampleTrips, dated relative to now, unless trips
// already exist. It returns how many trips were created.
func seedTrips(ctx context.Context, repos *repository.Repositories, now time.Time) (int, error) {
	created := 0

	err := repos.WithTx(ctx, func(tx *repository.Repositories) error {
		existing, err := tx.Trip.Count(ctx)
		if err != nil {
			return errors.Wrap(err, "count trips")
		}
		if existing > 0 {
			return nil
		}

		start := now.Truncate(day)
		for _, sample := range sampleTrips {
			trip := &model.Trip{
				Name:        sample.name,
				Description: sample.description,
				DateFrom:    start.Add(sample.startsIn),
				DateTo:      start.Add(sample.startsIn + sample.length),
				MaxPeople:   sample.maxPeople,
			}
			if err := tx.Trip.Create(ctx, trip); err != nil {
				return errors.Wrapf(err, "create trip %q", sample.name)
			}

			for _, country := range sample.countries {
				if err := tx.Trip.AddCountry(ctx, trip.ID, country); err != nil {
					return errors.Wrapf(err, "add %s to trip %q", country, sample.name)
				}
			}
			created++
		}
		return nil
	})

	return created, err
}
