package main

import (
	"github.com/spf13/cobra"

	"github.com/deppfellow/trip-booking/internal/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
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

			if err := database.Migrate(cmd.Context(), &a.logger, db); err != nil {
				a.logger.Error().Err(err).Msg("failed to migrate database")
				return err
			}
			return nil
		},
	}
}
