package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deppfellow/trip-booking/internal/database"
	"github.com/deppfellow/trip-booking/internal/handler"
	"github.com/deppfellow/trip-booking/internal/repository"
	"github.com/deppfellow/trip-booking/internal/router"
	"github.com/deppfellow/trip-booking/internal/server"
	"github.com/deppfellow/trip-booking/internal/service"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Apply migrations and serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), skipMigrations)
		},
	}

	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not migrate the database before serving")

	return cmd
}

func runServe(ctx context.Context, skipMigrations bool) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	log := &a.logger

	srv, err := server.New(a.cfg, log, a.loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		a.loggerService.Shutdown()
		return err
	}

	if !skipMigrations {
		if err := database.Migrate(ctx, log, srv.DB); err != nil {
			log.Error().Err(err).Msg("failed to migrate database")
			_ = srv.Shutdown(ctx)
			return err
		}
	}

	repos, err := repository.NewRepositories(srv)
	if err != nil {
		log.Error().Err(err).Msg("failed to build repositories")
		_ = srv.Shutdown(ctx)
		return err
	}

	services := service.NewServices(repos)
	handlers := handler.NewHandlers(srv, services)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			_ = srv.Shutdown(context.Background())
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
