// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"context"
	"os"
	"testing"

	"github.com/deppfellow/trip-booking/internal/config"
	"github.com/deppfellow/trip-booking/internal/database"
	"github.com/rs/zerolog"
)

// PostgresDSNEnv names the variable holding a Postgres URL for integration tests.
const PostgresDSNEnv = "TRIPS_TEST_POSTGRES_DSN"

// Config returns an in-memory SQLite configuration.
func Config() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Primary.Env = "test"
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.Path = ":memory:"
	cfg.Observability.HealthChecks.Checks = []string{"database", "redis"}
	return cfg
}

// NewSQLite opens a migrated in-memory SQLite database closed at test cleanup.
func NewSQLite(t testing.TB) *database.Database {
	t.Helper()

	logger := zerolog.Nop()
	db, err := database.New(Config(), &logger, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := database.Migrate(context.Background(), &logger, db); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// NewPostgres opens and migrates the database named by TRIPS_TEST_POSTGRES_DSN,
// emptying every table first. The test is skipped when the variable is unset.
func NewPostgres(t testing.TB) *database.Database {
	t.Helper()

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresDSNEnv)
	}

	logger := zerolog.Nop()
	db, err := database.NewPostgresFromDSN(context.Background(), dsn, &logger)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	if err := database.Migrate(ctx, &logger, db); err != nil {
		t.Fatalf("migrate postgres: %v", err)
	}
	if _, err := db.Pool.Exec(ctx, `TRUNCATE client_trip, country_trip, client, country, trip RESTART IDENTITY`); err != nil {
		t.Fatalf("truncate postgres: %v", err)
	}
	return db
}
