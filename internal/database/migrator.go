package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// Postgres migrations, applied in filename order by tern.
//
//go:embed migrations/*.sql
var migrations embed.FS

// SQLite schema. Every statement is idempotent (IF NOT EXISTS).
//
//go:embed schema/sqlite.sql
var sqliteSchema string

// Migrate brings the schema of db up to date.
//
// Postgres uses tern with versions tracked in schema_version; SQLite applies
// the embedded schema directly.
func Migrate(ctx context.Context, logger *zerolog.Logger, db *Database) error {
	if db.Pool == nil {
		if _, err := db.SQL.ExecContext(ctx, sqliteSchema); err != nil {
			return fmt.Errorf("applying sqlite schema: %w", err)
		}
		logger.Info().Msg("sqlite schema applied")
		return nil
	}

	// tern needs a plain *pgx.Conn, so borrow one from the pool.
	poolConn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring migration connection: %w", err)
	}
	defer poolConn.Release()

	m, err := tern.NewMigrator(ctx, poolConn.Conn(), "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return err
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}
