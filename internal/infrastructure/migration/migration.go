package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		slog.Info("No runs database configured, skipping migrations")
		return nil
	}
	slog.Info("Starting database migrations")

	for _, m := range Migrations() {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Migrations lists the migrations in the order they are applied.
func Migrations() []Migration {
	return []Migration{
		{Name: "create_customization_runs", Up: createCustomizationRuns},
		{Name: "add_customization_runs_created_at_index", Up: addCreatedAtIndex},
	}
}

func createCustomizationRuns(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS customization_runs (
			id           UUID PRIMARY KEY,
			label        TEXT NOT NULL,
			source       TEXT NOT NULL DEFAULT '',
			status       TEXT NOT NULL,
			output_dir   TEXT NOT NULL DEFAULT '',
			docx_path    TEXT NOT NULL DEFAULT '',
			pdf_path     TEXT NOT NULL DEFAULT '',
			converter    TEXT NOT NULL DEFAULT '',
			page_count   INTEGER NOT NULL DEFAULT 0,
			replaced     JSONB NOT NULL DEFAULT '{}'::jsonb,
			unresolved   JSONB NOT NULL DEFAULT '[]'::jsonb,
			pdf_leftover JSONB NOT NULL DEFAULT '[]'::jsonb,
			error        TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL,
			updated_at   TIMESTAMPTZ NOT NULL
		);
	`
	_, err := pool.Exec(ctx, query)
	return err
}

// addCreatedAtIndex speeds up listing recent runs
func addCreatedAtIndex(ctx context.Context, pool *pgxpool.Pool) error {
	query := `CREATE INDEX IF NOT EXISTS customization_runs_created_at_idx ON customization_runs (created_at DESC);`

	if _, err := pool.Exec(ctx, query); err != nil {
		// Log the error but don't fail - the index is an optimisation
		slog.Warn("Error creating created_at index", "error", err)
		return nil
	}
	return nil
}
