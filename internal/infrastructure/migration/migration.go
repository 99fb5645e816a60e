package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations brings the print-job schema up to date. Every statement is
// idempotent so it is safe to run on each start.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration is a named, idempotent schema change.
type Migration struct {
	Name string
	SQL  string
}

var migrations = []Migration{
	{
		Name: "create_print_jobs",
		SQL: `
		CREATE TABLE IF NOT EXISTS print_jobs (
			id UUID PRIMARY KEY,
			status TEXT NOT NULL,
			source_url TEXT NOT NULL,
			output_path TEXT NOT NULL DEFAULT '',
			public_path TEXT NOT NULL DEFAULT '',
			size INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT '',
			metadata JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`,
	},
	{
		Name: "add_attempts_to_print_jobs",
		SQL: `
		ALTER TABLE print_jobs
		ADD COLUMN IF NOT EXISTS attempts INTEGER NOT NULL DEFAULT 0;
	`,
	},
	{
		Name: "index_print_jobs_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS print_jobs_created_at_idx ON print_jobs (created_at DESC);`,
	},
}
