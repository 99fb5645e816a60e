package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"portfolio-site/internal/domain"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const createPrintJobsTable = `
CREATE TABLE IF NOT EXISTS print_jobs (
	id TEXT PRIMARY KEY,
	status TEXT NOT NULL,
	source_url TEXT NOT NULL,
	output_path TEXT NOT NULL DEFAULT '',
	public_path TEXT NOT NULL DEFAULT '',
	size INTEGER NOT NULL DEFAULT 0,
	attempts INTEGER NOT NULL DEFAULT 0,
	error TEXT NOT NULL DEFAULT '',
	metadata TEXT NOT NULL DEFAULT '{}',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLiteJobsRepo stores print jobs in a local SQLite file.
type SQLiteJobsRepo struct {
	db *sql.DB
}

// OpenSQLiteJobsRepo opens (or creates) the database at path and makes sure
// the print_jobs table exists.
func OpenSQLiteJobsRepo(ctx context.Context, path string) (*SQLiteJobsRepo, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// one writer at a time
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createPrintJobsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create print_jobs table: %w", err)
	}
	return &SQLiteJobsRepo{db: db}, nil
}

func (r *SQLiteJobsRepo) Close() error {
	return r.db.Close()
}

func (r *SQLiteJobsRepo) Save(ctx context.Context, j *domain.PrintJob) error {
	metaB, err := json.Marshal(j.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO print_jobs (id, status, source_url, output_path, public_path, size, attempts, error, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET status = excluded.status, source_url = excluded.source_url, output_path = excluded.output_path, public_path = excluded.public_path,
			size = excluded.size, attempts = excluded.attempts, error = excluded.error, metadata = excluded.metadata, updated_at = excluded.updated_at
	`, j.ID.String(), j.Status, j.SourceURL, j.OutputPath, j.PublicPath, j.Size, j.Attempts, j.Error, string(metaB),
		j.CreatedAt.UTC().Format(time.RFC3339Nano), j.UpdatedAt.UTC().Format(time.RFC3339Nano))
	return err
}

func (r *SQLiteJobsRepo) Get(ctx context.Context, id uuid.UUID) (*domain.PrintJob, error) {
	j := &domain.PrintJob{ID: id}
	var meta, created, updated string
	err := r.db.QueryRowContext(ctx, `
		SELECT status, source_url, output_path, public_path, size, attempts, error, metadata, created_at, updated_at
		FROM print_jobs WHERE id = ?
	`, id.String()).Scan(&j.Status, &j.SourceURL, &j.OutputPath, &j.PublicPath, &j.Size, &j.Attempts, &j.Error, &meta, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}

	if j.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if j.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	if err := decodeMetadata([]byte(meta), j); err != nil {
		return nil, err
	}
	return j, nil
}
