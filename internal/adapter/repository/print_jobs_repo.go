package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"portfolio-site/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

var ErrJobNotFound = domain.ErrJobNotFound

// PrintJobsRepo stores print jobs in Postgres. A nil pool turns every write
// into a no-op so the pipeline keeps working without a database.
type PrintJobsRepo struct {
	pool *pgxpool.Pool
}

func NewPrintJobsRepo(pool *pgxpool.Pool) *PrintJobsRepo {
	return &PrintJobsRepo{pool: pool}
}

func (r *PrintJobsRepo) Save(ctx context.Context, j *domain.PrintJob) error {
	if r.pool == nil {
		return nil
	}

	metaB, err := json.Marshal(j.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO print_jobs (id, status, source_url, output_path, public_path, size, attempts, error, metadata, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, source_url = EXCLUDED.source_url, output_path = EXCLUDED.output_path, public_path = EXCLUDED.public_path, size = EXCLUDED.size, attempts = EXCLUDED.attempts, error = EXCLUDED.error, metadata = EXCLUDED.metadata, updated_at = EXCLUDED.updated_at`,
		j.ID.String(), j.Status, j.SourceURL, j.OutputPath, j.PublicPath, j.Size, j.Attempts, j.Error, metaB, j.CreatedAt, j.UpdatedAt)
	return err
}

func (r *PrintJobsRepo) Get(ctx context.Context, id uuid.UUID) (*domain.PrintJob, error) {
	if r.pool == nil {
		return nil, ErrJobNotFound
	}

	j := &domain.PrintJob{ID: id}
	var metaB []byte
	err := r.pool.QueryRow(ctx, `SELECT status, source_url, output_path, public_path, size, attempts, error, metadata, created_at, updated_at
		FROM print_jobs WHERE id = $1`, id.String()).
		Scan(&j.Status, &j.SourceURL, &j.OutputPath, &j.PublicPath, &j.Size, &j.Attempts, &j.Error, &metaB, &j.CreatedAt, &j.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := decodeMetadata(metaB, j); err != nil {
		return nil, err
	}
	return j, nil
}

func decodeMetadata(b []byte, j *domain.PrintJob) error {
	j.Metadata = map[string]interface{}{}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, &j.Metadata); err != nil {
		return fmt.Errorf("decode metadata for %s: %w", j.ID, err)
	}
	return nil
}
