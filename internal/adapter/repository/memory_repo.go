package repository

import (
	"context"
	"sync"

	"portfolio-site/internal/domain"

	"github.com/google/uuid"
)

// MemoryJobsRepo keeps print jobs for the lifetime of the process.
type MemoryJobsRepo struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]domain.PrintJob
}

func NewMemoryJobsRepo() *MemoryJobsRepo {
	return &MemoryJobsRepo{jobs: map[uuid.UUID]domain.PrintJob{}}
}

func (r *MemoryJobsRepo) Save(_ context.Context, j *domain.PrintJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[j.ID] = copyJob(j)
	return nil
}

func (r *MemoryJobsRepo) Get(_ context.Context, id uuid.UUID) (*domain.PrintJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	out := copyJob(&j)
	return &out, nil
}

func copyJob(j *domain.PrintJob) domain.PrintJob {
	out := *j
	out.Metadata = make(map[string]interface{}, len(j.Metadata))
	for k, v := range j.Metadata {
		out.Metadata[k] = v
	}
	return out
}
