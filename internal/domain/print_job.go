package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	PrintStatusPending   = "pending"
	PrintStatusRunning   = "running"
	PrintStatusCompleted = "completed"
	PrintStatusFailed    = "failed"
)

var ErrJobNotFound = errors.New("print job not found")

// PrintJob records one run of the PDF print pipeline.
type PrintJob struct {
	ID         uuid.UUID              `json:"id"`
	Status     string                 `json:"status"`
	SourceURL  string                 `json:"source_url"`
	OutputPath string                 `json:"output_path,omitempty"`
	PublicPath string                 `json:"public_path,omitempty"`
	Size       int                    `json:"size"`
	Attempts   int                    `json:"attempts"`
	Error      string                 `json:"error,omitempty"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

func NewPrintJob(sourceURL string) *PrintJob {
	now := time.Now().UTC()
	return &PrintJob{
		ID:        uuid.New(),
		Status:    PrintStatusPending,
		SourceURL: sourceURL,
		Metadata:  map[string]interface{}{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (j *PrintJob) Done() bool {
	return j.Status == PrintStatusCompleted || j.Status == PrintStatusFailed
}
