package model

import "time"

// BatchStatus is the lifecycle state of a batch resolution run.
type BatchStatus string

const (
	BatchRunning  BatchStatus = "running"
	BatchComplete BatchStatus = "complete"
	// BatchPartial marks a run that hit its wall-clock deadline before
	// every article was attempted.
	BatchPartial BatchStatus = "partial"
)

// BatchRun records one invocation of batch resolution.
type BatchRun struct {
	ID         string      `json:"id"`
	Status     BatchStatus `json:"status"`
	Total      int         `json:"total"`
	Resolved   int         `json:"resolved"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt *time.Time  `json:"finished_at,omitempty"`
}
