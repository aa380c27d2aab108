// Package store persists resolver results and batch-run bookkeeping.
package store

import (
	"context"
	"time"

	"github.com/sells-group/leadscout/internal/model"
)

// Store defines the persistence interface for the resolution pipeline.
type Store interface {
	// Resolve cache
	GetCachedResolve(ctx context.Context, queryKey string) ([]model.ResolvedPlace, bool, error)
	SetCachedResolve(ctx context.Context, queryKey string, places []model.ResolvedPlace, ttl time.Duration) error
	DeleteExpiredResolves(ctx context.Context) (int, error)

	// Batch runs
	CreateBatchRun(ctx context.Context, total int) (*model.BatchRun, error)
	FinishBatchRun(ctx context.Context, id string, resolved int, status model.BatchStatus) error
	GetBatchRun(ctx context.Context, id string) (*model.BatchRun, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
