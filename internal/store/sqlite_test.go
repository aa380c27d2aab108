package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscout/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestResolveCacheRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	places := []model.ResolvedPlace{{
		FormattedAddress: "6821 Preston Rd, Dallas, TX 75205",
		Name:             "Preston Jewelers",
		Latitude:         32.849,
		Longitude:        -96.804,
		PlaceID:          "p-1",
		Quality:          model.QualityHigh,
		Query:            "preston jewelers in dallas, tx",
	}}

	require.NoError(t, s.SetCachedResolve(ctx, "preston jewelers in dallas, tx", places, time.Hour))

	got, ok, err := s.GetCachedResolve(ctx, "preston jewelers in dallas, tx")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, places, got)
}

func TestResolveCacheMiss(t *testing.T) {
	s := newTestStore(t)

	_, ok, err := s.GetCachedResolve(context.Background(), "never stored")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveCacheExpiry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetCachedResolve(ctx, "stale", []model.ResolvedPlace{{FormattedAddress: "x"}}, -time.Minute))

	_, ok, err := s.GetCachedResolve(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := s.DeleteExpiredResolves(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestResolveCacheUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetCachedResolve(ctx, "k", []model.ResolvedPlace{{FormattedAddress: "old"}}, time.Hour))
	require.NoError(t, s.SetCachedResolve(ctx, "k", []model.ResolvedPlace{{FormattedAddress: "new"}}, time.Hour))

	got, ok, err := s.GetCachedResolve(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].FormattedAddress)
}

func TestBatchRunLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateBatchRun(ctx, 25)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.BatchRunning, run.Status)
	assert.Equal(t, 25, run.Total)

	require.NoError(t, s.FinishBatchRun(ctx, run.ID, 19, model.BatchComplete))

	got, err := s.GetBatchRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BatchComplete, got.Status)
	assert.Equal(t, 19, got.Resolved)
	require.NotNil(t, got.FinishedAt)
	assert.False(t, got.FinishedAt.IsZero())
}

func TestFinishUnknownBatchRun(t *testing.T) {
	s := newTestStore(t)

	err := s.FinishBatchRun(context.Background(), "missing", 0, model.BatchPartial)
	assert.Error(t, err)
}
