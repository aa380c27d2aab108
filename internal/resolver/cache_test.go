package resolver

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/store"
)

type countingResolver struct {
	calls  atomic.Int32
	result []model.ResolvedPlace
	err    error
}

func (r *countingResolver) Resolve(_ context.Context, _ string) ([]model.ResolvedPlace, error) {
	r.calls.Add(1)
	return r.result, r.err
}

func newTestDB(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCachingResolverMemoryHit(t *testing.T) {
	inner := &countingResolver{result: []model.ResolvedPlace{{FormattedAddress: "1 Main St"}}}
	c := NewCaching(inner)

	first, err := c.Resolve(context.Background(), "Gold Rush Jewelers in Denver")
	require.NoError(t, err)

	second, err := c.Resolve(context.Background(), "Gold Rush Jewelers in Denver")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestCachingResolverNormalizesKey(t *testing.T) {
	inner := &countingResolver{result: []model.ResolvedPlace{{FormattedAddress: "1 Main St"}}}
	c := NewCaching(inner)

	_, err := c.Resolve(context.Background(), "Gold Rush   Jewelers")
	require.NoError(t, err)
	_, err = c.Resolve(context.Background(), "gold rush jewelers")
	require.NoError(t, err)

	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestCachingResolverCachesEmptyResults(t *testing.T) {
	inner := &countingResolver{}
	c := NewCaching(inner)

	got, err := c.Resolve(context.Background(), "no such place")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = c.Resolve(context.Background(), "no such place")
	require.NoError(t, err)
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestCachingResolverDurableLayer(t *testing.T) {
	db := newTestDB(t)
	inner := &countingResolver{result: []model.ResolvedPlace{{FormattedAddress: "6830 Stockton Blvd, Sacramento, CA"}}}

	first := NewCaching(inner, WithStore(db), WithTTL(time.Hour))
	_, err := first.Resolve(context.Background(), "Kim Tin Jewelry")
	require.NoError(t, err)

	// A fresh in-process cache, same store: served without touching the
	// inner resolver again.
	second := NewCaching(inner, WithStore(db), WithTTL(time.Hour))
	got, err := second.Resolve(context.Background(), "Kim Tin Jewelry")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "6830 Stockton Blvd, Sacramento, CA", got[0].FormattedAddress)
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestCachingResolverErrorsNotCached(t *testing.T) {
	inner := &countingResolver{err: assert.AnError}
	c := NewCaching(inner)

	_, err := c.Resolve(context.Background(), "q")
	assert.Error(t, err)
	_, err = c.Resolve(context.Background(), "q")
	assert.Error(t, err)

	assert.Equal(t, int32(2), inner.calls.Load())
}
