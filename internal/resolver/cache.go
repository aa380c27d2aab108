package resolver

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/normalize"
	"github.com/sells-group/leadscout/internal/store"
)

// CachingResolver wraps a Resolver with an in-process TTL cache and an
// optional durable store layer. Repeated business names across a batch
// make cache hits common; both layers key on the normalized query.
type CachingResolver struct {
	inner Resolver
	mem   *gocache.Cache
	db    store.Store // may be nil
	ttl   time.Duration
}

// CacheOption configures a CachingResolver.
type CacheOption func(*CachingResolver)

// WithStore adds a durable cache layer behind the in-process one.
func WithStore(s store.Store) CacheOption {
	return func(c *CachingResolver) {
		c.db = s
	}
}

// WithTTL sets how long cached results stay valid. Default one hour.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *CachingResolver) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// NewCaching wraps inner with caching.
func NewCaching(inner Resolver, opts ...CacheOption) *CachingResolver {
	c := &CachingResolver{
		inner: inner,
		ttl:   time.Hour,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.mem = gocache.New(c.ttl, 2*c.ttl)
	return c
}

// Resolve checks the memory layer, then the durable layer, then falls
// through to the wrapped resolver. Empty result sets are cached too; "no
// such place" is an answer worth remembering.
func (c *CachingResolver) Resolve(ctx context.Context, query string) ([]model.ResolvedPlace, error) {
	key := normalize.Normalize(query)

	if hit, ok := c.mem.Get(key); ok {
		zap.L().Debug("resolve cache hit", zap.String("layer", "memory"), zap.String("key", key))
		return hit.([]model.ResolvedPlace), nil
	}

	if c.db != nil {
		places, ok, err := c.db.GetCachedResolve(ctx, key)
		if err != nil {
			zap.L().Warn("durable cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			zap.L().Debug("resolve cache hit", zap.String("layer", "store"), zap.String("key", key))
			c.mem.Set(key, places, gocache.DefaultExpiration)
			return places, nil
		}
	}

	places, err := c.inner.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}

	c.mem.Set(key, places, gocache.DefaultExpiration)
	if c.db != nil {
		if err := c.db.SetCachedResolve(ctx, key, places, c.ttl); err != nil {
			zap.L().Warn("durable cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return places, nil
}
