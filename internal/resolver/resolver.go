// Package resolver turns candidate queries into structured places via the
// Places API, with rate limiting, a single retry on transient failures,
// and an optional two-layer cache.
package resolver

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/resilience"
	"github.com/sells-group/leadscout/pkg/places"
)

// Resolver resolves one candidate query into zero or more places. An
// empty result with a nil error means "no such place", not failure.
type Resolver interface {
	Resolve(ctx context.Context, query string) ([]model.ResolvedPlace, error)
}

// PlacesResolver implements Resolver over the Places text-search API.
type PlacesResolver struct {
	client  places.Client
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// PlacesOption configures a PlacesResolver.
type PlacesOption func(*PlacesResolver)

// WithCallDelay sets the minimum delay between consecutive API calls.
func WithCallDelay(d time.Duration) PlacesOption {
	return func(r *PlacesResolver) {
		if d > 0 {
			r.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

// WithRetryConfig overrides the retry behavior.
func WithRetryConfig(cfg resilience.RetryConfig) PlacesOption {
	return func(r *PlacesResolver) {
		r.retry = cfg
	}
}

// NewPlacesResolver creates a resolver over the given client. By default
// calls are spaced 200ms apart and retried once on transient failure.
func NewPlacesResolver(client places.Client, opts ...PlacesOption) *PlacesResolver {
	r := &PlacesResolver{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		retry: resilience.RetryConfig{
			MaxAttempts:    2, // one retry
			InitialBackoff: 500 * time.Millisecond,
			OnRetry:        resilience.RetryLogger("places", "text_search"),
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve performs one rate-limited text search. Transient upstream
// failures are retried once; a malformed result (no formatted address)
// is dropped rather than failing the whole query.
func (r *PlacesResolver) Resolve(ctx context.Context, query string) ([]model.ResolvedPlace, error) {
	if strings.TrimSpace(query) == "" {
		return nil, resilience.NewRejectedError(eris.New("resolver: empty query"))
	}

	resp, err := resilience.DoVal(ctx, r.retry, func(ctx context.Context) (*places.TextSearchResponse, error) {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		resp, err := r.client.TextSearch(ctx, query)
		if err != nil {
			return nil, classify(err)
		}
		return resp, nil
	})
	if err != nil {
		return nil, eris.Wrapf(err, "resolver: resolve %q", query)
	}

	out := make([]model.ResolvedPlace, 0, len(resp.Places))
	for _, p := range resp.Places {
		if strings.TrimSpace(p.FormattedAddress) == "" {
			zap.L().Warn("dropping place with no formatted address",
				zap.String("query", query),
				zap.String("place_id", p.ID))
			continue
		}
		out = append(out, model.ResolvedPlace{
			FormattedAddress: p.FormattedAddress,
			Name:             p.DisplayName.Text,
			Latitude:         p.Location.Latitude,
			Longitude:        p.Location.Longitude,
			PlaceID:          p.ID,
			Phone:            p.Phone,
			Website:          p.Website,
			Quality:          quality(p),
			Query:            query,
		})
	}

	zap.L().Debug("resolved query",
		zap.String("query", query),
		zap.Int("results", len(out)))
	return out, nil
}

// classify marks retryable upstream statuses as transient so the retry
// wrapper can tell them apart from hard failures.
func classify(err error) error {
	var se *places.StatusError
	if eris.As(err, &se) && resilience.IsTransientHTTPStatus(se.Code) {
		return resilience.NewTransientError(err, se.Code)
	}
	return err
}

// quality grades a result by completeness: a named place with an ID is
// high, anything partial is medium.
func quality(p places.Place) model.SourceQuality {
	if p.DisplayName.Text != "" && p.ID != "" {
		return model.QualityHigh
	}
	return model.QualityMedium
}
