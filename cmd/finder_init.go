package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/analyze"
	"github.com/sells-group/leadscout/internal/confirm"
	"github.com/sells-group/leadscout/internal/fallback"
	"github.com/sells-group/leadscout/internal/finder"
	"github.com/sells-group/leadscout/internal/gazetteer"
	"github.com/sells-group/leadscout/internal/resolver"
	"github.com/sells-group/leadscout/internal/store"
	"github.com/sells-group/leadscout/pkg/anthropic"
	"github.com/sells-group/leadscout/pkg/places"
	"github.com/sells-group/leadscout/pkg/websearch"
)

// finderEnv holds the initialized store, clients, and finder shared by
// the resolve and batch commands.
type finderEnv struct {
	Store     store.Store
	Finder    *finder.Finder
	Extractor *analyze.IncidentExtractor // nil when no Anthropic key is configured
}

// Close releases resources held by the environment.
func (fe *finderEnv) Close() {
	if fe.Store != nil {
		_ = fe.Store.Close()
	}
}

// initFinder sets up the store, API clients, and the finder pipeline.
// Callers should defer env.Close().
func initFinder(ctx context.Context) (*finderEnv, error) {
	if cfg.Places.Key == "" {
		return nil, eris.New("LEADSCOUT_PLACES_KEY is required")
	}

	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, eris.Wrap(err, "open store")
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	gaz, err := loadGazetteer()
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	placesClient := places.NewClient(cfg.Places.Key, places.WithBaseURL(cfg.Places.BaseURL))
	base := resolver.NewPlacesResolver(placesClient,
		resolver.WithCallDelay(time.Duration(cfg.Resolver.CallDelayMillis)*time.Millisecond))

	cacheOpts := []resolver.CacheOption{
		resolver.WithTTL(time.Duration(cfg.Resolver.CacheTTLMinutes) * time.Minute),
	}
	if cfg.Resolver.CacheToStore {
		cacheOpts = append(cacheOpts, resolver.WithStore(st))
	}
	res := resolver.NewCaching(base, cacheOpts...)

	finderOpts := []finder.Option{finder.WithMaxCalls(cfg.Resolver.MaxCalls)}

	// Web-search fallback is optional; without a key the pipeline stops
	// at confirmation.
	if cfg.Search.Key != "" {
		searchClient := websearch.NewClient(cfg.Search.Key, websearch.WithBaseURL(cfg.Search.BaseURL))
		finderOpts = append(finderOpts, finder.WithSnippetSource(fallback.NewWebSource(searchClient)))
	} else {
		zap.L().Debug("LEADSCOUT_SEARCH_KEY not set, web-search fallback disabled")
	}

	env := &finderEnv{
		Store:  st,
		Finder: finder.New(gaz, res, rubricConfig(), finderOpts...),
	}

	if cfg.Anthropic.Key != "" {
		client := anthropic.NewClient(cfg.Anthropic.Key)
		env.Extractor = analyze.NewIncidentExtractor(client, analyze.WithModel(cfg.Anthropic.Model))
	}

	return env, nil
}

func loadGazetteer() (*gazetteer.Gazetteer, error) {
	if cfg.Gazetteer.OverlayPath == "" {
		return gazetteer.Default(), nil
	}
	gaz, err := gazetteer.Load(cfg.Gazetteer.OverlayPath)
	if err != nil {
		return nil, eris.Wrap(err, "load gazetteer overlay")
	}
	return gaz, nil
}

// rubricConfig maps the configured scoring values onto the confirmation
// rubric, falling back to defaults for anything left zero.
func rubricConfig() confirm.Config {
	c := confirm.DefaultConfig()
	if cfg.Confirm.QualityHigh > 0 {
		c.QualityHigh = cfg.Confirm.QualityHigh
	}
	if cfg.Confirm.QualityMedium > 0 {
		c.QualityMedium = cfg.Confirm.QualityMedium
	}
	if cfg.Confirm.QualityLow > 0 {
		c.QualityLow = cfg.Confirm.QualityLow
	}
	if cfg.Confirm.BusinessBonus > 0 {
		c.BusinessBonus = cfg.Confirm.BusinessBonus
	}
	if cfg.Confirm.CityBonus > 0 {
		c.CityBonus = cfg.Confirm.CityBonus
	}
	if cfg.Confirm.StateBonus > 0 {
		c.StateBonus = cfg.Confirm.StateBonus
	}
	if cfg.Confirm.CityStateCap > 0 {
		c.CityStateCap = cfg.Confirm.CityStateCap
	}
	if cfg.Confirm.StreetBonus > 0 {
		c.StreetBonus = cfg.Confirm.StreetBonus
	}
	if cfg.Confirm.Floor > 0 {
		c.Floor = cfg.Confirm.Floor
	}
	if cfg.Confirm.HighTier > 0 {
		c.HighTier = cfg.Confirm.HighTier
	}
	return c
}
