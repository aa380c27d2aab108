// Package finder orchestrates the full address-resolution pipeline for
// one article: pattern extraction, context analysis, inference, external
// resolution, confirmation, and the web-search fallback. The flow is an
// explicit bounded state machine; an earlier incarnation of this pipeline
// recursed on search retries and had to be killed in production.
package finder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/leadscout/internal/analyze"
	"github.com/sells-group/leadscout/internal/confirm"
	"github.com/sells-group/leadscout/internal/extract"
	"github.com/sells-group/leadscout/internal/fallback"
	"github.com/sells-group/leadscout/internal/gazetteer"
	"github.com/sells-group/leadscout/internal/infer"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/resolver"
)

// DefaultMaxCalls is the per-article external geocode call budget.
const DefaultMaxCalls = 3

type state int

const (
	statePatternExtraction state = iota
	stateContextAnalysis
	stateInference
	stateResolution
	stateConfirmation
	stateFallback
	stateDone
	stateUnresolved
)

// Finder runs the pipeline. Stateless between calls; safe to share
// across goroutines.
type Finder struct {
	ex       *extract.Extractor
	an       *analyze.ContextAnalyzer
	inf      *infer.Inferrer
	res      resolver.Resolver
	conf     *confirm.Confirmer
	miner    *fallback.Miner
	snippets fallback.SnippetSource // nil disables the fallback path
	maxCalls int
}

// Option configures a Finder.
type Option func(*Finder)

// WithSnippetSource enables the web-search fallback path.
func WithSnippetSource(s fallback.SnippetSource) Option {
	return func(f *Finder) { f.snippets = s }
}

// WithMaxCalls overrides the per-article geocode call budget.
func WithMaxCalls(n int) Option {
	return func(f *Finder) {
		if n > 0 {
			f.maxCalls = n
		}
	}
}

// New assembles a Finder from shared vocabularies, a resolver, and the
// confirmation rubric.
func New(gaz *gazetteer.Gazetteer, res resolver.Resolver, cfg confirm.Config, opts ...Option) *Finder {
	f := &Finder{
		ex:       extract.New(),
		an:       analyze.NewContextAnalyzer(gaz),
		inf:      infer.New(gaz),
		res:      res,
		conf:     confirm.New(gaz, cfg),
		miner:    fallback.NewMiner(gaz, cfg),
		maxCalls: DefaultMaxCalls,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Resolve runs the state machine for one article. It always returns
// exactly one ScoredAddress; business-logic failures surface as the
// unresolved value, never as an error.
func (f *Finder) Resolve(ctx context.Context, cxt model.ArticleContext) model.ScoredAddress {
	var (
		patterns   []string
		clues      analyze.Clues
		candidates []model.AddressCandidate
		resolved   []model.ResolvedPlace
		failures   []string
		result     model.ScoredAddress
	)

	st := statePatternExtraction
	for {
		switch st {
		case statePatternExtraction:
			patterns = f.ex.Extract(cxt.ArticleText)
			st = stateContextAnalysis

		case stateContextAnalysis:
			clues = f.an.Analyze(cxt.ArticleText)
			st = stateInference

		case stateInference:
			candidates = f.inf.Infer(cxt, patterns, clues)
			if len(candidates) == 0 {
				st = stateUnresolved
				break
			}
			st = stateResolution

		case stateResolution:
			// Candidates arrive best-hint-first; stop early when a
			// confirmed score reaches the high tier.
			calls := 0
			for _, cand := range candidates {
				if calls >= f.maxCalls {
					break
				}
				calls++

				places, err := f.res.Resolve(ctx, cand.Query)
				if err != nil {
					// A failed candidate never aborts the article.
					failures = append(failures, fmt.Sprintf("resolve failed: %s", cand.Query))
					zap.L().Warn("candidate resolution failed",
						zap.String("query", cand.Query),
						zap.Error(err))
					continue
				}
				resolved = append(resolved, places...)

				if len(places) > 0 {
					if early := f.conf.Confirm(resolved, cxt, patterns); early.Confidence == model.ConfidenceHigh {
						break
					}
				}
			}
			st = stateConfirmation

		case stateConfirmation:
			result = f.conf.Confirm(resolved, cxt, patterns)
			result.MatchReasons = append(result.MatchReasons, failures...)
			switch {
			case result.Confidence == model.ConfidenceHigh || result.Confidence == model.ConfidenceMedium:
				st = stateDone
			case f.snippets != nil:
				st = stateFallback
			case result.Resolved():
				// Low confidence and nowhere else to go: best effort.
				st = stateDone
			default:
				st = stateUnresolved
			}

		case stateFallback:
			fb := f.runFallback(ctx, cxt)
			if fb.Resolved() || !result.Resolved() {
				// The fallback's answer is final, there is no tier
				// behind it. Keep the earlier low-confidence address
				// only when the fallback found nothing at all.
				result = fb
			}
			st = stateDone

		case stateDone:
			zap.L().Info("article resolved",
				zap.String("address", result.Address),
				zap.String("confidence", string(result.Confidence)),
				zap.String("source", string(result.Source)))
			return result

		case stateUnresolved:
			return model.Unresolved(failures...)
		}
	}
}

// runFallback queries the snippet source and mines the results. Source
// errors degrade to the unresolved value.
func (f *Finder) runFallback(ctx context.Context, cxt model.ArticleContext) model.ScoredAddress {
	query := fallback.BuildQuery(cxt)
	if query == "" {
		return model.Unresolved("no business identity for fallback search")
	}

	snips, err := f.snippets.Snippets(ctx, query)
	if err != nil {
		zap.L().Warn("snippet search failed", zap.String("query", query), zap.Error(err))
		return model.Unresolved("snippet search failed")
	}
	return f.miner.FromSnippets(snips, cxt)
}

// ResolveBatch resolves many articles with a bounded worker pool and a
// wall-clock budget. The deadline is checked before each launch; on
// expiry the remaining articles are marked unresolved and the partial
// results are returned. Output index i always corresponds to input i.
func (f *Finder) ResolveBatch(ctx context.Context, articles []model.ArticleContext, workers int, budget time.Duration) []model.ScoredAddress {
	if workers <= 0 {
		workers = 4
	}

	out := make([]model.ScoredAddress, len(articles))
	deadline := time.Now().Add(budget)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, article := range articles {
		// budget 0 means no wall-clock limit.
		if budget != 0 && time.Now().After(deadline) {
			zap.L().Warn("batch budget exhausted", zap.Int("remaining", len(articles)-i))
			for j := i; j < len(articles); j++ {
				out[j] = model.Unresolved("batch deadline exceeded")
			}
			break
		}

		g.Go(func() error {
			out[i] = f.Resolve(ctx, article)
			return nil
		})
	}

	_ = g.Wait()
	return out
}
