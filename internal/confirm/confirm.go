// Package confirm scores resolver results against the article context and
// picks a single winning address, or declares the article unresolved.
package confirm

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/gazetteer"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/normalize"
)

// cityFuzzyThreshold is the normalized similarity a city token must reach
// to count as present when no exact hit is found. Tuned against observed
// feed misspellings.
const cityFuzzyThreshold = 0.80

// Config holds the additive point values of the scoring rubric. The
// ordering of checks is fixed; the values are tunable.
type Config struct {
	QualityHigh   int
	QualityMedium int
	QualityLow    int
	BusinessBonus int
	CityBonus     int
	StateBonus    int
	CityStateCap  int // combined ceiling for city+state bonuses
	StreetBonus   int
	Floor         int // at or below: confidence stays low
	HighTier      int // at or above: confidence is high
}

// DefaultConfig returns the standard rubric values.
func DefaultConfig() Config {
	return Config{
		QualityHigh:   3,
		QualityMedium: 2,
		QualityLow:    1,
		BusinessBonus: 3,
		CityBonus:     2,
		StateBonus:    1,
		CityStateCap:  3,
		StreetBonus:   3,
		Floor:         3,
		HighTier:      6,
	}
}

// Confirmer applies the rubric. Safe for concurrent use.
type Confirmer struct {
	gaz *gazetteer.Gazetteer
	cfg Config
}

// New creates a Confirmer with the given rubric values.
func New(gaz *gazetteer.Gazetteer, cfg Config) *Confirmer {
	return &Confirmer{gaz: gaz, cfg: cfg}
}

// Confirm scores every result and returns the winner as a ScoredAddress.
// patterns are the street fragments extracted from the article text; an
// exact number-for-number match against one of them is the strongest
// signal in the rubric. Zero usable results yields the unresolved value.
func (c *Confirmer) Confirm(results []model.ResolvedPlace, cxt model.ArticleContext, patterns []string) model.ScoredAddress {
	type scored struct {
		place   model.ResolvedPlace
		score   int
		reasons []string
	}

	var ranked []scored
	seen := make(map[string]struct{})
	for _, r := range results {
		// Missing formatted address is a hard reject of the result.
		if strings.TrimSpace(r.FormattedAddress) == "" {
			continue
		}
		key := normalize.Normalize(r.FormattedAddress)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		score, reasons := c.score(r, cxt, patterns)
		ranked = append(ranked, scored{place: r, score: score, reasons: reasons})
	}

	if len(ranked) == 0 {
		return model.Unresolved("no usable resolver results")
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if qi, qj := ranked[i].place.Quality.Rank(), ranked[j].place.Quality.Rank(); qi != qj {
			return qi > qj
		}
		// More specific wins: address length closest to the query that
		// produced it.
		return lengthGap(ranked[i].place) < lengthGap(ranked[j].place)
	})

	best := ranked[0]
	out := model.ScoredAddress{
		Address:      best.place.FormattedAddress,
		Confidence:   c.confidence(best.score),
		Score:        best.score,
		MatchReasons: best.reasons,
		Source:       model.SourceGeocoder,
		Latitude:     best.place.Latitude,
		Longitude:    best.place.Longitude,
		PlaceID:      best.place.PlaceID,
	}

	zap.L().Debug("confirmation complete",
		zap.String("address", out.Address),
		zap.Int("score", out.Score),
		zap.String("confidence", string(out.Confidence)))
	return out
}

// score applies the rubric checks in order and records a reason per
// awarded bonus.
func (c *Confirmer) score(r model.ResolvedPlace, cxt model.ArticleContext, patterns []string) (int, []string) {
	var score int
	var reasons []string

	switch r.Quality {
	case model.QualityHigh:
		score += c.cfg.QualityHigh
		reasons = append(reasons, "source quality high")
	case model.QualityMedium:
		score += c.cfg.QualityMedium
		reasons = append(reasons, "source quality medium")
	case model.QualityLow:
		score += c.cfg.QualityLow
		reasons = append(reasons, "source quality low")
	}

	addr := normalize.Normalize(r.FormattedAddress)
	name := normalize.Normalize(r.Name)

	if biz := normalize.Normalize(cxt.BusinessName); biz != "" && biz != model.UnknownAddress {
		if strings.Contains(addr, biz) || strings.Contains(name, biz) {
			score += c.cfg.BusinessBonus
			reasons = append(reasons, "business name match")
		}
	}

	cityPts, statePts := c.locationBonuses(addr, cxt)
	if combined := cityPts + statePts; combined > 0 {
		if combined > c.cfg.CityStateCap {
			combined = c.cfg.CityStateCap
		}
		score += combined
		if cityPts > 0 {
			reasons = append(reasons, "city match")
		}
		if statePts > 0 {
			reasons = append(reasons, "state match")
		}
	}

	if m := matchingPattern(addr, patterns); m != "" {
		score += c.cfg.StreetBonus
		reasons = append(reasons, fmt.Sprintf("street match %q", m))
	}

	return score, reasons
}

// locationBonuses checks the context's city and state tokens against the
// candidate address. City hits may be fuzzy; states match via the
// bidirectional abbreviation map, never fuzzily.
func (c *Confirmer) locationBonuses(addr string, cxt model.ArticleContext) (int, int) {
	if !cxt.HasLocationHint() {
		return 0, 0
	}

	var cityPts, statePts int
	check := func(token string) {
		canonical := c.gaz.CanonicalCity(token)
		if cityPts == 0 && c.gaz.IsCity(canonical) {
			if normalize.ContainsWord(addr, canonical) ||
				normalize.FuzzyContains(addr, canonical, cityFuzzyThreshold) {
				cityPts = c.cfg.CityBonus
			}
			return
		}
		if statePts == 0 && c.gaz.IsState(token) {
			for _, variant := range c.gaz.StateVariants(token) {
				if normalize.ContainsWord(addr, variant) {
					statePts = c.cfg.StateBonus
					break
				}
			}
		}
	}
	for _, token := range splitLocation(cxt.Location) {
		check(token)
		// Free-text hints like "downtown Sacramento area" hide the
		// city inside a longer token.
		if !c.gaz.IsCity(c.gaz.CanonicalCity(token)) && !c.gaz.IsState(token) {
			for _, word := range strings.Fields(token) {
				check(word)
			}
		}
	}
	return cityPts, statePts
}

// matchingPattern returns the first extracted street fragment whose
// normalized form appears in the address, digits included.
func matchingPattern(addr string, patterns []string) string {
	expanded := normalize.ExpandStreetTypes(addr)
	for _, p := range patterns {
		frag := normalize.ExpandStreetTypes(p)
		if frag == "" || !strings.ContainsAny(frag, "0123456789") {
			continue
		}
		if strings.Contains(expanded, frag) {
			return p
		}
	}
	return ""
}

func (c *Confirmer) confidence(score int) model.Confidence {
	switch {
	case score >= c.cfg.HighTier:
		return model.ConfidenceHigh
	case score > c.cfg.Floor:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceLow
	}
}

func lengthGap(p model.ResolvedPlace) int {
	gap := len(p.FormattedAddress) - len(p.Query)
	if gap < 0 {
		return -gap
	}
	return gap
}

// splitLocation breaks "Sacramento, CA" style hints into matchable
// tokens.
func splitLocation(loc string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(loc, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
