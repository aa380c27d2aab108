// Package infer turns extracted patterns and context clues into a small,
// ranked set of resolvable address queries.
package infer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/analyze"
	"github.com/sells-group/leadscout/internal/gazetteer"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/internal/normalize"
)

// MaxCandidates caps inference output. Mirrors the external call budget:
// the resolver is never asked about more than this many queries per article.
const MaxCandidates = 3

// Confidence hints by completeness tier.
const (
	hintComplete = 0.9
	hintPartial  = 0.5
	hintFallback = 0.2
)

var (
	streetNumberRe = regexp.MustCompile(`\b\d{1,6}\s+\S`)
	streetTypeRe   = regexp.MustCompile(`(?i)\b(?:street|st|avenue|ave|boulevard|blvd|road|rd|drive|dr|lane|ln|way|court|ct|plaza|plz|square|sq|highway|hwy|parkway|pkwy|terrace|ter|place|pl|trail|trl|circle|cir)\b\.?`)
)

// Inferrer builds AddressCandidates from the outputs of pattern
// extraction and context analysis.
type Inferrer struct {
	gaz *gazetteer.Gazetteer
}

// New creates an Inferrer over the given vocabularies.
func New(gaz *gazetteer.Gazetteer) *Inferrer {
	return &Inferrer{gaz: gaz}
}

// Infer produces at most MaxCandidates candidates, best first:
// complete pattern matches, then business-name + street-fragment combos,
// then a bare business + location query with no street cue. Returns nil
// when the inputs carry nothing to work with, so callers can fail fast
// without spending resolver calls.
func (inf *Inferrer) Infer(cxt model.ArticleContext, patterns []string, clues analyze.Clues) []model.AddressCandidate {
	location := inf.bestLocation(cxt, clues)
	if len(patterns) == 0 && clues.Empty() && location == "" {
		return nil
	}

	var out []model.AddressCandidate
	seen := make(map[string]struct{})

	add := func(query string, origin model.OriginClue, hint float64) {
		key := normalize.Normalize(query)
		if key == "" {
			return
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, model.AddressCandidate{
			Query:          query,
			Origin:         origin,
			ConfidenceHint: hint,
		})
	}

	// Tier 1: patterns that already carry a number and a street type.
	// Incomplete ones come back around as partials.
	var partials []string
	for _, p := range patterns {
		if !streetNumberRe.MatchString(p) || !streetTypeRe.MatchString(p) {
			partials = append(partials, p)
			continue
		}
		query := p
		if location != "" && !inf.hasCity(p) {
			query = p + ", " + location
		}
		if inf.hasCity(query) && inf.hasState(query) {
			add(query, model.CluePatternMatch, hintComplete)
		} else {
			add(query, model.CluePatternMatch, hintPartial)
		}
	}

	// Tier 2: business name attached to a street fragment.
	biz := businessName(cxt)
	for _, frag := range partials {
		if biz != "" {
			query := biz + ", " + frag
			if location != "" && !inf.hasCity(frag) {
				query += ", " + location
			}
			add(query, model.ClueBusinessNameCombo, hintPartial)
		} else if location != "" && !inf.hasCity(frag) {
			add(frag+", "+location, model.CluePatternMatch, hintPartial)
		} else {
			add(frag, model.CluePatternMatch, hintPartial)
		}
	}

	// Tier 3: no street cue at all, lean on the business identity alone.
	if location != "" {
		switch {
		case biz != "":
			add(fmt.Sprintf("%s in %s", biz, location), model.ClueContextualInference, hintFallback)
		case len(clues.BusinessEntities) > 0:
			add(fmt.Sprintf("%s in %s", clues.BusinessEntities[0], location), model.ClueContextualInference, hintFallback)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ConfidenceHint > out[j].ConfidenceHint
	})
	if len(out) > MaxCandidates {
		out = out[:MaxCandidates]
	}

	zap.L().Debug("inference complete",
		zap.Int("patterns", len(patterns)),
		zap.Int("candidates", len(out)))
	return out
}

// bestLocation prefers the caller-supplied location hint, then falls back
// to city/state entities found in the text.
func (inf *Inferrer) bestLocation(cxt model.ArticleContext, clues analyze.Clues) string {
	if cxt.HasLocationHint() {
		return cxt.Location
	}

	var city, state string
	for _, ent := range clues.GeographicEntities {
		// Canonicalize first so known misspellings still count.
		if c := inf.gaz.CanonicalCity(ent); city == "" && inf.gaz.IsCity(c) {
			city = c
		}
		if state == "" && inf.gaz.IsState(ent) {
			state = strings.ToUpper(abbr(inf.gaz, ent))
		}
	}
	switch {
	case city != "" && state != "":
		return titleCase(city) + ", " + state
	case city != "":
		return titleCase(city)
	case state != "":
		return state
	}
	return ""
}

func (inf *Inferrer) hasCity(s string) bool {
	lower := strings.ToLower(s)
	for _, city := range inf.gaz.Cities() {
		if normalize.ContainsWord(lower, city) {
			return true
		}
	}
	return false
}

// hasState applies the same rules as context analysis: full state names
// match across word boundaries, two-letter abbreviations only uppercase.
func (inf *Inferrer) hasState(s string) bool {
	lower := strings.ToLower(s)
	for _, name := range inf.gaz.StateNames() {
		if normalize.ContainsWord(lower, name) {
			return true
		}
	}
	for _, word := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == ';'
	}) {
		if len(word) == 2 && word == strings.ToUpper(word) && inf.gaz.IsState(word) {
			return true
		}
	}
	return false
}

func businessName(cxt model.ArticleContext) string {
	name := strings.TrimSpace(cxt.BusinessName)
	if name == "" || strings.EqualFold(name, model.UnknownAddress) {
		return ""
	}
	return name
}

// abbr collapses a state token to its two-letter form.
func abbr(gaz *gazetteer.Gazetteer, state string) string {
	variants := gaz.StateVariants(state)
	if len(variants) > 0 {
		return variants[0]
	}
	return state
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
