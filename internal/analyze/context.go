// Package analyze turns raw article text into location clues: vocabulary
// tagging of geographic, business, and relational tokens, plus optional
// LLM-based structured incident extraction.
package analyze

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sells-group/leadscout/internal/gazetteer"
	"github.com/sells-group/leadscout/internal/normalize"
)

// Clues is the structured output of context analysis. Entries are sorted
// and unique so downstream inference is deterministic.
type Clues struct {
	GeographicEntities []string
	BusinessEntities   []string
	RelationalPhrases  []string
}

// Empty reports whether analysis found nothing to work with.
func (c Clues) Empty() bool {
	return len(c.GeographicEntities) == 0 && len(c.BusinessEntities) == 0
}

var (
	zipPattern          = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)
	cornerPattern       = regexp.MustCompile(`(?i)(?:on|at)\s+the\s+corner\s+of\s+([^,.;]+)\s+and\s+([^,.;]+)`)
	intersectionPattern = regexp.MustCompile(`(?i)(?:at|near)\s+the\s+intersection\s+of\s+([^,.;]+)\s+and\s+([^,.;]+)`)
	neighborhoodDirs    = []string{"North", "South", "East", "West", "Downtown", "Uptown", "Midtown"}
)

// ContextAnalyzer scans text against the shared vocabularies. It is a
// pure function of its input and the immutable gazetteer; no state is
// kept between calls, so one analyzer is safe to share across goroutines.
type ContextAnalyzer struct {
	gaz *gazetteer.Gazetteer
}

// NewContextAnalyzer creates an analyzer over the given vocabularies.
func NewContextAnalyzer(gaz *gazetteer.Gazetteer) *ContextAnalyzer {
	return &ContextAnalyzer{gaz: gaz}
}

// Analyze extracts geographic entities, business entities, and relational
// phrases from text. Matching is case-insensitive word-boundary matching;
// ambiguous vocabulary hits are accepted as-is.
func (a *ContextAnalyzer) Analyze(text string) Clues {
	if text == "" {
		return Clues{}
	}
	lower := strings.ToLower(text)

	geo := make(map[string]struct{})
	biz := make(map[string]struct{})
	rel := make(map[string]struct{})

	for _, zip := range zipPattern.FindAllString(text, -1) {
		geo[zip] = struct{}{}
	}

	for _, city := range a.gaz.Cities() {
		if normalize.ContainsWord(lower, city) {
			geo[city] = struct{}{}
		}
	}
	// Full state names match like cities do, so "New Mexico" and
	// "Rhode Island" are found across word boundaries.
	for _, state := range a.gaz.StateNames() {
		if normalize.ContainsWord(lower, state) {
			geo[state] = struct{}{}
		}
	}
	// Two-letter abbreviations only count in uppercase form; otherwise
	// "in", "or", and "me" would tag nearly every sentence.
	for _, word := range strings.Fields(strings.Map(dropPunct, text)) {
		if len(word) == 2 && word == strings.ToUpper(word) && a.gaz.IsState(word) {
			geo[strings.ToLower(word)] = struct{}{}
		}
	}

	// Neighborhood cues like "South Frisco" only count when the base
	// token is a known city.
	for _, dir := range neighborhoodDirs {
		re := regexp.MustCompile(`\b` + dir + `\s+([A-Z][a-z]+)\b`)
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if a.gaz.IsCity(m[1]) {
				geo[strings.ToLower(dir+" "+m[1])] = struct{}{}
			}
		}
	}

	for _, bt := range a.gaz.BusinessTypes() {
		if normalize.ContainsWord(lower, bt) {
			biz[bt] = struct{}{}
		}
	}

	for _, phrase := range a.gaz.RelationalPhrases() {
		if normalize.ContainsWord(lower, phrase) {
			rel[phrase] = struct{}{}
		}
	}
	for _, m := range cornerPattern.FindAllStringSubmatch(text, -1) {
		rel["corner of "+strings.TrimSpace(m[1])+" and "+strings.TrimSpace(m[2])] = struct{}{}
	}
	for _, m := range intersectionPattern.FindAllStringSubmatch(text, -1) {
		rel["intersection of "+strings.TrimSpace(m[1])+" and "+strings.TrimSpace(m[2])] = struct{}{}
	}

	return Clues{
		GeographicEntities: sorted(geo),
		BusinessEntities:   sorted(biz),
		RelationalPhrases:  sorted(rel),
	}
}

func dropPunct(r rune) rune {
	switch r {
	case ',', ';', '.', '(', ')', '"', '\'':
		return ' '
	}
	return r
}

func sorted(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
