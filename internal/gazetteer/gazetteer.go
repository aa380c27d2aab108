// Package gazetteer holds the static vocabularies the pipeline matches
// against: major US cities, the state name/abbreviation map, business-type
// nouns, spatial relational phrases, and known place-name misspellings.
// A Gazetteer is built once at startup and shared read-only.
package gazetteer

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Gazetteer is an immutable set of lookup vocabularies. All entries are
// stored lowercase; callers are expected to lowercase their probes.
type Gazetteer struct {
	cities       map[string]struct{}
	abbrToState  map[string]string // "tx" -> "texas"
	stateToAbbr  map[string]string // "texas" -> "tx"
	business     []string
	relational   []string
	cityVariants map[string]string // "pulallup" -> "puyallup"
}

// Overlay is the yaml shape for extending the built-in vocabularies.
type Overlay struct {
	Cities            []string          `yaml:"cities"`
	BusinessTypes     []string          `yaml:"business_types"`
	RelationalPhrases []string          `yaml:"relational_phrases"`
	CityVariants      map[string]string `yaml:"city_variants"`
}

// Default returns a Gazetteer populated with the built-in vocabularies.
func Default() *Gazetteer {
	g := &Gazetteer{
		cities:       make(map[string]struct{}, len(defaultCities)),
		abbrToState:  make(map[string]string, len(abbrToState)),
		stateToAbbr:  make(map[string]string, len(abbrToState)),
		business:     append([]string(nil), defaultBusinessTypes...),
		relational:   append([]string(nil), defaultRelationalPhrases...),
		cityVariants: make(map[string]string, len(defaultCityVariants)),
	}
	for _, c := range defaultCities {
		g.cities[strings.ToLower(c)] = struct{}{}
	}
	for abbr, full := range abbrToState {
		g.abbrToState[abbr] = full
		g.stateToAbbr[full] = abbr
	}
	for variant, canonical := range defaultCityVariants {
		g.cityVariants[variant] = canonical
	}
	return g
}

// Load builds a Gazetteer from the defaults plus a yaml overlay file.
func Load(path string) (*Gazetteer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "gazetteer: read overlay %s", path)
	}
	var ov Overlay
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, eris.Wrap(err, "gazetteer: unmarshal overlay")
	}

	g := Default()
	for _, c := range ov.Cities {
		g.cities[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}
	for _, b := range ov.BusinessTypes {
		g.business = append(g.business, strings.ToLower(strings.TrimSpace(b)))
	}
	for _, r := range ov.RelationalPhrases {
		g.relational = append(g.relational, strings.ToLower(strings.TrimSpace(r)))
	}
	for variant, canonical := range ov.CityVariants {
		g.cityVariants[strings.ToLower(variant)] = strings.ToLower(canonical)
	}
	return g, nil
}

// IsCity reports whether name (any case) is a known city.
func (g *Gazetteer) IsCity(name string) bool {
	_, ok := g.cities[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Cities returns the city vocabulary (lowercase, unordered).
func (g *Gazetteer) Cities() []string {
	out := make([]string, 0, len(g.cities))
	for c := range g.cities {
		out = append(out, c)
	}
	return out
}

// BusinessTypes returns the business-type vocabulary.
func (g *Gazetteer) BusinessTypes() []string { return g.business }

// RelationalPhrases returns the spatial relational phrase vocabulary.
func (g *Gazetteer) RelationalPhrases() []string { return g.relational }

// StateVariants returns the abbreviation and full-name forms of a state.
// Input may be either form; unknown values are returned as-is.
func (g *Gazetteer) StateVariants(state string) []string {
	lower := strings.ToLower(strings.TrimSpace(state))
	if lower == "" {
		return nil
	}
	if full, ok := g.abbrToState[lower]; ok {
		return []string{lower, full}
	}
	if abbr, ok := g.stateToAbbr[lower]; ok {
		return []string{abbr, lower}
	}
	return []string{lower}
}

// StateNames returns the full state names (lowercase, unordered),
// including the multi-word ones.
func (g *Gazetteer) StateNames() []string {
	out := make([]string, 0, len(g.stateToAbbr))
	for name := range g.stateToAbbr {
		out = append(out, name)
	}
	return out
}

// IsState reports whether the token is a state abbreviation or full name.
func (g *Gazetteer) IsState(token string) bool {
	lower := strings.ToLower(strings.TrimSpace(token))
	if _, ok := g.abbrToState[lower]; ok {
		return true
	}
	_, ok := g.stateToAbbr[lower]
	return ok
}

// CanonicalCity maps a known misspelling to its canonical lowercase form.
// Unknown inputs are returned lowercased but otherwise unchanged.
func (g *Gazetteer) CanonicalCity(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := g.cityVariants[lower]; ok {
		return canonical
	}
	return lower
}
