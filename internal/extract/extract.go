// Package extract implements the regex-driven address-shape detector that
// runs over raw article text. The pattern set is a declarative table
// evaluated by one generic matcher, so new shapes are added as data.
package extract

import (
	"regexp"
	"sort"
	"strings"
)

// streetTypes covers the standard street-type abbreviations and their
// unabbreviated forms.
const streetTypes = `(?:Street|St|Avenue|Ave|Boulevard|Blvd|Road|Rd|Drive|Dr|Lane|Ln|Way|Court|Ct|Plaza|Plz|Square|Sq|Highway|Hwy|Parkway|Pkwy|Terrace|Ter|Place|Pl|Trail|Circle|Cir)`

// Spec describes one address pattern: a compiled template plus how to
// assemble the match text. Multi-group patterns join their non-empty
// capture groups with JoinWith.
type Spec struct {
	Name     string
	Template *regexp.Regexp
	JoinWith string
}

// defaultSpecs is the ordered priority list. Earlier templates claim text
// spans first; later templates only match text no earlier template claimed.
var defaultSpecs = []Spec{
	{
		// Full address: number + street + type [+ unit] + city + state [+ zip].
		Name: "full_address",
		Template: regexp.MustCompile(`(?i)\d+\s+[A-Za-z0-9\s\.]+?` + streetTypes +
			`\.?(?:\s*,?\s*(?:Suite|Ste|Unit|Apt|#)\.?\s*[A-Za-z0-9]+)?\s*,\s*[A-Za-z\s\.]+,\s*[A-Za-z]{2}(?:\s+\d{5}(?:-\d{4})?)?`),
	},
	{
		// Number + street name + city + state + zip, no street-type token.
		Name:     "no_street_type",
		Template: regexp.MustCompile(`(?i)\d+\s+[A-Za-z0-9\s\.]+?,\s*[A-Za-z\s\.]+,\s*[A-Za-z]{2}\s+\d{5}(?:-\d{4})?`),
	},
	{
		// Relational phrasing: "located at ..." / "address of ...".
		Name:     "relational",
		Template: regexp.MustCompile(`(?i)(?:located\s+at|address\s+(?:of|at|is|was))\s+([^,.;]+(?:,\s*[^,.;]+){0,3})`),
	},
	{
		// Business name + "at" + number + street.
		Name:     "business_at_street",
		Template: regexp.MustCompile(`(?i)([A-Za-z][A-Za-z0-9\s&'-]+?)\s+at\s+(\d+\s+[A-Za-z0-9\s\.]+?` + streetTypes + `)\b`),
		JoinWith: " at ",
	},
	{
		// Address fragment inside parentheses.
		Name:     "parenthesized",
		Template: regexp.MustCompile(`(?i)\(([^()]*\d+[^()]*` + streetTypes + `[^()]*)\)`),
	},
	{
		// Bare street: number + name + type, no locality. Last so the
		// richer templates can claim spans that embed a street fragment.
		Name:     "bare_street",
		Template: regexp.MustCompile(`(?i)\d+\s+[A-Za-z0-9\s\.]+?` + streetTypes + `\b\.?`),
	},
}

// Extractor finds address-shaped substrings in free text.
type Extractor struct {
	specs []Spec
}

// New returns an Extractor using the default pattern table.
func New() *Extractor {
	return &Extractor{specs: defaultSpecs}
}

// NewWithSpecs returns an Extractor with a custom ordered pattern table.
func NewWithSpecs(specs []Spec) *Extractor {
	return &Extractor{specs: specs}
}

type span struct {
	start, end int
	text       string
}

// Extract returns all non-overlapping address-shaped matches across the
// pattern table, in order of appearance in the text. Matches are not
// deduplicated; that is the confirmer's job. An empty result is the
// no-match case, not an error.
func (e *Extractor) Extract(text string) []string {
	if text == "" {
		return nil
	}

	var claimed []span
	for _, spec := range e.specs {
		for _, loc := range spec.Template.FindAllStringSubmatchIndex(text, -1) {
			s := span{start: loc[0], end: loc[1]}
			if overlaps(claimed, s) {
				continue
			}
			s.text = assemble(text, loc, spec.JoinWith)
			if s.text == "" {
				continue
			}
			claimed = append(claimed, s)
		}
	}

	sort.SliceStable(claimed, func(i, j int) bool { return claimed[i].start < claimed[j].start })

	out := make([]string, 0, len(claimed))
	for _, s := range claimed {
		out = append(out, s.text)
	}
	return out
}

// assemble builds the match text from a submatch index slice. Patterns
// with capture groups join the non-empty groups with joinWith; patterns
// without groups use the whole match.
func assemble(text string, loc []int, joinWith string) string {
	var parts []string
	if len(loc) > 2 {
		for g := 1; g*2 < len(loc); g++ {
			s, e := loc[g*2], loc[g*2+1]
			if s < 0 || e <= s {
				continue
			}
			parts = append(parts, text[s:e])
		}
	}
	if len(parts) == 0 {
		parts = []string{text[loc[0]:loc[1]]}
	}
	if joinWith == "" {
		joinWith = " "
	}
	joined := strings.Join(parts, joinWith)
	return clean(joined)
}

// clean trims and collapses whitespace in an extracted address.
func clean(s string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(s)), " ")
}

func overlaps(claimed []span, s span) bool {
	for _, c := range claimed {
		if s.start < c.end && c.start < s.end {
			return true
		}
	}
	return false
}
