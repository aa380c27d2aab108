// Package normalize provides the text canonicalization used when comparing
// location strings: lowercasing, accent folding, directional and
// street-type expansion, and fuzzy city matching.
package normalize

import (
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// directionals maps abbreviated compass tokens to their full words.
var directionals = map[string]string{
	"n": "north", "s": "south", "e": "east", "w": "west",
	"ne": "northeast", "nw": "northwest", "se": "southeast", "sw": "southwest",
}

// streetTypes maps abbreviated street-type tokens to their full words.
var streetTypes = map[string]string{
	"st": "street", "ave": "avenue", "blvd": "boulevard", "rd": "road",
	"dr": "drive", "ln": "lane", "ct": "court", "plz": "plaza",
	"sq": "square", "hwy": "highway", "pkwy": "parkway", "ter": "terrace",
	"pl": "place", "cir": "circle", "ste": "suite",
}

// FoldAccents strips combining diacritical marks ("São José" -> "Sao Jose").
func FoldAccents(s string) string {
	out, _, err := transform.String(accentFolder, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize lowercases, folds accents, expands directional abbreviations,
// and collapses runs of whitespace. It is the shared canonical form for
// all scoring comparisons.
func Normalize(s string) string {
	s = strings.ToLower(FoldAccents(s))

	fields := strings.Fields(s)
	for i, f := range fields {
		token := strings.TrimSuffix(f, ".")
		if full, ok := directionals[token]; ok {
			fields[i] = full
		}
	}
	return strings.Join(fields, " ")
}

// ExpandStreetTypes rewrites abbreviated street-type tokens to their full
// words ("5500 Preston Rd" -> "5500 preston road"). Input is normalized
// first so callers can compare outputs directly.
func ExpandStreetTypes(s string) string {
	fields := strings.Fields(Normalize(s))
	for i, f := range fields {
		token := strings.Trim(f, ".,")
		if full, ok := streetTypes[token]; ok {
			fields[i] = full
		}
	}
	return strings.Join(fields, " ")
}

// ContainsWord reports whether text contains needle as a whole word,
// bounded by non-alphanumeric characters or string boundaries. Both
// arguments should already be lowercased.
func ContainsWord(text, needle string) bool {
	if needle == "" || text == "" {
		return false
	}
	start := 0
	for {
		idx := strings.Index(text[start:], needle)
		if idx < 0 {
			return false
		}
		absIdx := start + idx
		endIdx := absIdx + len(needle)

		leftOK := absIdx == 0 || !isAlphaNum(text[absIdx-1])
		rightOK := endIdx == len(text) || !isAlphaNum(text[endIdx])

		if leftOK && rightOK {
			return true
		}
		start = absIdx + 1
	}
}

func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

var levParams = levenshtein.NewParams()

// Similarity returns the normalized Levenshtein similarity of two strings
// in [0,1].
func Similarity(a, b string) float64 {
	return levenshtein.Similarity(a, b, levParams)
}

// FuzzyContains reports whether text contains phrase either exactly (as a
// whole word) or approximately: some window of the same token count in
// text has Levenshtein similarity >= threshold. Both arguments should be
// pre-normalized. A threshold of 0.80 tolerates the one- and two-character
// typos seen in source feeds ("pulallup" vs "puyallup" scores 0.875).
func FuzzyContains(text, phrase string, threshold float64) bool {
	if phrase == "" || text == "" {
		return false
	}
	if ContainsWord(text, phrase) {
		return true
	}

	phraseTokens := strings.Fields(phrase)
	textTokens := strings.Fields(stripPunct(text))
	n := len(phraseTokens)
	if n == 0 || len(textTokens) < n {
		return false
	}
	for i := 0; i+n <= len(textTokens); i++ {
		window := strings.Join(textTokens[i:i+n], " ")
		if Similarity(window, phrase) >= threshold {
			return true
		}
	}
	return false
}

func stripPunct(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ',', ';', '.', '(', ')':
			return ' '
		}
		return r
	}, s)
}
