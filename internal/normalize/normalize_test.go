package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123 N. Main St, Dallas, TX", "123 north main st, dallas, tx"},
		{"  Multiple   spaces ", "multiple spaces"},
		{"W Elm", "west elm"},
		{"São José", "sao jose"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "in=%q", tt.in)
	}
}

func TestExpandStreetTypes(t *testing.T) {
	assert.Equal(t, "5500 preston road", ExpandStreetTypes("5500 Preston Rd"))
	assert.Equal(t, "6821 preston road, dallas, tx 75205", ExpandStreetTypes("6821 Preston Rd, Dallas, TX 75205"))
	assert.Equal(t, "100 main street", ExpandStreetTypes("100 Main St."))
	assert.Equal(t, "6830 stockton boulevard, suite 190", ExpandStreetTypes("6830 Stockton Blvd, Ste 190"))
}

func TestContainsWord(t *testing.T) {
	assert.True(t, ContainsWord("robbery in dallas, tx", "dallas"))
	assert.True(t, ContainsWord("dallas", "dallas"))
	assert.False(t, ContainsWord("dallastown pa", "dallas"))
	assert.False(t, ContainsWord("", "dallas"))
	assert.False(t, ContainsWord("dallas", ""))
}

func TestFuzzyContains(t *testing.T) {
	// Exact word match.
	assert.True(t, FuzzyContains("3500 south meridian, puyallup, wa", "puyallup", 0.80))
	// Misspelled probe against correct text.
	assert.True(t, FuzzyContains("3500 south meridian, puyallup, wa", "pulallup", 0.80))
	// Multi-token phrase.
	assert.True(t, FuzzyContains("123 elm, winston-salem, nc", "winston-salem", 0.80))
	// Unrelated city stays unmatched.
	assert.False(t, FuzzyContains("123 elm, seattle, wa", "puyallup", 0.80))
	assert.False(t, FuzzyContains("", "puyallup", 0.80))
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("dallas", "dallas"))
	assert.Greater(t, Similarity("pulallup", "puyallup"), 0.80)
	assert.Less(t, Similarity("seattle", "puyallup"), 0.50)
}
