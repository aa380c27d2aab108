package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnresolvedInvariant(t *testing.T) {
	s := Unresolved("no candidates inferred")
	assert.Equal(t, UnknownAddress, s.Address)
	assert.Equal(t, ConfidenceNone, s.Confidence)
	assert.Equal(t, SourceUnresolved, s.Source)
	assert.False(t, s.Resolved())
	assert.Equal(t, []string{"no candidates inferred"}, s.MatchReasons)
}

func TestHasLocationHint(t *testing.T) {
	tests := []struct {
		location string
		want     bool
	}{
		{"Dallas, TX", true},
		{"Nevada", true},
		{"", false},
		{"unknown", false},
		{"UNKNOWN", false},
		{"other", false},
		{"  ", false},
	}
	for _, tt := range tests {
		ctx := ArticleContext{Location: tt.location}
		assert.Equal(t, tt.want, ctx.HasLocationHint(), "location=%q", tt.location)
	}
}

func TestSourceQualityRank(t *testing.T) {
	assert.Greater(t, QualityHigh.Rank(), QualityMedium.Rank())
	assert.Greater(t, QualityMedium.Rank(), QualityLow.Rank())
	assert.Greater(t, QualityLow.Rank(), SourceQuality("").Rank())
}
