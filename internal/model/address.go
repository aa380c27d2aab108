// Package model defines the core types flowing through the address
// resolution pipeline.
package model

import "strings"

// UnknownAddress is the address value carried by every unresolved result.
const UnknownAddress = "unknown"

// Confidence is the trust tier assigned to a final address decision.
type Confidence string

const (
	ConfidenceNone   Confidence = "none"
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// AddressSource identifies which pipeline path produced the final address.
type AddressSource string

const (
	SourceGeocoder          AddressSource = "geocoder"
	SourceWebSearchFallback AddressSource = "web_search_fallback"
	SourceBusinessInference AddressSource = "business_inference"
	SourceUnresolved        AddressSource = "unresolved"
)

// SourceQuality ranks how trustworthy a resolved place's origin is.
// Structured geocoder hits are high, inferred-then-resolved queries are
// medium, and addresses mined from unstructured search text are low.
type SourceQuality string

const (
	QualityHigh   SourceQuality = "high"
	QualityMedium SourceQuality = "medium"
	QualityLow    SourceQuality = "low"
)

// Rank returns a numeric ordering for tie-breaking (higher is better).
func (q SourceQuality) Rank() int {
	switch q {
	case QualityHigh:
		return 3
	case QualityMedium:
		return 2
	case QualityLow:
		return 1
	default:
		return 0
	}
}

// OriginClue enumerates how an AddressCandidate was derived.
type OriginClue string

const (
	CluePatternMatch        OriginClue = "pattern_match"
	ClueContextualInference OriginClue = "contextual_inference"
	ClueBusinessNameCombo   OriginClue = "business_name_combo"
)

// ArticleContext is the immutable input for one article's resolution.
// It is created once per article and never mutated by the pipeline.
type ArticleContext struct {
	ArticleText  string `json:"article_text"`
	BusinessName string `json:"business_name,omitempty"`
	Location     string `json:"location,omitempty"` // city/state or free text
}

// HasLocationHint reports whether Location carries usable information.
// The upstream analyzer emits "unknown" and "other" as filler values.
func (c ArticleContext) HasLocationHint() bool {
	loc := strings.ToLower(strings.TrimSpace(c.Location))
	return loc != "" && loc != UnknownAddress && loc != "other"
}

// AddressCandidate is a hypothesized address query produced during
// inference. None are authoritative until resolved externally.
type AddressCandidate struct {
	Query          string     `json:"query"`
	Origin         OriginClue `json:"origin"`
	ConfidenceHint float64    `json:"confidence_hint"` // [0,1], derived from completeness
}

// ResolvedPlace is one structured result returned by the resolver for a
// candidate query. Results missing a formatted address are rejected
// before they reach the confirmer.
type ResolvedPlace struct {
	FormattedAddress string        `json:"formatted_address"`
	Name             string        `json:"name,omitempty"`
	Latitude         float64       `json:"latitude"`
	Longitude        float64       `json:"longitude"`
	PlaceID          string        `json:"place_id,omitempty"`
	Phone            string        `json:"phone,omitempty"`
	Website          string        `json:"website,omitempty"`
	Quality          SourceQuality `json:"quality"`
	Query            string        `json:"query"` // candidate query that produced this result
}

// ScoredAddress is the final decision for one article. Exactly one is
// produced per article per run; confidence "none" always pairs with the
// unknown address.
type ScoredAddress struct {
	Address      string        `json:"address"`
	Confidence   Confidence    `json:"confidence"`
	Score        int           `json:"score"`
	MatchReasons []string      `json:"match_reasons,omitempty"`
	Source       AddressSource `json:"source"`
	Latitude     float64       `json:"latitude,omitempty"`
	Longitude    float64       `json:"longitude,omitempty"`
	PlaceID      string        `json:"place_id,omitempty"`
}

// Unresolved returns the canonical failure result, preserving the given
// match reasons for explainability.
func Unresolved(reasons ...string) ScoredAddress {
	return ScoredAddress{
		Address:      UnknownAddress,
		Confidence:   ConfidenceNone,
		MatchReasons: reasons,
		Source:       SourceUnresolved,
	}
}

// Resolved reports whether the pipeline produced a usable address.
func (s ScoredAddress) Resolved() bool {
	return s.Confidence != ConfidenceNone && s.Address != UnknownAddress
}
