package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFullAddress(t *testing.T) {
	e := New()

	got := e.Extract("Police responded to 1234 Elm Street, Dallas, TX 75201 on Friday.")
	assert.Equal(t, []string{"1234 Elm Street, Dallas, TX 75201"}, got)
}

func TestExtractFullAddressWithUnit(t *testing.T) {
	e := New()

	got := e.Extract("The store at 6830 Stockton Blvd, Ste 190, Sacramento, CA 95823 was robbed.")
	assert.Len(t, got, 1)
	assert.Contains(t, got[0], "6830 Stockton Blvd")
	assert.Contains(t, got[0], "Sacramento, CA 95823")
}

func TestExtractNoStreetType(t *testing.T) {
	e := New()

	got := e.Extract("Units were sent to 3500 S Meridian, Puyallup, WA 98373 overnight.")
	assert.Len(t, got, 1)
	assert.Contains(t, got[0], "3500 S Meridian")
	assert.Contains(t, got[0], "Puyallup, WA 98373")
}

func TestExtractBareStreet(t *testing.T) {
	e := New()

	got := e.Extract("Suspects forced entry near 5500 Preston Road before dawn.")
	assert.Equal(t, []string{"5500 Preston Road"}, got)
}

func TestExtractRelationalClaimsStreetFragment(t *testing.T) {
	e := New()

	got := e.Extract("A robbery occurred at the jewelry store located at 5500 Preston Road in Dallas")
	assert.Len(t, got, 1)
	assert.Contains(t, got[0], "5500 Preston Road")
	assert.Contains(t, got[0], "Dallas")
}

func TestExtractRelationalPhrase(t *testing.T) {
	e := New()

	got := e.Extract("The address of the store was unclear, but witnesses pointed police there.")
	assert.Len(t, got, 1)
	assert.Contains(t, got[0], "the store")
}

func TestExtractBusinessAtStreet(t *testing.T) {
	e := New()

	got := e.Extract("Thieves hit Smith & Sons Jewelers at 123 Main Street before fleeing.")
	assert.Len(t, got, 1)
	assert.Contains(t, got[0], "123 Main Street")
	assert.Contains(t, got[0], " at ")
}

func TestExtractParenthesized(t *testing.T) {
	e := New()

	got := e.Extract("The mall (400 Commerce Blvd) closed early after the incident.")
	assert.Equal(t, []string{"400 Commerce Blvd"}, got)
}

func TestExtractMultipleInAppearanceOrder(t *testing.T) {
	e := New()

	text := "First at 100 Oak Ave, then suspects fled toward 2200 Pine Street, Austin, TX 78701."
	got := e.Extract(text)
	assert.Len(t, got, 2)
	assert.Contains(t, got[0], "100 Oak Ave")
	assert.Contains(t, got[1], "2200 Pine Street, Austin, TX 78701")
}

func TestExtractNoOverlappingMatches(t *testing.T) {
	e := New()

	// The full address also matches the bare-street template; only the
	// higher-priority full match may claim the span.
	got := e.Extract("Report filed for 1234 Elm Street, Dallas, TX 75201.")
	assert.Len(t, got, 1)
}

func TestExtractNoMatch(t *testing.T) {
	e := New()

	assert.Empty(t, e.Extract("No location information was released by police."))
	assert.Empty(t, e.Extract(""))
}

func TestExtractStreetTypeVocabulary(t *testing.T) {
	e := New()

	for _, text := range []string{
		"crash near 10 River Trail after midnight",
		"offices at 75 Commerce Cir downtown",
		"a unit at 900 Sunset Pkwy responded",
	} {
		assert.NotEmpty(t, e.Extract(text), "text=%q", text)
	}
}
