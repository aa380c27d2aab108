package gazetteer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVocabularies(t *testing.T) {
	g := Default()

	assert.True(t, g.IsCity("Dallas"))
	assert.True(t, g.IsCity("puyallup"))
	assert.False(t, g.IsCity("Gotham"))

	assert.True(t, g.IsState("TX"))
	assert.True(t, g.IsState("texas"))
	assert.False(t, g.IsState("Atlantis"))

	assert.NotEmpty(t, g.BusinessTypes())
	assert.Contains(t, g.BusinessTypes(), "jewelry store")
	assert.Contains(t, g.RelationalPhrases(), "located at")
}

func TestStateVariants(t *testing.T) {
	g := Default()

	assert.ElementsMatch(t, []string{"tx", "texas"}, g.StateVariants("TX"))
	assert.ElementsMatch(t, []string{"wa", "washington"}, g.StateVariants("Washington"))
	assert.Equal(t, []string{"zz"}, g.StateVariants("zz"))
	assert.Nil(t, g.StateVariants("  "))
}

func TestCanonicalCity(t *testing.T) {
	g := Default()

	assert.Equal(t, "puyallup", g.CanonicalCity("PULALLUP"))
	assert.Equal(t, "dallas", g.CanonicalCity("Dallas"))
	assert.Equal(t, "nowhereville", g.CanonicalCity("Nowhereville"))
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.yaml")
	overlay := `
cities:
  - Smallville
business_types:
  - watch repair
city_variants:
  pheonix: phoenix
`
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	g, err := Load(path)
	require.NoError(t, err)

	assert.True(t, g.IsCity("smallville"))
	assert.True(t, g.IsCity("Dallas")) // defaults retained
	assert.Contains(t, g.BusinessTypes(), "watch repair")
	assert.Equal(t, "phoenix", g.CanonicalCity("Pheonix"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/vocab.yaml")
	assert.Error(t, err)
}
