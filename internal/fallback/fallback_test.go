package fallback

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadscout/internal/confirm"
	"github.com/sells-group/leadscout/internal/gazetteer"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/pkg/websearch"
)

func newMiner(t *testing.T) *Miner {
	t.Helper()
	return NewMiner(gazetteer.Default(), confirm.DefaultConfig())
}

func TestBuildQuery(t *testing.T) {
	cxt := model.ArticleContext{BusinessName: "Kim Tin Jewelry", Location: "Sacramento, CA"}
	assert.Equal(t, `"Kim Tin Jewelry" in "Sacramento, CA" address`, BuildQuery(cxt))
}

func TestBuildQueryNoLocation(t *testing.T) {
	cxt := model.ArticleContext{BusinessName: "Kim Tin Jewelry", Location: "unknown"}
	assert.Equal(t, `"Kim Tin Jewelry" address`, BuildQuery(cxt))
}

func TestBuildQueryNoBusiness(t *testing.T) {
	assert.Empty(t, BuildQuery(model.ArticleContext{Location: "Sacramento, CA"}))
	assert.Empty(t, BuildQuery(model.ArticleContext{BusinessName: "unknown"}))
}

func TestIsValidAddress(t *testing.T) {
	assert.True(t, IsValidAddress("6830 Stockton Blvd, Sacramento"))
	assert.False(t, IsValidAddress("Main Street"))          // no digit
	assert.False(t, IsValidAddress("6830 Stockton"))        // no street type
	assert.False(t, IsValidAddress("1 Elm St"))             // too short
	assert.False(t, IsValidAddress(""))
}

func TestFromSnippetsMinesAddress(t *testing.T) {
	m := newMiner(t)
	cxt := model.ArticleContext{BusinessName: "Kim Tin Jewelry", Location: "Sacramento, CA"}
	snippets := []string{
		"Kim Tin Jewelry - fine gold and custom pieces.",
		"Visit us at 6830 Stockton Blvd, Ste 190, Sacramento, CA 95823 for our grand opening.",
	}

	got := m.FromSnippets(snippets, cxt)

	require.True(t, got.Resolved())
	assert.Equal(t, "6830 Stockton Blvd, Ste 190, Sacramento, CA 95823", got.Address)
	assert.Equal(t, model.SourceWebSearchFallback, got.Source)
	assert.GreaterOrEqual(t, got.Score, 1)
	assert.NotEqual(t, model.ConfidenceNone, got.Confidence)
}

func TestFromSnippetsNothingValid(t *testing.T) {
	m := newMiner(t)
	cxt := model.ArticleContext{BusinessName: "Kim Tin Jewelry"}

	got := m.FromSnippets([]string{"no addresses here", "still nothing"}, cxt)

	assert.Equal(t, model.UnknownAddress, got.Address)
	assert.Equal(t, model.ConfidenceNone, got.Confidence)
	assert.Equal(t, model.SourceUnresolved, got.Source)
}

func TestFromSnippetsPrefersCorroborated(t *testing.T) {
	m := newMiner(t)
	cxt := model.ArticleContext{BusinessName: "Kim Tin Jewelry", Location: "Sacramento, CA"}
	snippets := []string{
		"Another store at 100 Commerce Street, Dallas, TX 75201.",
		"Kim Tin Jewelry, 6830 Stockton Blvd, Sacramento, CA 95823.",
	}

	got := m.FromSnippets(snippets, cxt)

	require.True(t, got.Resolved())
	assert.Contains(t, got.Address, "Sacramento")
}

func TestWebSourceSnippets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"code":200,"data":[{"title":"t","description":"d","content":"c"}]}`))
	}))
	defer srv.Close()

	src := NewWebSource(websearch.NewClient("k", websearch.WithBaseURL(srv.URL)))
	snips, err := src.Snippets(context.Background(), "query")

	require.NoError(t, err)
	assert.Equal(t, []string{"t", "d", "c"}, snips)
}
