// Package fallback mines addresses out of web-search snippets when the
// structured resolver path comes up empty. Best effort by design; its
// output is the final answer, there is no further tier behind it.
package fallback

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/confirm"
	"github.com/sells-group/leadscout/internal/extract"
	"github.com/sells-group/leadscout/internal/gazetteer"
	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/pkg/websearch"
)

// SnippetSource supplies search-result snippets for a query.
type SnippetSource interface {
	Snippets(ctx context.Context, query string) ([]string, error)
}

// WebSource adapts the search client to SnippetSource.
type WebSource struct {
	client websearch.Client
}

// NewWebSource wraps a search client.
func NewWebSource(client websearch.Client) *WebSource {
	return &WebSource{client: client}
}

func (w *WebSource) Snippets(ctx context.Context, query string) ([]string, error) {
	resp, err := w.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return resp.Snippets(), nil
}

// BuildQuery formats the fallback search query. Returns "" when the
// context carries no business identity to search for.
func BuildQuery(cxt model.ArticleContext) string {
	name := strings.TrimSpace(cxt.BusinessName)
	if name == "" || strings.EqualFold(name, model.UnknownAddress) {
		return ""
	}
	if cxt.HasLocationHint() {
		return fmt.Sprintf("%q in %q address", name, cxt.Location)
	}
	return fmt.Sprintf("%q address", name)
}

var (
	digitRe      = regexp.MustCompile(`\d`)
	streetTypeRe = regexp.MustCompile(`(?i)\b(?:street|st|avenue|ave|boulevard|blvd|road|rd|drive|dr|lane|ln|way|court|ct|plaza|plz|square|sq|highway|hwy|parkway|pkwy|terrace|ter|place|pl)\b`)
)

// IsValidAddress applies the cheap plausibility gate used on mined text:
// a digit, a street-type token, and more than ten characters.
func IsValidAddress(addr string) bool {
	return len(addr) > 10 && digitRe.MatchString(addr) && streetTypeRe.MatchString(addr)
}

// Miner extracts and scores addresses from unstructured snippets.
type Miner struct {
	ex   *extract.Extractor
	conf *confirm.Confirmer
}

// NewMiner creates a Miner sharing the given vocabularies and rubric.
func NewMiner(gaz *gazetteer.Gazetteer, cfg confirm.Config) *Miner {
	return &Miner{
		ex:   extract.New(),
		conf: confirm.New(gaz, cfg),
	}
}

// FromSnippets runs the pattern family over each snippet and scores the
// mined addresses with the reduced rubric: source quality pinned to low
// because the text is unstructured, and no exact-street bonus since the
// candidates are the patterns themselves. Always returns a result; total
// failure is the unresolved value.
func (m *Miner) FromSnippets(snippets []string, cxt model.ArticleContext) model.ScoredAddress {
	query := BuildQuery(cxt)

	var mined []model.ResolvedPlace
	for _, snip := range snippets {
		for _, addr := range m.ex.Extract(snip) {
			if !IsValidAddress(addr) {
				continue
			}
			mined = append(mined, model.ResolvedPlace{
				FormattedAddress: addr,
				Quality:          model.QualityLow,
				Query:            query,
			})
		}
	}

	if len(mined) == 0 {
		zap.L().Debug("fallback mined nothing", zap.Int("snippets", len(snippets)))
		return model.Unresolved("search fallback exhausted")
	}

	scored := m.conf.Confirm(mined, cxt, nil)
	if scored.Resolved() {
		scored.Source = model.SourceWebSearchFallback
	}
	return scored
}
