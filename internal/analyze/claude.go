package analyze

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/model"
	"github.com/sells-group/leadscout/pkg/anthropic"
)

const (
	defaultModel     = "claude-sonnet-4-20250514"
	extractMaxTokens = 1000
)

// Low temperature keeps the extraction factual.
var extractTemperature = 0.2

const extractSystemPrompt = `You extract structured facts from crime news articles about retail businesses. Respond with a single JSON object and nothing else.`

const extractPromptTemplate = `Read the following news article about a crime at a business and extract these fields:

{
  "businessName": "the name of the business involved, or 'unknown'",
  "detailedLocation": "the most specific city/area mentioned, or 'unknown'",
  "exactAddress": "full street address if stated, or 'unknown'",
  "addressConfidence": "high|medium|low"
}

Only report an exactAddress that appears in the article; never guess one.

Article:
%ARTICLE%`

// Incident is what the extractor learned about a single article.
type Incident struct {
	Context           model.ArticleContext
	ExactAddress      string
	AddressConfidence model.Confidence
}

// NeedsAddressSearch reports whether the article text alone did not pin
// down an address, so the resolution pipeline should run.
func (in Incident) NeedsAddressSearch() bool {
	if in.ExactAddress == "" || strings.EqualFold(in.ExactAddress, model.UnknownAddress) {
		return true
	}
	return in.AddressConfidence == model.ConfidenceLow || in.AddressConfidence == model.ConfidenceNone
}

// IncidentExtractor asks Claude to pull business and location hints out
// of raw article text.
type IncidentExtractor struct {
	client anthropic.Client
	model  string
}

// ExtractorOption configures an IncidentExtractor.
type ExtractorOption func(*IncidentExtractor)

// WithModel overrides the model used for extraction.
func WithModel(m string) ExtractorOption {
	return func(e *IncidentExtractor) { e.model = m }
}

// NewIncidentExtractor creates an extractor backed by the given client.
func NewIncidentExtractor(client anthropic.Client, opts ...ExtractorOption) *IncidentExtractor {
	e := &IncidentExtractor{client: client, model: defaultModel}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type incidentReport struct {
	BusinessName      string `json:"businessName"`
	DetailedLocation  string `json:"detailedLocation"`
	ExactAddress      string `json:"exactAddress"`
	AddressConfidence string `json:"addressConfidence"`
}

// Extract runs the extraction prompt over articleText. Fields the model
// could not determine come back as "unknown".
func (e *IncidentExtractor) Extract(ctx context.Context, articleText string) (Incident, error) {
	if strings.TrimSpace(articleText) == "" {
		return Incident{}, eris.New("analyze: empty article text")
	}

	prompt := strings.Replace(extractPromptTemplate, "%ARTICLE%", articleText, 1)

	resp, err := e.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       e.model,
		MaxTokens:   extractMaxTokens,
		System:      extractSystemPrompt,
		Temperature: &extractTemperature,
		Messages: []anthropic.Message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return Incident{}, eris.Wrap(err, "analyze: incident extraction")
	}

	report, err := parseIncidentReport(resp.Text)
	if err != nil {
		return Incident{}, err
	}

	inc := Incident{
		Context: model.ArticleContext{
			ArticleText:  articleText,
			BusinessName: normalizeField(report.BusinessName),
			Location:     normalizeField(report.DetailedLocation),
		},
		ExactAddress:      normalizeField(report.ExactAddress),
		AddressConfidence: parseConfidence(report.AddressConfidence),
	}

	zap.L().Debug("incident extracted",
		zap.String("business", inc.Context.BusinessName),
		zap.String("location", inc.Context.Location),
		zap.Bool("needs_search", inc.NeedsAddressSearch()))

	return inc, nil
}

var (
	fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	bareJSONRe   = regexp.MustCompile(`(?s)\{.*\}`)
)

// parseIncidentReport tolerates responses that wrap the JSON object in a
// code fence or surrounding prose.
func parseIncidentReport(text string) (incidentReport, error) {
	raw := text
	if m := fencedJSONRe.FindStringSubmatch(text); m != nil {
		raw = m[1]
	} else if m := bareJSONRe.FindString(text); m != "" {
		raw = m
	}

	var report incidentReport
	if err := json.Unmarshal([]byte(raw), &report); err != nil {
		return incidentReport{}, eris.Wrapf(err, "analyze: parse incident report %q", truncate(text, 120))
	}
	return report, nil
}

// normalizeField maps the model's "couldn't determine" spellings to the
// single unknown sentinel.
func normalizeField(v string) string {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "", "unknown", "not specified", "not mentioned", "n/a", "none":
		return model.UnknownAddress
	}
	return v
}

func parseConfidence(v string) model.Confidence {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "high":
		return model.ConfidenceHigh
	case "medium":
		return model.ConfidenceMedium
	case "low":
		return model.ConfidenceLow
	}
	return model.ConfidenceNone
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
