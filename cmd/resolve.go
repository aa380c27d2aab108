package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/model"
)

var (
	resolveFile     string
	resolveBusiness string
	resolveLocation string
	resolveAnalyze  bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the incident address for a single article",
	Long:  "Reads article text from --file (or stdin with \"-\"), runs the resolution pipeline, and prints the scored address as JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		text, err := readArticle(resolveFile)
		if err != nil {
			return err
		}

		env, err := initFinder(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		cxt := model.ArticleContext{
			ArticleText:  text,
			BusinessName: resolveBusiness,
			Location:     resolveLocation,
		}

		if resolveAnalyze {
			if env.Extractor == nil {
				return eris.New("--analyze requires LEADSCOUT_ANTHROPIC_KEY")
			}
			incident, err := env.Extractor.Extract(ctx, text)
			if err != nil {
				return eris.Wrap(err, "analyze article")
			}
			if cxt.BusinessName == "" {
				cxt.BusinessName = incident.Context.BusinessName
			}
			if cxt.Location == "" {
				cxt.Location = incident.Context.Location
			}
			if !incident.NeedsAddressSearch() {
				// The article states the address outright; resolving it
				// still verifies and scores it through the same path.
				zap.L().Info("article states an exact address",
					zap.String("address", incident.ExactAddress),
					zap.String("confidence", string(incident.AddressConfidence)),
				)
			}
		}

		result := env.Finder.Resolve(ctx, cxt)

		zap.L().Info("resolution complete",
			zap.String("address", result.Address),
			zap.String("confidence", string(result.Confidence)),
			zap.Int("score", result.Score),
			zap.String("source", string(result.Source)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveFile, "file", "f", "", "article text file, or - for stdin (required)")
	resolveCmd.Flags().StringVar(&resolveBusiness, "business", "", "business name hint")
	resolveCmd.Flags().StringVar(&resolveLocation, "location", "", "location hint (city, state)")
	resolveCmd.Flags().BoolVar(&resolveAnalyze, "analyze", false, "derive hints from the article via the Anthropic API")
	_ = resolveCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(resolveCmd)
}

// readArticle loads article text from a file path, or stdin when the
// path is "-".
func readArticle(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", eris.Wrap(err, "read stdin")
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrap(err, "read article file")
	}
	return string(b), nil
}
