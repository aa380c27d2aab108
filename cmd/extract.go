package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/leadscout/internal/analyze"
	"github.com/sells-group/leadscout/internal/extract"
	"github.com/sells-group/leadscout/internal/infer"
	"github.com/sells-group/leadscout/internal/model"
)

var (
	extractFile     string
	extractBusiness string
	extractLocation string
)

// extractOutput is the offline inspection report: everything the
// pipeline derives from an article before any external call.
type extractOutput struct {
	Patterns   []string                 `json:"patterns"`
	Clues      analyze.Clues            `json:"clues"`
	Candidates []model.AddressCandidate `json:"candidates"`
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Show patterns, clues, and candidates for an article without resolving",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readArticle(extractFile)
		if err != nil {
			return err
		}

		gaz, err := loadGazetteer()
		if err != nil {
			return err
		}

		cxt := model.ArticleContext{
			ArticleText:  text,
			BusinessName: extractBusiness,
			Location:     extractLocation,
		}

		patterns := extract.New().Extract(text)
		clues := analyze.NewContextAnalyzer(gaz).Analyze(text)
		candidates := infer.New(gaz).Infer(cxt, patterns, clues)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(extractOutput{
			Patterns:   patterns,
			Clues:      clues,
			Candidates: candidates,
		})
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractFile, "file", "f", "", "article text file, or - for stdin (required)")
	extractCmd.Flags().StringVar(&extractBusiness, "business", "", "business name hint")
	extractCmd.Flags().StringVar(&extractLocation, "location", "", "location hint (city, state)")
	_ = extractCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(extractCmd)
}
