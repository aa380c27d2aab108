package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/model"
)

var (
	batchFile    string
	batchWorkers int
	batchBudget  int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Resolve addresses for a batch of articles",
	Long:  "Reads a JSON array of article contexts from --file, resolves them concurrently under a time budget, records the run in the store, and prints the results as JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		articles, err := readBatchFile(batchFile)
		if err != nil {
			return err
		}
		if len(articles) == 0 {
			zap.L().Info("no articles in batch file")
			return nil
		}

		env, err := initFinder(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		workers := batchWorkers
		if workers <= 0 {
			workers = cfg.Batch.Workers
		}
		budgetMins := batchBudget
		if budgetMins <= 0 {
			budgetMins = cfg.Batch.BudgetMinutes
		}
		budget := time.Duration(budgetMins) * time.Minute

		run, err := env.Store.CreateBatchRun(ctx, len(articles))
		if err != nil {
			return eris.Wrap(err, "create batch run")
		}

		zap.L().Info("processing batch",
			zap.String("run_id", run.ID),
			zap.Int("articles", len(articles)),
			zap.Int("workers", workers),
			zap.Duration("budget", budget),
		)

		results := env.Finder.ResolveBatch(ctx, articles, workers, budget)

		resolved := 0
		deadline := false
		for _, r := range results {
			if r.Resolved() {
				resolved++
			}
			for _, reason := range r.MatchReasons {
				if reason == "batch deadline exceeded" {
					deadline = true
				}
			}
		}

		status := model.BatchComplete
		if deadline {
			status = model.BatchPartial
		}
		if err := env.Store.FinishBatchRun(ctx, run.ID, resolved, status); err != nil {
			zap.L().Warn("finish batch run", zap.Error(err))
		}

		zap.L().Info("batch complete",
			zap.String("run_id", run.ID),
			zap.Int("resolved", resolved),
			zap.Int("total", len(articles)),
			zap.String("status", string(status)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "JSON file with an array of article contexts (required)")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "concurrent workers (defaults to config)")
	batchCmd.Flags().IntVar(&batchBudget, "budget", 0, "time budget in minutes (defaults to config)")
	_ = batchCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(batchCmd)
}

func readBatchFile(path string) ([]model.ArticleContext, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "read batch file")
	}
	var articles []model.ArticleContext
	if err := json.Unmarshal(b, &articles); err != nil {
		return nil, eris.Wrap(err, "parse batch file")
	}
	return articles, nil
}
