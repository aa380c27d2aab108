package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadscout/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Resolver cache maintenance",
}

var cachePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired entries from the durable resolver cache",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.NewSQLite(cfg.Store.Path)
		if err != nil {
			return eris.Wrap(err, "open store")
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		n, err := st.DeleteExpiredResolves(ctx)
		if err != nil {
			return eris.Wrap(err, "delete expired resolves")
		}

		zap.L().Info("cache purged", zap.Int("deleted", n))
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cachePurgeCmd)
	rootCmd.AddCommand(cacheCmd)
}
