package command

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vibelink/internal/microservices/http-api/repository"
)

// reindexCmd recomputes every media_search_index row from the source tables.
var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the media search index",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		n, err := repository.NewSearchIndexRepository(e.db).RebuildAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("reindex failed after %d items: %w", n, err)
		}
		e.log.Info("search index rebuilt", "items", n)
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Rebuilt %d search index rows\n", n)
		return nil
	},
}

var pruneTokensCmd = &cobra.Command{
	Use:   "prune-tokens",
	Short: "Delete refresh tokens that have expired",
	RunE: func(cmd *cobra.Command, args []string) error {
		grace, _ := cmd.Flags().GetDuration("grace")

		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		n, err := repository.NewRefreshTokenRepository(e.db).DeleteExpired(cmd.Context(), time.Now().Add(-grace))
		if err != nil {
			return err
		}
		e.log.Info("expired refresh tokens pruned", "deleted", n)
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %d expired refresh tokens\n", n)
		return nil
	},
}

func init() {
	pruneTokensCmd.Flags().Duration("grace", 0, "keep tokens that expired less than this long ago")
	rootCmd.AddCommand(reindexCmd, pruneTokensCmd)
}
