package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/reader/internal/config"
	"github.com/mrlokans/reader/internal/entrypoint"
)

func newStatsCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show library statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, cfg, func(ctx context.Context, store *entrypoint.Store) error {
				stats, err := store.DB.Stats(ctx)
				if err != nil {
					return err
				}

				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintf(tw, "Documents:\t%d\n", stats.Documents)
				fmt.Fprintf(tw, "Highlights:\t%d\n", stats.Highlights)
				fmt.Fprintf(tw, "To review:\t%d\n", stats.Unmastered)
				return tw.Flush()
			})
		},
	}
}
