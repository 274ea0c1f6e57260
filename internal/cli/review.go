package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/reader/internal/config"
	"github.com/mrlokans/reader/internal/entrypoint"
)

func newReviewCmd(cfg *config.Config) *cobra.Command {
	var (
		limit  int
		master uint
		again  uint
	)

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Show the next highlights to review, or record a review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, cfg, func(ctx context.Context, store *entrypoint.Store) error {
				out := cmd.OutOrStdout()

				switch {
				case master != 0:
					if err := store.Highlights.UpdateHighlightReview(ctx, master, true); err != nil {
						return err
					}
					fmt.Fprintf(out, "Highlight %d marked as mastered.\n", master)
					return nil
				case again != 0:
					if err := store.Highlights.UpdateHighlightReview(ctx, again, false); err != nil {
						return err
					}
					fmt.Fprintf(out, "Highlight %d will come up again.\n", again)
					return nil
				}

				hls, err := store.Review.GetHighlightsForReview(ctx, limit)
				if err != nil {
					return err
				}
				if len(hls) == 0 {
					fmt.Fprintln(out, "Nothing to review.")
					return nil
				}

				for _, h := range hls {
					fmt.Fprintf(out, "[%d] %s\n", h.ID, h.Text)
					if h.Note != "" {
						fmt.Fprintf(out, "     note: %s\n", h.Note)
					}
					fmt.Fprintf(out, "     %s, reviewed %d times\n\n", h.DocumentTitle, h.ReviewCount)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", cfg.Review.BatchSize, "number of highlights to show")
	cmd.Flags().UintVar(&master, "master", 0, "mark this highlight id as mastered")
	cmd.Flags().UintVar(&again, "again", 0, "record a review and keep this highlight in rotation")
	cmd.MarkFlagsMutuallyExclusive("master", "again")

	return cmd
}
