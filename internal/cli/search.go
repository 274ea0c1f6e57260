package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrlokans/reader/internal/config"
	"github.com/mrlokans/reader/internal/entrypoint"
)

func newSearchCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search document titles, authors, content and highlights",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			return withStore(cmd, cfg, func(ctx context.Context, store *entrypoint.Store) error {
				docs, err := store.Documents.SearchDocuments(ctx, query)
				if err != nil {
					return err
				}
				hls, err := store.Highlights.SearchHighlights(ctx, query)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Documents (%d)\n", len(docs))
				if len(docs) > 0 {
					printDocuments(cmd, docs)
				}
				fmt.Fprintf(out, "\nHighlights (%d)\n", len(hls))
				for _, h := range hls {
					fmt.Fprintf(out, "  [%d] %s\n      %s\n", h.ID, truncate(h.Text, 72), h.DocumentTitle)
				}
				return nil
			})
		},
	}
	return cmd
}
