package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrlokans/reader/internal/config"
	"github.com/mrlokans/reader/internal/entities"
	"github.com/mrlokans/reader/internal/entrypoint"
)

func newListCmd(cfg *config.Config) *cobra.Command {
	var collection uint

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, cfg, func(ctx context.Context, store *entrypoint.Store) error {
				var (
					docs []entities.Document
					err  error
				)
				if collection != 0 {
					docs, err = store.Collections.GetDocumentsInCollection(ctx, collection)
				} else {
					docs, err = store.Documents.GetDocuments(ctx)
				}
				if err != nil {
					return err
				}

				printDocuments(cmd, docs)
				return nil
			})
		},
	}

	cmd.Flags().UintVar(&collection, "collection", 0, "only list documents in this collection id")
	return cmd
}

func printDocuments(cmd *cobra.Command, docs []entities.Document) {
	if len(docs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No documents.")
		return
	}

	tw := newTable(cmd.OutOrStdout())
	fmt.Fprintln(tw, "ID\tTYPE\tTITLE\tAUTHOR\tPROGRESS")
	for _, d := range docs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.0f%%\n", d.ID, d.Kind, truncate(d.Title, 48), d.Author, d.ReadingProgress*100)
	}
	tw.Flush()
}
