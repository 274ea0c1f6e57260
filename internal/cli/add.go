package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrlokans/reader/internal/config"
	"github.com/mrlokans/reader/internal/entities"
	"github.com/mrlokans/reader/internal/entrypoint"
)

type addOptions struct {
	author      string
	url         string
	file        string
	content     string
	contentFile string
	collection  uint
	tags        []string
}

func newAddCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a document to the library",
	}
	cmd.AddCommand(newAddPDFCmd(cfg))
	cmd.AddCommand(newAddArticleCmd(cfg))
	return cmd
}

func newAddPDFCmd(cfg *config.Config) *cobra.Command {
	var opts addOptions

	cmd := &cobra.Command{
		Use:   "pdf <title>",
		Short: "Register a PDF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := &entities.Document{
				Kind:      entities.DocumentKindPDF,
				Title:     args[0],
				Author:    opts.author,
				SourceURL: opts.url,
				FilePath:  opts.file,
			}
			return withStore(cmd, cfg, func(ctx context.Context, store *entrypoint.Store) error {
				return addDocument(ctx, cmd, store, doc, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "path to the PDF file (required)")
	cmd.Flags().StringVar(&opts.author, "author", "", "document author")
	cmd.Flags().StringVar(&opts.url, "url", "", "source URL")
	cmd.Flags().UintVar(&opts.collection, "collection", 0, "add the document to this collection id")
	cmd.Flags().StringSliceVar(&opts.tags, "tag", nil, "tag name, may be repeated")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newAddArticleCmd(cfg *config.Config) *cobra.Command {
	var opts addOptions

	cmd := &cobra.Command{
		Use:   "article <title>",
		Short: "Save an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := opts.content
			if opts.contentFile != "" {
				data, err := os.ReadFile(opts.contentFile)
				if err != nil {
					return fmt.Errorf("failed to read content file: %w", err)
				}
				content = string(data)
			}

			doc := &entities.Document{
				Kind:      entities.DocumentKindArticle,
				Title:     args[0],
				Author:    opts.author,
				SourceURL: opts.url,
				Content:   content,
			}
			return withStore(cmd, cfg, func(ctx context.Context, store *entrypoint.Store) error {
				return addDocument(ctx, cmd, store, doc, opts)
			})
		},
	}

	cmd.Flags().StringVar(&opts.content, "content", "", "article HTML")
	cmd.Flags().StringVar(&opts.contentFile, "content-file", "", "read article HTML from a file")
	cmd.Flags().StringVar(&opts.author, "author", "", "article author")
	cmd.Flags().StringVar(&opts.url, "url", "", "source URL")
	cmd.Flags().UintVar(&opts.collection, "collection", 0, "add the document to this collection id")
	cmd.Flags().StringSliceVar(&opts.tags, "tag", nil, "tag name, may be repeated")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")

	return cmd
}

func addDocument(ctx context.Context, cmd *cobra.Command, store *entrypoint.Store, doc *entities.Document, opts addOptions) error {
	id, err := store.Documents.AddDocument(ctx, doc)
	if err != nil {
		return err
	}

	if opts.collection != 0 {
		if err := store.Collections.AddDocumentToCollection(ctx, id, opts.collection); err != nil {
			return fmt.Errorf("document %d saved but not added to collection: %w", id, err)
		}
	}
	for _, name := range opts.tags {
		tag, err := store.Tags.GetOrCreateTag(ctx, name)
		if err != nil {
			return fmt.Errorf("document %d saved but tag %q failed: %w", id, name, err)
		}
		if err := store.Tags.AddDocumentTag(ctx, id, tag.ID); err != nil {
			return fmt.Errorf("document %d saved but tag %q failed: %w", id, name, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s %d: %s\n", doc.Kind, id, doc.Title)
	return nil
}
