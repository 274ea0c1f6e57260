// Package cli implements the command line front end. Every command other
// than serve opens the store, does one thing and exits.
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mrlokans/reader/internal/config"
	"github.com/mrlokans/reader/internal/entrypoint"
)

// NewRootCmd builds the command tree. Running the binary without a
// subcommand starts the server.
func NewRootCmd(cfg *config.Config, version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "reader",
		Short:         "Personal reading and highlight store",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(cfg, version)
		},
	}

	root.PersistentFlags().StringVar(&cfg.Database.Path, "db", cfg.Database.Path, "path to the SQLite database")

	root.AddCommand(newServeCmd(cfg, version))
	root.AddCommand(newAddCmd(cfg))
	root.AddCommand(newListCmd(cfg))
	root.AddCommand(newSearchCmd(cfg))
	root.AddCommand(newReviewCmd(cfg))
	root.AddCommand(newStatsCmd(cfg))

	return root
}

func newServeCmd(cfg *config.Config, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(cfg, version)
		},
	}
}

// withStore opens the store for the duration of fn.
func withStore(cmd *cobra.Command, cfg *config.Config, fn func(ctx context.Context, store *entrypoint.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := entrypoint.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	return fn(ctx, store)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
