package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexibase/lexi-core/internal/application/handlers"
)

func newSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search cached entries by meaning",
		Long: `Search your cached entries semantically. Run 'lexi index' first to
build the vector index.

Examples:
  lexi search "to move quickly on foot"
  lexi search happiness --limit 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSearchDeps(func(deps *Deps, search *handlers.SearchHandler) error {
				entries, err := search.HandleSearch(cmd.Context(), args[0], limit)
				if err != nil {
					return fmt.Errorf("searching: %w", err)
				}

				if len(entries) == 0 {
					fmt.Println("No matches.")
					return nil
				}

				for i := range entries {
					printEntry(&entries[i])
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultSearchLimit, "Maximum number of results")

	return cmd
}

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Rebuild the semantic index over cached entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSearchDeps(func(deps *Deps, search *handlers.SearchHandler) error {
				count, err := search.HandleReindex(cmd.Context())
				if err != nil {
					return fmt.Errorf("reindexing: %w", err)
				}
				fmt.Printf("Indexed %d entries.\n", count)
				return nil
			})
		},
	}
}
