package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEntriesCmd() *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List cached dictionary entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(deps *Deps) error {
				result, err := deps.EntryHandler.HandleList(cmd.Context(), limit, offset)
				if err != nil {
					return fmt.Errorf("listing entries: %w", err)
				}

				if len(result.Entries) == 0 {
					fmt.Println("No entries cached.")
					return nil
				}

				fmt.Printf("Entries (%d total):\n\n", result.Total)
				for i := range result.Entries {
					printEntry(&result.Entries[i])
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultListLimit, "Maximum number of entries to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of entries to skip")

	return cmd
}
