package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexibase/lexi-core/internal/domain/entities"
)

func newFetchCmd() *cobra.Command {
	var (
		language string
		logIt    bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <term>",
		Short: "Fetch a definition from the dictionary source and cache it",
		Long: `Fetch a term from the configured dictionary API and cache the result
as a new entry. Pass --log to also record the lookup in your history
(requires a signed-in user).

Examples:
  lexi fetch serendipity
  lexi fetch chat --lang fr --log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			return withDeps(func(deps *Deps) error {
				in, err := deps.Source.Fetch(ctx, language, args[0])
				if err != nil {
					return fmt.Errorf("fetching %q: %w", args[0], err)
				}

				entry, err := deps.EntryHandler.HandleUpsert(ctx, in)
				if err != nil {
					return err
				}
				printEntry(entry)

				if logIt {
					source := "fetch"
					_, err := deps.LookupHandler.HandleLog(ctx, entities.LookupInput{
						Term:     entry.Term,
						Language: &entry.Language,
						EntryID:  &entry.ID,
						Source:   &source,
					})
					if err != nil {
						return err
					}
					fmt.Println("Logged lookup.")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&language, "lang", "", "Language to fetch (default \"en\")")
	cmd.Flags().BoolVar(&logIt, "log", false, "Also record this lookup in history")

	return cmd
}
