package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexibase/lexi-core/internal/domain/entities"
)

func newLogCmd() *cobra.Command {
	var (
		language string
		entryID  int64
		source   string
		context  string
	)

	cmd := &cobra.Command{
		Use:   "log <term>",
		Short: "Record a lookup in your history",
		Long: `Append a lookup event to your history. Requires a signed-in user.

Examples:
  lexi log run
  lexi log ubiquitous --context "seen in an article" --source reader`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := entities.LookupInput{Term: args[0]}
			if cmd.Flags().Changed("lang") {
				in.Language = &language
			}
			if cmd.Flags().Changed("entry") {
				in.EntryID = &entryID
			}
			if cmd.Flags().Changed("source") {
				in.Source = &source
			}
			if cmd.Flags().Changed("context") {
				in.Context = &context
			}

			return withDeps(func(deps *Deps) error {
				lookup, err := deps.LookupHandler.HandleLog(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Printf("Logged %q (%s) at %s\n", lookup.Term, lookup.Language, lookup.LookedAt.Format("2006-01-02 15:04"))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&language, "lang", "", "Lookup language (default \"en\")")
	cmd.Flags().Int64Var(&entryID, "entry", 0, "Cached entry this lookup resolved to")
	cmd.Flags().StringVar(&source, "source", "", "Where the lookup came from")
	cmd.Flags().StringVar(&context, "context", "", "Sentence or situation the term appeared in")

	return cmd
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show your lookup history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(deps *Deps) error {
				lookups, err := deps.LookupHandler.HandleHistory(cmd.Context(), limit)
				if err != nil {
					return err
				}

				if len(lookups) == 0 {
					fmt.Println("No lookups recorded.")
					return nil
				}

				for _, l := range lookups {
					fmt.Printf("  %s  %-20s %s", l.LookedAt.Format("2006-01-02 15:04"), l.Term, l.Language)
					if l.Context != "" {
						fmt.Printf("  %q", l.Context)
					}
					fmt.Println()
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Maximum number of lookups to show")

	return cmd
}
