package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexibase/lexi-core/internal/domain/entities"
)

func newDefineCmd() *cobra.Command {
	var (
		id       int64
		language string
		lemma    string
		pos      string
		payload  string
	)

	cmd := &cobra.Command{
		Use:   "define [term]",
		Short: "Cache or update a dictionary entry",
		Long: `Cache a dictionary entry, or update an existing one by --id.

Without --id a new entry is always created. With --id, only the flags you
pass are changed; everything else keeps its stored value.

Examples:
  lexi define run
  lexi define colour --lang en-GB
  lexi define --id 3 --lemma run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := entities.EntryInput{}
			if len(args) > 0 {
				in.Term = &args[0]
			}
			if cmd.Flags().Changed("id") {
				in.ID = &id
			}
			if cmd.Flags().Changed("lang") {
				in.Language = &language
			}
			if cmd.Flags().Changed("lemma") {
				in.Lemma = &lemma
			}
			if cmd.Flags().Changed("pos") {
				in.PartOfSpeech = &pos
			}
			if cmd.Flags().Changed("payload") {
				var parsed map[string]any
				if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
					return fmt.Errorf("parsing payload: %w", err)
				}
				in.Payload = parsed
			}

			return withDeps(func(deps *Deps) error {
				entry, err := deps.EntryHandler.HandleUpsert(cmd.Context(), in)
				if err != nil {
					return err
				}
				printEntry(entry)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Update the entry with this ID")
	cmd.Flags().StringVar(&language, "lang", "", "Entry language (default \"en\")")
	cmd.Flags().StringVar(&lemma, "lemma", "", "Normalized form of the term")
	cmd.Flags().StringVar(&pos, "pos", "", "Part of speech")
	cmd.Flags().StringVar(&payload, "payload", "", "Structured payload as JSON")

	return cmd
}

func printEntry(entry *entities.Entry) {
	fmt.Printf("[%d] %s (%s)", entry.ID, entry.Term, entry.Language)
	if entry.Lemma != "" && entry.Lemma != entry.Term {
		fmt.Printf(" lemma=%s", entry.Lemma)
	}
	if entry.PartOfSpeech != "" {
		fmt.Printf(" %s", entry.PartOfSpeech)
	}
	fmt.Println()
}
