package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexibase/lexi-core/internal/domain/entities"
)

func newNoteCmd() *cobra.Command {
	var (
		noteText    string
		example     string
		tags        []string
		starred     bool
		familiarity string
	)

	cmd := &cobra.Command{
		Use:   "note <entry-id>",
		Short: "Save your note on an entry",
		Long: `Save a personal note on a cached entry. Requires a signed-in user.

You hold at most one note per entry: the first save creates it, later
saves change only the flags you pass and keep everything else.

Examples:
  lexi note 3 --star
  lexi note 3 --text "means to jog" --familiarity learning
  lexi note 3 --tags verbs,motion`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id: %s", args[0])
			}

			in := entities.NoteInput{EntryID: entryID}
			if cmd.Flags().Changed("text") {
				in.Note = &noteText
			}
			if cmd.Flags().Changed("example") {
				in.ExampleSentence = &example
			}
			if cmd.Flags().Changed("tags") {
				in.Tags = tags
			}
			if cmd.Flags().Changed("star") {
				in.Starred = &starred
			}
			if cmd.Flags().Changed("familiarity") {
				level, err := entities.ParseFamiliarity(familiarity)
				if err != nil {
					return err
				}
				in.Familiarity = &level
			}

			return withDeps(func(deps *Deps) error {
				note, err := deps.NoteHandler.HandleSave(cmd.Context(), in)
				if err != nil {
					return err
				}
				printNote(note)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&noteText, "text", "", "Note text")
	cmd.Flags().StringVar(&example, "example", "", "Example sentence")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Comma-separated tags")
	cmd.Flags().BoolVar(&starred, "star", false, "Star or unstar the entry (--star=false to unstar)")
	cmd.Flags().StringVar(&familiarity, "familiarity", "", "Learning progress: new, learning, familiar, mastered")

	return cmd
}

func newNotesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notes",
		Short: "List your word notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(deps *Deps) error {
				notes, err := deps.NoteHandler.HandleList(cmd.Context())
				if err != nil {
					return err
				}

				if len(notes) == 0 {
					fmt.Println("No notes saved.")
					return nil
				}

				for i := range notes {
					printNote(&notes[i])
				}
				return nil
			})
		},
	}
}

func printNote(note *entities.Note) {
	star := " "
	if note.Starred {
		star = "*"
	}
	fmt.Printf("%s entry %d [%s]", star, note.EntryID, note.Familiarity)
	if note.Note != "" {
		fmt.Printf(" %s", note.Note)
	}
	if len(note.Tags) > 0 {
		fmt.Printf(" (%s)", strings.Join(note.Tags, ", "))
	}
	fmt.Println()
}
