package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lexibase/lexi-core/internal/domain/entities"
)

func newVariantCmd() *cobra.Command {
	var variantType string

	cmd := &cobra.Command{
		Use:   "variant <entry-id> <form>",
		Short: "Record an alternate form of an entry",
		Long: `Record an alternate surface form of a cached entry.

Examples:
  lexi variant 3 ran --type past
  lexi variant 3 running --type ing`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id: %s", args[0])
			}

			in := entities.VariantInput{
				EntryID: entryID,
				Variant: args[1],
			}
			if cmd.Flags().Changed("type") {
				in.VariantType = &variantType
			}

			return withDeps(func(deps *Deps) error {
				variant, err := deps.EntryHandler.HandleAddVariant(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Printf("Recorded variant %q for entry %d", variant.Variant, variant.EntryID)
				if variant.VariantType != "" {
					fmt.Printf(" (%s)", variant.VariantType)
				}
				fmt.Println()
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&variantType, "type", "", "Variant classification, e.g. \"plural\"")

	return cmd
}

func newVariantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variants <entry-id>",
		Short: "List the recorded forms of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entryID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid entry id: %s", args[0])
			}

			return withDeps(func(deps *Deps) error {
				variants, err := deps.EntryHandler.HandleListVariants(cmd.Context(), entryID)
				if err != nil {
					return err
				}

				if len(variants) == 0 {
					fmt.Println("No variants recorded.")
					return nil
				}

				for _, v := range variants {
					if v.VariantType != "" {
						fmt.Printf("  %-20s %s\n", v.Variant, v.VariantType)
					} else {
						fmt.Printf("  %s\n", v.Variant)
					}
				}
				return nil
			})
		},
	}
}
