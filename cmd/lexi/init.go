package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lexibase/lexi-core/internal/infrastructure/config"
	"github.com/lexibase/lexi-core/internal/infrastructure/recordstore/sqlite"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the .lexi config directory and database",
		Long: `Initialize lexi in the current directory.

Writes .lexi/config.yaml with defaults and creates the SQLite database
with its schema. Edit profile.user_id (or set LEXI_USER) to sign in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}

			if err := config.WriteDefault(cwd); err != nil {
				return err
			}

			store, err := sqlite.NewRepository(config.SQLiteConfig{Path: config.DatabasePath(cwd)})
			if err != nil {
				return fmt.Errorf("creating sqlite repository: %w", err)
			}
			defer store.Close()

			if err := store.EnsureSchema(cmd.Context()); err != nil {
				return fmt.Errorf("ensuring sqlite schema: %w", err)
			}

			fmt.Println("Initialized lexi in .lexi/")
			fmt.Println("Edit .lexi/config.yaml to set profile.user_id.")
			return nil
		},
	}
}
