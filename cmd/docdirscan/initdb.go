package main

import (
	"errors"
	"fmt"

	"github.com/eg467/docdirscan/internal/config"
	"github.com/eg467/docdirscan/internal/database"
	"github.com/spf13/cobra"
)

// NewInitDBCmd creates the initdb command.
func NewInitDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "initdb",
		Short: "Destructively reset the directory database",
		Long: `Delete the directory database and recreate it empty, with lookup
tables reseeded.

This removes every scraped profile, session, and downloaded headshot
record. It cannot be undone, so --force is required.

Examples:
  # Reset the default database
  docdirscan initdb --force

  # Reset a database in a custom directory
  docdirscan initdb --force --dir ./scrape-data`,
		RunE: runInitDBCmd,
	}

	cmd.Flags().String("dir", "",
		"Directory containing the database (default: XDG data dir)")
	cmd.Flags().BoolP("force", "f", false,
		"Confirm the destructive reset")

	return cmd
}

// runInitDBCmd executes the initdb command.
func runInitDBCmd(cmd *cobra.Command, _ []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	if !force {
		return errors.New("initdb deletes all scraped data; pass --force to confirm")
	}

	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return err
	}
	if dir == "" {
		dir = config.XDGDataDir()
	}

	logger := setupLogger(getVerboseFlag(cmd))

	db, err := database.Open(dir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}

	logger.Info("database reset", "path", db.Path())
	fmt.Fprintf(cmd.OutOrStdout(), "Database reset: %s\n", db.Path())
	return nil
}
