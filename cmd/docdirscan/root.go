// Package main provides the entry point for the docdirscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for docdirscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docdirscan",
		Short: "Physician directory scraper",
		Long: `docdirscan scrapes physician profiles from public provider directories
and merges them into a local database.

Supported sources:
- lvhn: a hospital-network "find a doctor" site, crawled page by page
- ibx:  an insurance-network provider search, replayed from recorded
        profile documents

Shared people, places, and institutions (locations, schools, hospitals,
specialties) are deduplicated across sources, so repeated searches grow
one consistent directory instead of parallel copies.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewLvhnCmd())
	cmd.AddCommand(NewIbxCmd())
	cmd.AddCommand(NewInitDBCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
