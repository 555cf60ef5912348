// Package cmd implements the marqs command tree. Every subcommand talks to
// the store through the app wiring; nothing here holds state of its own.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marqs-app/marqs/internal/app"
)

var application *app.App

var rootCmd = &cobra.Command{
	Use:   "marqs",
	Short: "marqs - local-first bookmark manager",
	Long: `marqs keeps your bookmarks in a local store with rolling backups,
smart imports and encrypted export/import for moving between machines.

Configuration comes from MARQS_* environment variables (or a .env file):
MARQS_BACKEND selects file (default), redis or memory storage.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if application != nil {
			_ = application.Close()
		}
		os.Exit(1)
	}
	if application != nil {
		_ = application.Close()
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	application, err = app.New(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	return nil
}
