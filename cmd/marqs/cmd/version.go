package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marqs-app/marqs/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s (commit=%s, built=%s, go=%s)\n",
			version.App, version.Version, version.Commit, version.BuildDate, version.GoVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
