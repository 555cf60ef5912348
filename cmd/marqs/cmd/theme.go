package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marqs-app/marqs/internal/domain"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark]",
	Short: "Show or set the UI theme",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Println(application.Store.Theme())
			return nil
		}
		theme := args[0]
		if theme != domain.ThemeLight && theme != domain.ThemeDark {
			return fmt.Errorf("unknown theme %q (want light or dark)", theme)
		}
		if err := application.Store.SetTheme(cmd.Context(), theme); err != nil {
			return err
		}
		fmt.Printf("theme set to %s\n", theme)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
