package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	dedupeResolve bool
	dedupeYes     bool
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Find bookmarks sharing the same URL",
	Long: `Find live bookmarks that share the same URL across all categories.
With --resolve, every duplicate except the first occurrence is moved to the
trash, where it can still be restored.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		groups := application.Store.FindDuplicates()
		if len(groups) == 0 {
			fmt.Println("no duplicates")
			return nil
		}

		for _, g := range groups {
			fmt.Println(g.URL)
			for i, b := range g.Bookmarks {
				marker := "  keep  "
				if i > 0 {
					marker = "  trash "
				}
				fmt.Printf("%s%s  [%s]  %s\n", marker, b.Title, b.Category, b.ID)
			}
		}

		if !dedupeResolve {
			fmt.Println("\nrun with --resolve to trash the duplicates")
			return nil
		}
		if !dedupeYes && !confirm("trash all duplicates except the first of each group?") {
			fmt.Println("aborted")
			return nil
		}

		trashed, err := application.Store.ResolveDuplicates(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("trashed %d duplicate(s)\n", trashed)
		return nil
	},
}

func init() {
	dedupeCmd.Flags().BoolVar(&dedupeResolve, "resolve", false, "trash all duplicates except the first occurrence")
	dedupeCmd.Flags().BoolVarP(&dedupeYes, "yes", "y", false, "skip the confirmation prompt")

	rootCmd.AddCommand(dedupeCmd)
}
