package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marqs-app/marqs/internal/store"
)

var (
	addTitle    string
	addCategory string
	addTags     string
	addNotes    string
)

var addCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a bookmark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := application.Store.Create(cmd.Context(), store.Draft{
			Title:    addTitle,
			URL:      args[0],
			Category: addCategory,
			Tags:     splitTags(addTags),
			Notes:    addNotes,
		})
		if err != nil {
			return err
		}
		fmt.Printf("added %s (%s)\n", b.Title, b.ID)
		return nil
	},
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func init() {
	addCmd.Flags().StringVarP(&addTitle, "title", "t", "", "bookmark title (defaults to the URL)")
	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "category (defaults to All)")
	addCmd.Flags().StringVar(&addTags, "tags", "", "comma-separated tags")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "free-form notes")

	rootCmd.AddCommand(addCmd)
}
