package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marqs-app/marqs/internal/store"
)

var (
	editTitle    string
	editURL      string
	editCategory string
	editTags     string
	editNotes    string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a bookmark",
	Long:  "Edit a bookmark. Only the fields given as flags change; the rest keep their values.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := application.Store.Get(args[0])
		if err != nil {
			return err
		}

		draft := store.Draft{
			Title:    current.Title,
			URL:      current.URL,
			Category: current.Category,
			Tags:     current.Tags,
			Notes:    current.Notes,
		}
		if cmd.Flags().Changed("title") {
			draft.Title = editTitle
		}
		if cmd.Flags().Changed("url") {
			draft.URL = editURL
		}
		if cmd.Flags().Changed("category") {
			draft.Category = editCategory
		}
		if cmd.Flags().Changed("tags") {
			draft.Tags = splitTags(editTags)
		}
		if cmd.Flags().Changed("notes") {
			draft.Notes = editNotes
		}

		b, err := application.Store.Update(cmd.Context(), args[0], draft)
		if err != nil {
			return err
		}
		fmt.Printf("updated %s\n", b.ID)
		return nil
	},
}

var pinCmd = &cobra.Command{
	Use:   "pin <id>",
	Short: "Toggle a bookmark's pinned flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pinned, err := application.Store.TogglePin(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if pinned {
			fmt.Println("pinned")
		} else {
			fmt.Println("unpinned")
		}
		return nil
	},
}

var reorderCmd = &cobra.Command{
	Use:   "reorder <id> <target-id>",
	Short: "Move a bookmark to another bookmark's position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.Store.Reorder(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("reordered")
		return nil
	},
}

var openCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Print a bookmark's URL and record the access",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := application.Store.MarkOpened(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Println(b.URL)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "new title")
	editCmd.Flags().StringVarP(&editURL, "url", "u", "", "new URL")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "new category")
	editCmd.Flags().StringVar(&editTags, "tags", "", "comma-separated tags (replaces existing)")
	editCmd.Flags().StringVar(&editNotes, "notes", "", "new notes")

	rootCmd.AddCommand(editCmd, pinCmd, reorderCmd, openCmd)
}
