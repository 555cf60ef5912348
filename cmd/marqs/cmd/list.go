package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/marqs-app/marqs/internal/domain"
	"github.com/marqs-app/marqs/internal/store"
)

var (
	listFilter string
	listSearch string
	listSort   string
	listIDs    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarks",
	RunE: func(cmd *cobra.Command, args []string) error {
		bookmarks := application.Store.List(store.Query{
			Filter: listFilter,
			Search: listSearch,
			Sort:   listSort,
		})
		if len(bookmarks) == 0 {
			fmt.Println("no bookmarks")
			return nil
		}
		for _, b := range bookmarks {
			printBookmark(b)
		}
		return nil
	},
}

var (
	titleColor    = color.New(color.FgCyan, color.Bold)
	categoryColor = color.New(color.FgYellow)
	mutedColor    = color.New(color.FgHiBlack)
)

func printBookmark(b domain.Bookmark) {
	pin := "  "
	if b.Pinned {
		pin = "* "
	}
	fmt.Print(pin)
	titleColor.Print(b.Title)
	fmt.Print("  ")
	categoryColor.Printf("[%s]", b.Category)
	fmt.Printf("  %s", b.URL)
	if len(b.Tags) > 0 {
		mutedColor.Printf("  %v", b.Tags)
	}
	if listIDs {
		mutedColor.Printf("  %s  %s", b.ID, time.UnixMilli(b.Updated).Format("2006-01-02"))
	}
	fmt.Println()
}

func init() {
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "category name, \"all\" or \"trash\"")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "free-text search")
	listCmd.Flags().StringVar(&listSort, "sort", "", "manual, newest, oldest, title or updated")
	listCmd.Flags().BoolVar(&listIDs, "ids", false, "show ids and update dates")

	rootCmd.AddCommand(listCmd)
}
