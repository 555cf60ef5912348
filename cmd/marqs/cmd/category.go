package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, c := range application.Store.Categories() {
			fmt.Println(c)
		}
		return nil
	},
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.Store.AddCategory(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("added category %s\n", args[0])
		return nil
	},
}

func init() {
	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd)
	rootCmd.AddCommand(categoryCmd)
}
