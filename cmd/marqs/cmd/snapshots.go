package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Work with the rolling backup history",
}

var snapshotsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := application.Snapshots.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("no backups yet")
			return nil
		}
		for i, e := range entries {
			fmt.Printf("%d  %s  %d bookmark(s)\n",
				i,
				time.UnixMilli(e.At).Format(time.RFC3339),
				len(e.Data.Bookmarks))
		}
		return nil
	},
}

var snapshotsCaptureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture a backup of the current state",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.Snapshots.Capture(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("captured")
		return nil
	},
}

var snapshotsRestoreCmd = &cobra.Command{
	Use:   "restore <index>",
	Short: "Replace the current state with a backup",
	Long: `Replace the current state with backup <index> (see "snapshots list").
The backup entry itself stays in the history.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("index must be a number, got %q", args[0])
		}
		if !confirm(fmt.Sprintf("replace the current state with backup %d?", index)) {
			fmt.Println("aborted")
			return nil
		}

		state, err := application.Snapshots.Restore(cmd.Context(), index)
		if err != nil {
			return err
		}
		if err := application.Store.Load(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("restored %d bookmark(s) from backup\n", len(state.Bookmarks))
		return nil
	},
}

func init() {
	snapshotsCmd.AddCommand(snapshotsListCmd, snapshotsCaptureCmd, snapshotsRestoreCmd)
	rootCmd.AddCommand(snapshotsCmd)
}
