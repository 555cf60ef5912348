package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the periodic snapshot scheduler until interrupted",
	Long: `Run in the foreground and capture a backup every MARQS_SNAPSHOT_INTERVAL
on top of the captures every mutation already triggers. Useful with the redis
backend, where other machines mutate the same store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if application.Cfg.SnapshotInterval <= 0 {
			return fmt.Errorf("MARQS_SNAPSHOT_INTERVAL must be set to run the daemon")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := application.StartScheduler(ctx); err != nil {
			return err
		}
		fmt.Printf("snapshot daemon running (interval %s), ctrl-c to stop\n",
			application.Cfg.SnapshotInterval)

		<-ctx.Done()
		fmt.Println("stopping")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd)
}
