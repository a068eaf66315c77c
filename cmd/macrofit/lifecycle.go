package macrofit

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var lifecycleCmd = &cobra.Command{
	Use:   "lifecycle",
	Short: "Archive old entries into summaries and prune expired summaries",
}

var lifecycleRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one archive and prune pass",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appCtx) error {
			report := a.Ledger.RunLifecycle()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Archived entries: %d\n", report.ArchivedEntries)
			if len(report.ArchivedDays) > 0 {
				fmt.Fprintf(out, "Archived days: %s\n", strings.Join(report.ArchivedDays, ", "))
			}
			fmt.Fprintf(out, "Pruned summaries: %d\n", report.PrunedSummaries)
			if !report.Changed() {
				fmt.Fprintln(out, "Nothing to do")
			}
			return nil
		})
	},
}

var lifecycleInterval time.Duration

var lifecycleWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run lifecycle passes on an interval until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		if lifecycleInterval <= 0 {
			return fmt.Errorf("--interval must be > 0")
		}
		return withApp(func(a *appCtx) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Watching every %s (ctrl-c to stop)\n", lifecycleInterval)
			a.Ledger.Watch(ctx, lifecycleInterval)
			fmt.Fprintln(cmd.OutOrStdout(), "Stopped")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(lifecycleCmd)
	lifecycleCmd.AddCommand(lifecycleRunCmd, lifecycleWatchCmd)

	lifecycleWatchCmd.Flags().DurationVar(&lifecycleInterval, "interval", 24*time.Hour, "Time between passes")
}
