package macrofit

import (
	"fmt"

	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's intake and remaining targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appCtx) error {
			progress := a.Ledger.GetDailyProgress()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", progress.Date)
			fmt.Fprintf(out, "Meals logged: %d\n", progress.EntryCount)
			fmt.Fprintf(out, "Intake: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n",
				progress.Totals.Calories, progress.Totals.ProteinG, progress.Totals.CarbsG, progress.Totals.FatG)
			if !progress.HasTargets {
				fmt.Fprintln(out, "Targets: not set (run 'macrofit profile set')")
				return nil
			}
			fmt.Fprintf(out, "Target: %.0f kcal | P %.0fg | C %.0fg | F %.0fg\n",
				progress.TargetCalories, progress.TargetProteinG, progress.TargetCarbsG, progress.TargetFatG)
			fmt.Fprintf(out, "Remaining: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n",
				progress.RemainingCalories, progress.RemainingProteinG, progress.RemainingCarbsG, progress.RemainingFatG)
			fmt.Fprintf(out, "Consistency so far: %.2f\n", progress.ConsistencyScore)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
