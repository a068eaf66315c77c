package macrofit

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appCtx) error {
			report := a.Ledger.Doctor()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Entries: %d\n", report.Entries)
			fmt.Fprintf(out, "Orphan entries (unknown meal): %d\n", report.OrphanEntries)
			fmt.Fprintf(out, "Unknown food references: %d\n", report.UnknownFoodRefs)
			fmt.Fprintf(out, "Persisted summaries: %d\n", report.PersistedSummaries)
			fmt.Fprintf(out, "Custom meals: %d | Personalized meals: %d\n", report.UserCustomMeals, report.PersonalizedMeals)
			if report.OrphanEntries > 0 || report.UnknownFoodRefs > 0 {
				return fmt.Errorf("doctor found dangling references")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
