package macrofit

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var cheatCmd = &cobra.Command{
	Use:   "cheat",
	Short: "Cheat meal and cheat day quotas",
}

var cheatStatusJSON bool

var cheatStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show quota usage for the current period",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appCtx) error {
			status := a.Ledger.CheatStatus()
			if cheatStatusJSON {
				b, err := json.MarshalIndent(status, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal cheat status: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Period: %s (since %s)\n", status.PeriodType, status.PeriodStart)
			fmt.Fprintf(out, "Cheat meals: %d/%d used\n", status.MealsUsed, status.MealsLimit)
			fmt.Fprintf(out, "Cheat days: %d/%d used\n", status.DaysUsed, status.DaysLimit)
			if a.Ledger.CanUseCheatMeal() {
				fmt.Fprintln(out, "A cheat meal is available")
			} else {
				fmt.Fprintln(out, "No cheat meals left this period")
			}
			return nil
		})
	},
}

var (
	cheatDayDate  string
	cheatDayUnset bool
	cheatDayForce bool
)

var cheatDayCmd = &cobra.Command{
	Use:   "day",
	Short: "Mark or unmark a logical day as a cheat day",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateArg(cheatDayDate)
		if err != nil {
			return err
		}
		return withApp(func(a *appCtx) error {
			if date == "" {
				date = a.Ledger.GetDailyProgress().Date
			}
			if !cheatDayUnset && !cheatDayForce && !a.Ledger.CanUseCheatDay() {
				status := a.Ledger.CheatStatus()
				return fmt.Errorf("cheat day quota exhausted (%d/%d this %s period, use --force to mark anyway)",
					status.DaysUsed, status.DaysLimit, status.PeriodType)
			}
			summary := a.Ledger.SetCheatDay(date, !cheatDayUnset)
			if summary.IsCheatDay {
				fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as a cheat day\n", date)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Unmarked cheat day %s\n", date)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(cheatCmd)
	cheatCmd.AddCommand(cheatStatusCmd, cheatDayCmd)

	cheatStatusCmd.Flags().BoolVar(&cheatStatusJSON, "json", false, "Output as JSON")
	cheatDayCmd.Flags().StringVar(&cheatDayDate, "date", "", "Logical day YYYY-MM-DD (default today)")
	cheatDayCmd.Flags().BoolVar(&cheatDayUnset, "unset", false, "Clear the cheat day flag")
	cheatDayCmd.Flags().BoolVar(&cheatDayForce, "force", false, "Mark even when the quota is exhausted")
}
