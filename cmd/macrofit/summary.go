package macrofit

import (
	"encoding/json"
	"fmt"

	"github.com/macrofit/macrofit-cli/internal/model"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Daily summaries and consistency scoring",
}

var (
	summaryDate string
	summaryJSON bool
)

var summaryShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show one day's summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateArg(summaryDate)
		if err != nil {
			return err
		}
		return withApp(func(a *appCtx) error {
			var summary model.DailySummary
			if date == "" {
				summary = a.Ledger.TodaysSummary()
			} else {
				summary = a.Ledger.SummaryForDay(date)
			}
			if summaryJSON {
				b, err := json.MarshalIndent(summary, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal summary: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			printSummary(cmd, summary)
			return nil
		})
	},
}

var summaryTrendDays int

var summaryTrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Average consistency over recent archived days (cheat days excluded)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if summaryTrendDays < 1 {
			return fmt.Errorf("--days must be >= 1")
		}
		return withApp(func(a *appCtx) error {
			summaries := a.Ledger.Summaries()
			if len(summaries) > summaryTrendDays {
				summaries = summaries[len(summaries)-summaryTrendDays:]
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "DATE\tKCAL\tSCORE\tMACRO\tNUTRIENT\tCHEAT DAY")
			var total float64
			var scored int
			for _, s := range summaries {
				cheat := ""
				if s.IsCheatDay {
					cheat = "yes"
				} else {
					total += s.ConsistencyScore
					scored++
				}
				fmt.Fprintf(out, "%s\t%.0f\t%.2f\t%d\t%d\t%s\n",
					s.Date, s.Totals.Calories, s.ConsistencyScore, s.MacroScore, s.NutrientScore, cheat)
			}
			if scored == 0 {
				fmt.Fprintln(out, "No scored days yet")
				return nil
			}
			fmt.Fprintf(out, "Average consistency over %d day(s): %.2f\n", scored, total/float64(scored))
			return nil
		})
	},
}

func printSummary(cmd *cobra.Command, s model.DailySummary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Date: %s\n", s.Date)
	if s.IsCheatDay {
		fmt.Fprintln(out, "Cheat day: yes (excluded from trend averages)")
	}
	fmt.Fprintf(out, "Meals: %d (%d cheat)\n", s.EntryCount, s.CheatMealCount)
	fmt.Fprintf(out, "Totals: %.0f kcal | P %.1fg | C %.1fg | F %.1fg | Fiber %.1fg\n",
		s.Totals.Calories, s.Totals.ProteinG, s.Totals.CarbsG, s.Totals.FatG, s.Totals.FiberG)
	fmt.Fprintf(out, "Consistency: %.2f (macro %d/60, nutrient %d/40)\n",
		s.ConsistencyScore, s.MacroScore, s.NutrientScore)

	if len(s.MacroResults) > 0 {
		fmt.Fprintln(out, "\nMacros:")
		fmt.Fprintln(out, "MACRO\tTARGET\tACTUAL\tRATIO\tSTATUS")
		for _, m := range s.MacroResults {
			fmt.Fprintf(out, "%s\t%.0f\t%.1f\t%.2f\t%s\n", m.Name, m.TargetG, m.ActualG, m.Ratio, m.Status)
		}
	}
	if len(s.NutrientResults) > 0 {
		fmt.Fprintln(out, "\nKey nutrients:")
		fmt.Fprintln(out, "NUTRIENT\tTARGET\tACTUAL\tACHIEVED")
		for _, n := range s.NutrientResults {
			achieved := "no"
			if n.Achieved {
				achieved = "yes"
			}
			fmt.Fprintf(out, "%s\t%.1f%s\t%.1f%s\t%s\n", n.Name, n.Target, n.Unit, n.Actual, n.Unit, achieved)
		}
	}
	if len(s.TopFoods) > 0 {
		fmt.Fprintf(out, "\nTop foods: %v\n", s.TopFoods)
	}
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.AddCommand(summaryShowCmd, summaryTrendCmd)

	summaryShowCmd.Flags().StringVar(&summaryDate, "date", "", "Logical day YYYY-MM-DD (default today)")
	summaryShowCmd.Flags().BoolVar(&summaryJSON, "json", false, "Output as JSON")
	summaryTrendCmd.Flags().IntVar(&summaryTrendDays, "days", 7, "Number of recent archived days")
}
