package macrofit

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Show the calculated daily and per-meal targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appCtx) error {
			t := a.Settings.Targets()
			if t == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No targets yet (run 'macrofit profile set' with a complete profile)")
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "BMR: %.0f kcal\n", t.BMR)
			fmt.Fprintf(out, "TDEE: %.0f kcal\n", t.TDEE)
			fmt.Fprintf(out, "Target: %.0f kcal\n", t.TargetCalories)
			fmt.Fprintf(out, "Macros: P %.0fg | C %.0fg | F %.0fg\n", t.ProteinG, t.CarbsG, t.FatG)
			fmt.Fprintf(out, "Fiber: >= %.0fg | Sugar: <= %.0fg | Sat fat: <= %.1fg | Sodium: <= %.0fmg\n",
				t.FiberG, t.SugarG, t.SaturatedFatG, t.SodiumMg)

			fmt.Fprintln(out, "\nPer-meal distribution:")
			fmt.Fprintln(out, "MEAL\tP\tC\tF\tFIBER>=\tSUGAR<=")
			for _, m := range t.MealDistribution {
				fmt.Fprintf(out, "%s\t%d\t%d\t%d\t%d\t%d\n",
					m.Name, m.ProteinG, m.CarbsG, m.FatG, m.MinFiberG, m.MaxSugarG)
			}

			names := make([]string, 0, len(t.Micronutrients))
			for name := range t.Micronutrients {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Fprintln(out, "\nMicronutrients:")
			fmt.Fprintln(out, "NUTRIENT\tTARGET\tUNIT")
			for _, name := range names {
				amount := t.Micronutrients[name]
				fmt.Fprintf(out, "%s\t%.1f\t%s\n", name, amount.Value, amount.Unit)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(targetsCmd)
}
