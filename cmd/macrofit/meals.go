package macrofit

import (
	"fmt"

	"github.com/macrofit/macrofit-cli/internal/model"
	"github.com/spf13/cobra"
)

var mealsCmd = &cobra.Command{
	Use:   "meals",
	Short: "Manage meal definitions",
}

var mealsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meal definitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appCtx) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tNAME\tP\tC\tF\tFIBER>=\tSUGAR<=\tKIND")
			for _, def := range a.Ledger.Definitions() {
				kind := "default"
				if def.PersonalizedGenerated {
					kind = "personalized"
				}
				if def.UserCustom {
					kind = "custom"
				}
				fmt.Fprintf(out, "%s\t%s\t%d\t%d\t%d\t%d\t%d\t%s\n",
					def.ID, def.Name,
					def.Targets.ProteinG, def.Targets.CarbsG, def.Targets.FatG,
					def.Targets.MinFiberG, def.Targets.MaxSugarG, kind)
			}
			return nil
		})
	},
}

var (
	mealsAddName     string
	mealsAddProtein  int
	mealsAddCarbs    int
	mealsAddFat      int
	mealsAddMinFiber int
	mealsAddMaxSugar int
)

var mealsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a custom meal definition",
	RunE: func(cmd *cobra.Command, args []string) error {
		if mealsAddName == "" {
			return fmt.Errorf("--name is required")
		}
		return withApp(func(a *appCtx) error {
			def := a.Ledger.AddCustomDefinition(mealsAddName, model.MacroTargets{
				ProteinG:  mealsAddProtein,
				CarbsG:    mealsAddCarbs,
				FatG:      mealsAddFat,
				MinFiberG: mealsAddMinFiber,
				MaxSugarG: mealsAddMaxSugar,
			})
			fmt.Fprintf(cmd.OutOrStdout(), "Added custom meal %s (%s)\n", def.Name, def.ID)
			return nil
		})
	},
}

var mealsRevertCmd = &cobra.Command{
	Use:   "revert",
	Short: "Revert to the default meal definitions (custom meals are kept)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appCtx) error {
			a.Ledger.RevertDefinitions()
			fmt.Fprintln(cmd.OutOrStdout(), "Reverted to default meal definitions")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(mealsCmd)
	mealsCmd.AddCommand(mealsListCmd, mealsAddCmd, mealsRevertCmd)

	mealsAddCmd.Flags().StringVar(&mealsAddName, "name", "", "Meal name")
	mealsAddCmd.Flags().IntVar(&mealsAddProtein, "protein", 0, "Protein target grams")
	mealsAddCmd.Flags().IntVar(&mealsAddCarbs, "carbs", 0, "Carb target grams")
	mealsAddCmd.Flags().IntVar(&mealsAddFat, "fat", 0, "Fat target grams")
	mealsAddCmd.Flags().IntVar(&mealsAddMinFiber, "min-fiber", 0, "Minimum fiber grams")
	mealsAddCmd.Flags().IntVar(&mealsAddMaxSugar, "max-sugar", 0, "Maximum sugar grams")
	_ = mealsAddCmd.MarkFlagRequired("name")
}
