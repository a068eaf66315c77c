package macrofit

import (
	"fmt"

	"github.com/macrofit/macrofit-cli/internal/model"
	"github.com/spf13/cobra"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Browse and extend the food catalog",
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appCtx) error {
			foods, err := a.Catalog.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tNAME\tKCAL/100G\tP\tC\tF\tUSER")
			for _, f := range foods {
				user := ""
				if f.UserAdded {
					user = "yes"
				}
				fmt.Fprintf(out, "%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\t%s\n",
					f.ID, f.Name, f.Per100g.Calories, f.Per100g.ProteinG, f.Per100g.CarbsG, f.Per100g.FatG, user)
			}
			return nil
		})
	},
}

var foodShowCmd = &cobra.Command{
	Use:   "show <food-id>",
	Short: "Show a food's full per-100g nutrient profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appCtx) error {
			f, err := a.Catalog.Get(args[0])
			if err != nil {
				return err
			}
			if f == nil {
				return fmt.Errorf("food %q not found", args[0])
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID: %s\nName: %s\n", f.ID, f.Name)
			n := f.Per100g
			fmt.Fprintf(out, "Calories: %.0f\n", n.Calories)
			fmt.Fprintf(out, "Protein: %.1fg | Carbs: %.1fg | Fat: %.1fg\n", n.ProteinG, n.CarbsG, n.FatG)
			fmt.Fprintf(out, "Fiber: %.1fg | Sugar: %.1fg | Sat fat: %.1fg\n", n.FiberG, n.SugarG, n.SaturatedFatG)
			fmt.Fprintf(out, "Omega-3: %.2fg | Omega-6: %.2fg\n", n.Omega3G, n.Omega6G)
			fmt.Fprintf(out, "Sodium: %.0fmg | Potassium: %.0fmg\n", n.SodiumMg, n.PotassiumMg)
			fmt.Fprintf(out, "Iron: %.1fmg | Calcium: %.0fmg | Magnesium: %.0fmg | Zinc: %.1fmg\n",
				n.IronMg, n.CalciumMg, n.MagnesiumMg, n.ZincMg)
			fmt.Fprintf(out, "Vit A: %.0fmcg | Vit C: %.1fmg | Vit D: %.1fmcg | B6: %.2fmg | B12: %.2fmcg | Folate: %.0fmcg\n",
				n.VitaminAMcg, n.VitaminCMg, n.VitaminDMcg, n.VitaminB6Mg, n.VitaminB12Mcg, n.FolateMcg)
			return nil
		})
	},
}

var (
	foodAddID       string
	foodAddName     string
	foodAddCalories float64
	foodAddProtein  float64
	foodAddCarbs    float64
	foodAddFat      float64
	foodAddFiber    float64
	foodAddSugar    float64
	foodAddSatFat   float64
	foodAddSodium   float64
)

var foodAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a user food (values per 100g)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appCtx) error {
			per100g := model.Nutrients{
				Calories:      foodAddCalories,
				ProteinG:      foodAddProtein,
				CarbsG:        foodAddCarbs,
				FatG:          foodAddFat,
				FiberG:        foodAddFiber,
				SugarG:        foodAddSugar,
				SaturatedFatG: foodAddSatFat,
				SodiumMg:      foodAddSodium,
			}
			if err := a.Catalog.Add(foodAddID, foodAddName, per100g); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added food %s\n", foodAddID)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodListCmd, foodShowCmd, foodAddCmd)

	foodAddCmd.Flags().StringVar(&foodAddID, "id", "", "Food id (lowercase, hyphenated)")
	foodAddCmd.Flags().StringVar(&foodAddName, "name", "", "Display name")
	foodAddCmd.Flags().Float64Var(&foodAddCalories, "calories", 0, "Calories per 100g")
	foodAddCmd.Flags().Float64Var(&foodAddProtein, "protein", 0, "Protein grams per 100g")
	foodAddCmd.Flags().Float64Var(&foodAddCarbs, "carbs", 0, "Carb grams per 100g")
	foodAddCmd.Flags().Float64Var(&foodAddFat, "fat", 0, "Fat grams per 100g")
	foodAddCmd.Flags().Float64Var(&foodAddFiber, "fiber", 0, "Fiber grams per 100g")
	foodAddCmd.Flags().Float64Var(&foodAddSugar, "sugar", 0, "Sugar grams per 100g")
	foodAddCmd.Flags().Float64Var(&foodAddSatFat, "sat-fat", 0, "Saturated fat grams per 100g")
	foodAddCmd.Flags().Float64Var(&foodAddSodium, "sodium", 0, "Sodium mg per 100g")
	_ = foodAddCmd.MarkFlagRequired("id")
	_ = foodAddCmd.MarkFlagRequired("name")
}
