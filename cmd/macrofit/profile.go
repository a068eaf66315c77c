package macrofit

import (
	"fmt"

	"github.com/macrofit/macrofit-cli/internal/model"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the user profile that drives target calculation",
}

var (
	profileAge        int
	profileGender     string
	profileWeight     float64
	profileWeightUnit string
	profileHeight     float64
	profileBodyFat    float64
	profileActivity   string
	profileGoal       string
	profileMeals      int
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the profile and recalculate targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		weightKg, err := convertWeightToKg(profileWeight, profileWeightUnit)
		if err != nil {
			return err
		}
		p := model.UserProfile{
			Age:           profileAge,
			Gender:        model.Gender(profileGender),
			WeightKg:      weightKg,
			HeightCm:      profileHeight,
			ActivityLevel: model.ActivityLevel(profileActivity),
			Goal:          model.Goal(profileGoal),
			MealsPerDay:   profileMeals,
		}
		if cmd.Flags().Changed("body-fat") {
			v := profileBodyFat
			p.BodyFatPct = &v
		}
		return withApp(func(a *appCtx) error {
			problems := a.Settings.UpdateProfile(p)
			if len(problems) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Profile saved, but targets were not recalculated:")
				for _, problem := range problems {
					fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", problem)
				}
				return fmt.Errorf("profile has %d validation problem(s)", len(problems))
			}
			targets := a.Settings.Targets()
			a.Ledger.ApplyTargets(targets)
			fmt.Fprintf(cmd.OutOrStdout(), "Profile saved. Daily target: %.0f kcal | P %.0fg | C %.0fg | F %.0fg\n",
				targets.TargetCalories, targets.ProteinG, targets.CarbsG, targets.FatG)
			fmt.Fprintf(cmd.OutOrStdout(), "Regenerated %d personalized meal targets (run 'macrofit targets' for details)\n",
				len(targets.MealDistribution))
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appCtx) error {
			p := a.Settings.Profile()
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile set (run 'macrofit profile set')")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Age: %d\n", p.Age)
			fmt.Fprintf(cmd.OutOrStdout(), "Gender: %s\n", p.Gender)
			fmt.Fprintf(cmd.OutOrStdout(), "Weight: %.1f kg\n", p.WeightKg)
			fmt.Fprintf(cmd.OutOrStdout(), "Height: %.1f cm\n", p.HeightCm)
			if p.BodyFatPct != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Body fat: %.1f%%\n", *p.BodyFatPct)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Body fat: not set")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Activity: %s\n", p.ActivityLevel)
			fmt.Fprintf(cmd.OutOrStdout(), "Goal: %s\n", p.Goal)
			fmt.Fprintf(cmd.OutOrStdout(), "Meals per day: %d\n", p.MealsPerDay)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd)

	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years (18-80)")
	profileSetCmd.Flags().StringVar(&profileGender, "gender", "", "Gender: male or female")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Body weight")
	profileSetCmd.Flags().StringVar(&profileWeightUnit, "weight-unit", "kg", "Weight unit: kg or lb")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm (140-220)")
	profileSetCmd.Flags().Float64Var(&profileBodyFat, "body-fat", 0, "Body fat percentage (enables Katch-McArdle BMR)")
	profileSetCmd.Flags().StringVar(&profileActivity, "activity", "moderate", "Activity level: sedentary, light, moderate, very_active, extremely_active")
	profileSetCmd.Flags().StringVar(&profileGoal, "goal", "maintenance", "Goal: cutting, aggressive_cutting, bulking, aggressive_bulking, maintenance")
	profileSetCmd.Flags().IntVar(&profileMeals, "meals", 4, "Meals per day: 3, 4, 5, or 6")
	_ = profileSetCmd.MarkFlagRequired("age")
	_ = profileSetCmd.MarkFlagRequired("gender")
	_ = profileSetCmd.MarkFlagRequired("weight")
	_ = profileSetCmd.MarkFlagRequired("height")
}
