package macrofit

import (
	"fmt"

	"github.com/macrofit/macrofit-cli/internal/settings"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage macrofit preferences",
}

var (
	cfgResetHour     string
	cfgCheatMeals    string
	cfgCheatDays     string
	cfgPeriod        string
	cfgRetentionDays string
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set preference values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appCtx) error {
			updates := 0
			apply := func(flag, key, value string) error {
				if !cmd.Flags().Changed(flag) {
					return nil
				}
				if err := a.Settings.SetPreference(key, value); err != nil {
					return err
				}
				updates++
				return nil
			}
			if err := apply("reset-hour", settings.PrefDayResetHour, cfgResetHour); err != nil {
				return err
			}
			if err := apply("cheat-meals", settings.PrefCheatMealsPerPeriod, cfgCheatMeals); err != nil {
				return err
			}
			if err := apply("cheat-days", settings.PrefCheatDaysPerPeriod, cfgCheatDays); err != nil {
				return err
			}
			if err := apply("period", settings.PrefCheatPeriodType, cfgPeriod); err != nil {
				return err
			}
			if err := apply("retention-days", settings.PrefRetentionDays, cfgRetentionDays); err != nil {
				return err
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d preference(s)\n", updates)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appCtx) error {
			prefs := a.Settings.Preferences()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "KEY\tVALUE")
			fmt.Fprintf(out, "%s\t%d\n", settings.PrefDayResetHour, prefs.DayResetHour)
			fmt.Fprintf(out, "%s\t%d\n", settings.PrefCheatMealsPerPeriod, prefs.CheatMealsPerPeriod)
			fmt.Fprintf(out, "%s\t%d\n", settings.PrefCheatDaysPerPeriod, prefs.CheatDaysPerPeriod)
			fmt.Fprintf(out, "%s\t%s\n", settings.PrefCheatPeriodType, prefs.CheatPeriodType)
			fmt.Fprintf(out, "%s\t%d\n", settings.PrefRetentionDays, prefs.RetentionDays)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)

	configSetCmd.Flags().StringVar(&cfgResetHour, "reset-hour", "", "Hour (0-23) at which the logical day rolls over")
	configSetCmd.Flags().StringVar(&cfgCheatMeals, "cheat-meals", "", "Cheat meals allowed per period")
	configSetCmd.Flags().StringVar(&cfgCheatDays, "cheat-days", "", "Cheat days allowed per period")
	configSetCmd.Flags().StringVar(&cfgPeriod, "period", "", "Cheat period type: weekly or monthly")
	configSetCmd.Flags().StringVar(&cfgRetentionDays, "retention-days", "", "Days to keep archived summaries")
}
