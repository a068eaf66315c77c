package macrofit

import (
	"fmt"
	"strings"

	"github.com/macrofit/macrofit-cli/internal/ledger"
	"github.com/spf13/cobra"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log and manage consumed meals",
}

var (
	mealRef       string
	mealFoodFlags []string
	mealDate      string
	mealTime      string
	mealCheat     bool
	mealForce     bool
)

var mealLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Log a consumed meal against a meal definition",
	RunE: func(cmd *cobra.Command, args []string) error {
		foods, err := parseFoodsFlag(mealFoodFlags)
		if err != nil {
			return err
		}
		at, err := parseDateTimeOpt(mealDate, mealTime)
		if err != nil {
			return err
		}
		return withApp(func(a *appCtx) error {
			def, err := findDefinition(a.Ledger, mealRef)
			if err != nil {
				return err
			}
			if mealCheat && !mealForce && !a.Ledger.CanUseCheatMeal() {
				status := a.Ledger.CheatStatus()
				return fmt.Errorf("cheat meal quota exhausted (%d/%d this %s period, use --force to log anyway)",
					status.MealsUsed, status.MealsLimit, status.PeriodType)
			}
			entry, err := a.Ledger.LogMeal(ledger.LogMealInput{
				MealID:      def.ID,
				At:          at,
				IsCheatMeal: mealCheat,
				Foods:       foods,
			})
			if err != nil {
				return err
			}
			label := ""
			if entry.IsCheatMeal {
				label = " (cheat)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s%s: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n",
				def.Name, label,
				entry.CalculatedMacros.Calories, entry.CalculatedMacros.ProteinG,
				entry.CalculatedMacros.CarbsG, entry.CalculatedMacros.FatG)
			fmt.Fprintf(cmd.OutOrStdout(), "Entry ID: %s\n", entry.ID)
			return nil
		})
	},
}

var mealListDate string

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateArg(mealListDate)
		if err != nil {
			return err
		}
		return withApp(func(a *appCtx) error {
			entries := a.Ledger.Entries()
			if date != "" {
				entries = a.Ledger.EntriesForDay(date)
			}
			defsByID := map[string]string{}
			for _, def := range a.Ledger.Definitions() {
				defsByID[def.ID] = def.Name
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tDATE\tMEAL\tKCAL\tP\tC\tF\tCHEAT")
			for _, e := range entries {
				name := defsByID[e.MealID]
				if name == "" {
					name = e.MealID
				}
				cheat := ""
				if e.IsCheatMeal {
					cheat = "yes"
				}
				fmt.Fprintf(out, "%s\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\t%s\n",
					e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04"), name,
					e.CalculatedMacros.Calories, e.CalculatedMacros.ProteinG,
					e.CalculatedMacros.CarbsG, e.CalculatedMacros.FatG, cheat)
			}
			return nil
		})
	},
}

var (
	mealEditFoodFlags []string
	mealEditCheat     bool
	mealEditNoCheat   bool
	mealEditForce     bool
)

var mealEditCmd = &cobra.Command{
	Use:   "edit <entry-id>",
	Short: "Replace an entry's foods or cheat flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if mealEditCheat && mealEditNoCheat {
			return fmt.Errorf("--cheat and --no-cheat are mutually exclusive")
		}
		var foods []string
		if cmd.Flags().Changed("food") {
			foods = mealEditFoodFlags
		}
		return withApp(func(a *appCtx) error {
			id := strings.TrimSpace(args[0])
			// Flipping a non-cheat entry to cheat consumes quota the same
			// way logging one does.
			if mealEditCheat && !mealEditForce && !entryIsCheat(a.Ledger, id) && !a.Ledger.CanUseCheatMeal() {
				status := a.Ledger.CheatStatus()
				return fmt.Errorf("cheat meal quota exhausted (%d/%d this %s period, use --force to mark anyway)",
					status.MealsUsed, status.MealsLimit, status.PeriodType)
			}
			in := ledger.UpdateMealInput{EntryID: id}
			if foods != nil {
				parsed, err := parseFoodsFlag(foods)
				if err != nil {
					return err
				}
				in.Foods = parsed
			}
			if mealEditCheat {
				v := true
				in.IsCheatMeal = &v
			}
			if mealEditNoCheat {
				v := false
				in.IsCheatMeal = &v
			}
			entry, err := a.Ledger.UpdateMeal(in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %s: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n",
				entry.ID, entry.CalculatedMacros.Calories, entry.CalculatedMacros.ProteinG,
				entry.CalculatedMacros.CarbsG, entry.CalculatedMacros.FatG)
			return nil
		})
	},
}

func entryIsCheat(l *ledger.Ledger, entryID string) bool {
	for _, e := range l.Entries() {
		if e.ID == entryID {
			return e.IsCheatMeal
		}
	}
	return false
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Delete a logged meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appCtx) error {
			id := strings.TrimSpace(args[0])
			if err := a.Ledger.DeleteMeal(id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealLogCmd, mealListCmd, mealEditCmd, mealDeleteCmd)

	mealLogCmd.Flags().StringVar(&mealRef, "meal", "", "Meal definition id or name")
	mealLogCmd.Flags().StringArrayVar(&mealFoodFlags, "food", nil, "Selected food as id:grams (repeatable)")
	mealLogCmd.Flags().StringVar(&mealDate, "date", "", "Date in YYYY-MM-DD (default now)")
	mealLogCmd.Flags().StringVar(&mealTime, "time", "", "Time in HH:MM")
	mealLogCmd.Flags().BoolVar(&mealCheat, "cheat", false, "Log as a cheat meal (counts toward the period quota)")
	mealLogCmd.Flags().BoolVar(&mealForce, "force", false, "Log a cheat meal even when the quota is exhausted")
	_ = mealLogCmd.MarkFlagRequired("meal")

	mealListCmd.Flags().StringVar(&mealListDate, "date", "", "Filter by logical day YYYY-MM-DD")

	mealEditCmd.Flags().StringArrayVar(&mealEditFoodFlags, "food", nil, "Replacement foods as id:grams (repeatable)")
	mealEditCmd.Flags().BoolVar(&mealEditCheat, "cheat", false, "Mark as cheat meal (counts toward the period quota)")
	mealEditCmd.Flags().BoolVar(&mealEditNoCheat, "no-cheat", false, "Clear the cheat flag")
	mealEditCmd.Flags().BoolVar(&mealEditForce, "force", false, "Mark as cheat even when the quota is exhausted")
}
