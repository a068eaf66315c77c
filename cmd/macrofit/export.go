package macrofit

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/macrofit/macrofit-cli/internal/food"
	"github.com/macrofit/macrofit-cli/internal/model"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

// exportSnapshot is the portable JSON shape; it round-trips everything a
// fresh install needs except the seeded food catalog.
type exportSnapshot struct {
	Settings    model.Settings         `json:"settings"`
	Definitions []model.MealDefinition `json:"meal_definitions"`
	Entries     []model.MealPlanEntry  `json:"meal_plan_entries"`
	Summaries   []model.DailySummary   `json:"daily_summaries"`
	UserFoods   []food.Food            `json:"user_foods"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export local data (json or csv)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(exportOut) == "" {
			return fmt.Errorf("--out is required")
		}
		return withApp(func(a *appCtx) error {
			switch strings.ToLower(strings.TrimSpace(exportFormat)) {
			case "json":
				foods, err := a.Catalog.List()
				if err != nil {
					return err
				}
				userFoods := make([]food.Food, 0)
				for _, f := range foods {
					if f.UserAdded {
						userFoods = append(userFoods, f)
					}
				}
				snapshot := exportSnapshot{
					Settings:    a.Settings.Settings(),
					Definitions: a.Ledger.Definitions(),
					Entries:     a.Ledger.Entries(),
					Summaries:   a.Ledger.Summaries(),
					UserFoods:   userFoods,
				}
				b, err := json.MarshalIndent(snapshot, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal export json: %w", err)
				}
				if err := os.WriteFile(exportOut, b, 0o644); err != nil {
					return fmt.Errorf("write export file: %w", err)
				}
			case "csv":
				f, err := os.Create(exportOut)
				if err != nil {
					return fmt.Errorf("create export csv: %w", err)
				}
				defer f.Close()
				w := csv.NewWriter(f)
				defer w.Flush()
				if err := w.Write([]string{"entry_id", "meal_id", "created_at", "is_cheat_meal", "calories", "protein_g", "carbs_g", "fat_g", "fiber_g", "foods_json"}); err != nil {
					return fmt.Errorf("write export csv header: %w", err)
				}
				for _, e := range a.Ledger.Entries() {
					foodsJSON, err := json.Marshal(e.SelectedFoods)
					if err != nil {
						return fmt.Errorf("marshal entry foods: %w", err)
					}
					record := []string{
						e.ID,
						e.MealID,
						e.CreatedAt.Format("2006-01-02T15:04:05-07:00"),
						strconv.FormatBool(e.IsCheatMeal),
						strconv.FormatFloat(e.CalculatedMacros.Calories, 'f', -1, 64),
						strconv.FormatFloat(e.CalculatedMacros.ProteinG, 'f', -1, 64),
						strconv.FormatFloat(e.CalculatedMacros.CarbsG, 'f', -1, 64),
						strconv.FormatFloat(e.CalculatedMacros.FatG, 'f', -1, 64),
						strconv.FormatFloat(e.CalculatedMacros.FiberG, 'f', -1, 64),
						string(foodsJSON),
					}
					if err := w.Write(record); err != nil {
						return fmt.Errorf("write export csv row: %w", err)
					}
				}
			default:
				return fmt.Errorf("unsupported --format %q (use json or csv)", exportFormat)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported data to %s\n", exportOut)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format: json or csv")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path")
}
