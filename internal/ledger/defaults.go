package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/macrofit/macrofit-cli/internal/model"
)

// defaultDefinitions is the built-in five-meal layout used before any
// personalization and after a revert.
func defaultDefinitions(now time.Time) []model.MealDefinition {
	layout := []struct {
		name    string
		targets model.MacroTargets
	}{
		{"Breakfast", model.MacroTargets{ProteinG: 30, CarbsG: 45, MinFiberG: 5, MaxSugarG: 15, FatG: 15}},
		{"Mid-Morning", model.MacroTargets{ProteinG: 20, CarbsG: 30, MinFiberG: 4, MaxSugarG: 10, FatG: 10}},
		{"Lunch", model.MacroTargets{ProteinG: 35, CarbsG: 55, MinFiberG: 6, MaxSugarG: 15, FatG: 18}},
		{"Post-Workout", model.MacroTargets{ProteinG: 35, CarbsG: 50, MinFiberG: 4, MaxSugarG: 20, FatG: 8}},
		{"Dinner", model.MacroTargets{ProteinG: 35, CarbsG: 40, MinFiberG: 6, MaxSugarG: 10, FatG: 18}},
	}

	defs := make([]model.MealDefinition, 0, len(layout))
	for _, item := range layout {
		defs = append(defs, model.MealDefinition{
			ID:        uuid.New().String(),
			Name:      item.name,
			Targets:   item.targets,
			CreatedAt: now,
		})
	}
	return defs
}
