package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/macrofit/macrofit-cli/internal/model"
	"github.com/macrofit/macrofit-cli/internal/store"
)

type LogMealInput struct {
	MealID      string
	At          time.Time
	IsCheatMeal bool
	Foods       []model.SelectedFood
}

// LogMeal records a consumed meal. Nutrients are resolved through the food
// catalog at log time; unknown food ids contribute zero.
func (l *Ledger) LogMeal(in LogMealInput) (model.MealPlanEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.definitionByIDLocked(in.MealID) == nil {
		return model.MealPlanEntry{}, fmt.Errorf("meal definition %q not found", in.MealID)
	}
	at := in.At
	if at.IsZero() {
		at = l.clk.Now()
	}

	entry := model.MealPlanEntry{
		ID:               uuid.New().String(),
		MealID:           in.MealID,
		CreatedAt:        at,
		IsCheatMeal:      in.IsCheatMeal,
		SelectedFoods:    append([]model.SelectedFood(nil), in.Foods...),
		CalculatedMacros: l.resolveFoods(in.Foods),
	}
	l.entries = append(l.entries, entry)
	l.persistLocked(store.KeyMealPlanEntries, l.entries)
	return entry, nil
}

type UpdateMealInput struct {
	EntryID     string
	Foods       []model.SelectedFood
	IsCheatMeal *bool
}

// UpdateMeal replaces an entry's selected foods and recomputes its
// nutrient vector; the cheat flag changes only when set.
func (l *Ledger) UpdateMeal(in UpdateMealInput) (model.MealPlanEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].ID != in.EntryID {
			continue
		}
		if in.Foods != nil {
			l.entries[i].SelectedFoods = append([]model.SelectedFood(nil), in.Foods...)
			l.entries[i].CalculatedMacros = l.resolveFoods(in.Foods)
		}
		if in.IsCheatMeal != nil {
			l.entries[i].IsCheatMeal = *in.IsCheatMeal
		}
		l.persistLocked(store.KeyMealPlanEntries, l.entries)
		return l.entries[i], nil
	}
	return model.MealPlanEntry{}, fmt.Errorf("entry %q not found", in.EntryID)
}

func (l *Ledger) DeleteMeal(entryID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].ID == entryID {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			l.persistLocked(store.KeyMealPlanEntries, l.entries)
			return nil
		}
	}
	return fmt.Errorf("entry %q not found", entryID)
}

// resolveFoods sums catalog vectors scaled by portion. Unknown ids and
// catalog read failures contribute zero rather than failing the log.
func (l *Ledger) resolveFoods(foods []model.SelectedFood) model.Nutrients {
	total := model.Nutrients{}
	for _, f := range foods {
		if f.PortionGrams <= 0 {
			continue
		}
		per100, ok, err := l.foods.PerHundredGrams(f.FoodID)
		if err != nil {
			l.logger.Warn("resolving food, counting as zero", "food_id", f.FoodID, "error", err)
			continue
		}
		if !ok {
			continue
		}
		total = total.Add(per100.Scale(f.PortionGrams / 100))
	}
	return total
}
