package ledger_test

import (
	"testing"

	"github.com/macrofit/macrofit-cli/internal/clock"
	"github.com/macrofit/macrofit-cli/internal/ledger"
	"github.com/macrofit/macrofit-cli/internal/model"
	"github.com/macrofit/macrofit-cli/internal/store"
)

func TestEmptyStoreLoadsDefaultDefinitions(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-10 12:00", nil)
	defs := env.ledger.Definitions()
	if len(defs) != 5 {
		t.Fatalf("default definitions = %d, want 5", len(defs))
	}
	want := []string{"Breakfast", "Mid-Morning", "Lunch", "Post-Workout", "Dinner"}
	for i, def := range defs {
		if def.Name != want[i] {
			t.Errorf("definition[%d] = %q, want %q", i, def.Name, want[i])
		}
		if def.UserCustom || def.PersonalizedGenerated {
			t.Errorf("default definition %q has wrong flags", def.Name)
		}
	}
}

func TestStoreFailureFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	kv.failGet = true
	l := ledger.New(kv, fakeFoods{}, clock.Fixed{At: localTime(t, "2026-03-10 12:00")},
		testLogger(), model.DefaultPreferences(), nil)
	if len(l.Definitions()) != 5 {
		t.Fatalf("expected default definitions when the store is unreadable")
	}
	if len(l.Entries()) != 0 {
		t.Fatalf("expected empty entries when the store is unreadable")
	}
}

func TestApplyTargetsRegeneratesDefinitions(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-10 12:00", nil)
	custom := env.ledger.AddCustomDefinition("Night Snack", model.MacroTargets{ProteinG: 20, CarbsG: 10, FatG: 5})

	env.ledger.ApplyTargets(testTargets())
	defs := env.ledger.Definitions()
	if len(defs) != 6 {
		t.Fatalf("definitions = %d, want 5 personalized + 1 custom", len(defs))
	}
	var personalized, customSurvived int
	for _, def := range defs {
		if def.PersonalizedGenerated {
			personalized++
			if def.Targets.ProteinG != 30 {
				t.Errorf("personalized %q protein = %d, want 30", def.Name, def.Targets.ProteinG)
			}
		}
		if def.ID == custom.ID {
			customSurvived++
		}
	}
	if personalized != 5 || customSurvived != 1 {
		t.Fatalf("personalized = %d, custom survived = %d", personalized, customSurvived)
	}
}

func TestRevertDefinitionsKeepsCustom(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-10 12:00", testTargets())
	custom := env.ledger.AddCustomDefinition("Night Snack", model.MacroTargets{ProteinG: 20})

	env.ledger.RevertDefinitions()
	defs := env.ledger.Definitions()
	if len(defs) != 6 {
		t.Fatalf("definitions after revert = %d, want 6", len(defs))
	}
	for _, def := range defs {
		if def.PersonalizedGenerated {
			t.Fatalf("personalized definition survived revert: %+v", def)
		}
	}
	found := false
	for _, def := range defs {
		if def.ID == custom.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("custom definition lost on revert")
	}
}

func TestLogMealRequiresKnownDefinition(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-10 12:00", nil)
	_, err := env.ledger.LogMeal(ledger.LogMealInput{MealID: "nope"})
	if err == nil {
		t.Fatalf("expected error for unknown meal definition")
	}
}

func TestUpdateAndDeleteMeal(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-10 12:00", testTargets())
	entry := logMealAt(t, env, env.now, false, model.SelectedFood{FoodID: "perfect", PortionGrams: 100})

	cheat := true
	updated, err := env.ledger.UpdateMeal(ledger.UpdateMealInput{
		EntryID:     entry.ID,
		Foods:       []model.SelectedFood{{FoodID: "perfect", PortionGrams: 200}},
		IsCheatMeal: &cheat,
	})
	if err != nil {
		t.Fatalf("update meal: %v", err)
	}
	if !updated.IsCheatMeal {
		t.Errorf("cheat flag not applied")
	}
	if updated.CalculatedMacros.ProteinG != 15 {
		t.Errorf("recomputed protein = %v, want 15", updated.CalculatedMacros.ProteinG)
	}

	if err := env.ledger.DeleteMeal(entry.ID); err != nil {
		t.Fatalf("delete meal: %v", err)
	}
	if err := env.ledger.DeleteMeal(entry.ID); err == nil {
		t.Fatalf("expected error deleting a missing entry")
	}
}

func TestMutationsPersistCollections(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-10 12:00", testTargets())
	logMealAt(t, env, env.now, false, model.SelectedFood{FoodID: "perfect", PortionGrams: 100})
	env.ledger.SetCheatDay("2026-03-09", true)
	env.ledger.Flush()

	for _, key := range []string{store.KeyMealDefinitions, store.KeyMealPlanEntries, store.KeyDailySummaries} {
		if !env.kv.has(key) {
			t.Errorf("expected %s to be persisted", key)
		}
	}

	// A fresh session over the same store sees the committed state.
	fresh := newTestLedgerFromKV(t, env)
	if len(fresh.Entries()) != 1 {
		t.Fatalf("reloaded entries = %d, want 1", len(fresh.Entries()))
	}
	if !fresh.SummaryForDay("2026-03-09").IsCheatDay {
		t.Fatalf("reloaded cheat-day flag lost")
	}
}
