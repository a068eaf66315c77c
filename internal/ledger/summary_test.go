package ledger_test

import (
	"encoding/json"
	"testing"

	"github.com/macrofit/macrofit-cli/internal/ledger"
	"github.com/macrofit/macrofit-cli/internal/model"
	"github.com/macrofit/macrofit-cli/internal/store"
)

func TestPerfectDayScoresFull(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-10 12:00", testTargets())
	logMealAt(t, env, env.now, false, model.SelectedFood{FoodID: "perfect", PortionGrams: 2000})

	summary := env.ledger.TodaysSummary()
	if summary.MacroScore != 60 {
		t.Errorf("macro score = %d, want 60", summary.MacroScore)
	}
	if summary.NutrientScore != 40 {
		t.Errorf("nutrient score = %d, want 40", summary.NutrientScore)
	}
	if summary.ConsistencyScore != 1.0 {
		t.Errorf("consistency = %v, want 1.0", summary.ConsistencyScore)
	}
	for _, r := range summary.MacroResults {
		if r.Status != model.StatusHit {
			t.Errorf("macro %s status = %s, want hit", r.Name, r.Status)
		}
	}
}

func TestMacroStatusBands(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-10 12:00", testTargets())
	// Half portions: every macro at 50% of target.
	logMealAt(t, env, env.now, false, model.SelectedFood{FoodID: "perfect", PortionGrams: 1000})

	summary := env.ledger.TodaysSummary()
	if summary.MacroScore != 0 {
		t.Errorf("macro score = %d, want 0", summary.MacroScore)
	}
	for _, r := range summary.MacroResults {
		if r.Status != model.StatusUnder {
			t.Errorf("macro %s status = %s, want under", r.Name, r.Status)
		}
	}

	// Overshooting flips the status to over.
	logMealAt(t, env, env.now, false, model.SelectedFood{FoodID: "perfect", PortionGrams: 1500})
	summary = env.ledger.TodaysSummary()
	for _, r := range summary.MacroResults {
		if r.Status != model.StatusOver {
			t.Errorf("macro %s status = %s, want over", r.Name, r.Status)
		}
	}
}

func TestScoreInvariants(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-10 12:00", testTargets())
	portions := []float64{0, 400, 1000, 1900, 2000, 2500}
	for _, grams := range portions {
		if grams > 0 {
			logMealAt(t, env, env.now, false, model.SelectedFood{FoodID: "perfect", PortionGrams: grams})
		}
		summary := env.ledger.TodaysSummary()
		if summary.MacroScore%20 != 0 || summary.MacroScore < 0 || summary.MacroScore > 60 {
			t.Errorf("macro score %d violates multiples-of-20 in [0,60]", summary.MacroScore)
		}
		if summary.NutrientScore%8 != 0 || summary.NutrientScore < 0 || summary.NutrientScore > 40 {
			t.Errorf("nutrient score %d violates multiples-of-8 in [0,40]", summary.NutrientScore)
		}
		want := float64(summary.MacroScore+summary.NutrientScore) / 100
		if summary.ConsistencyScore != want {
			t.Errorf("consistency %v, want %v", summary.ConsistencyScore, want)
		}
	}
}

func TestCheatMealsScoreAsPerfectHit(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-10 12:00", testTargets())

	// A full day of cheat meals logged with junk foods the catalog has
	// never heard of.
	for _, def := range env.ledger.Definitions() {
		_, err := env.ledger.LogMeal(ledger.LogMealInput{
			MealID:      def.ID,
			At:          env.now,
			IsCheatMeal: true,
			Foods:       []model.SelectedFood{{FoodID: "deep-fried-mystery", PortionGrams: 800}},
		})
		if err != nil {
			t.Fatalf("log cheat meal: %v", err)
		}
	}

	summary := env.ledger.TodaysSummary()
	for _, r := range summary.MacroResults {
		if r.Status != model.StatusHit {
			t.Errorf("cheat day macro %s status = %s, want hit", r.Name, r.Status)
		}
	}
	if summary.NutrientScore != 40 {
		t.Errorf("cheat day nutrient score = %d, want 40", summary.NutrientScore)
	}
	if summary.CheatMealCount != 5 {
		t.Errorf("cheat meal count = %d, want 5", summary.CheatMealCount)
	}
}

func TestUnknownFoodAndDefinitionContributeZero(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-10 12:00", testTargets())
	entry := logMealAt(t, env, env.now, false, model.SelectedFood{FoodID: "no-such-food", PortionGrams: 500})
	if entry.CalculatedMacros != (model.Nutrients{}) {
		t.Fatalf("unknown food macros = %+v, want zero", entry.CalculatedMacros)
	}

	// A cheat entry whose definition has vanished is also zero, not a
	// failure.
	env.ledger.Flush()
	seedEntries := []model.MealPlanEntry{{
		ID:          "orphan",
		MealID:      "deleted-definition",
		CreatedAt:   env.now,
		IsCheatMeal: true,
	}}
	raw, err := json.Marshal(seedEntries)
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	if err := env.kv.Set(store.KeyMealPlanEntries, raw); err != nil {
		t.Fatalf("seed entries: %v", err)
	}
	fresh := newTestLedgerFromKV(t, env)
	summary := fresh.TodaysSummary()
	if summary.EntryCount != 1 {
		t.Fatalf("entry count = %d, want 1", summary.EntryCount)
	}
	// The whole vector must be zero, including the scored-nutrient credit
	// a live cheat meal would receive.
	if summary.Totals != (model.Nutrients{}) {
		t.Fatalf("orphan cheat entry totals = %+v, want zero vector", summary.Totals)
	}
}

func TestTopFoodsRankingAndTies(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-10 12:00", testTargets())
	logMealAt(t, env, env.now, false,
		model.SelectedFood{FoodID: "a", PortionGrams: 100},
		model.SelectedFood{FoodID: "b", PortionGrams: 300},
	)
	logMealAt(t, env, env.now, false,
		model.SelectedFood{FoodID: "c", PortionGrams: 100},
		model.SelectedFood{FoodID: "a", PortionGrams: 100},
		model.SelectedFood{FoodID: "d", PortionGrams: 50},
	)

	summary := env.ledger.TodaysSummary()
	// b=300, a=200, then c=100 beats d=50; a's tie with c at first sight
	// resolves by cumulative grams, ties by first-encountered order.
	want := []string{"b", "a", "c"}
	if len(summary.TopFoods) != 3 {
		t.Fatalf("top foods = %v, want 3 ids", summary.TopFoods)
	}
	for i := range want {
		if summary.TopFoods[i] != want[i] {
			t.Fatalf("top foods = %v, want %v", summary.TopFoods, want)
		}
	}
}

func TestDayBucketingAtResetHour(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-10 12:00", testTargets())
	// 03:00 is before the 04:00 reset, so this belongs to March 9.
	logMealAt(t, env, localTime(t, "2026-03-10 03:00"), false,
		model.SelectedFood{FoodID: "perfect", PortionGrams: 100})

	if got := len(env.ledger.EntriesForDay("2026-03-09")); got != 1 {
		t.Fatalf("entries for 2026-03-09 = %d, want 1", got)
	}
	if got := env.ledger.TodaysSummary().EntryCount; got != 0 {
		t.Fatalf("today's entry count = %d, want 0", got)
	}
}

func TestPersistedSummaryIsAuthoritative(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-10 12:00", testTargets())
	stored := map[string]model.DailySummary{
		"2026-03-10": {Date: "2026-03-10", MacroScore: 60, NutrientScore: 40, ConsistencyScore: 1.0},
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("marshal summaries: %v", err)
	}
	if err := env.kv.Set(store.KeyDailySummaries, raw); err != nil {
		t.Fatalf("seed summaries: %v", err)
	}

	fresh := newTestLedgerFromKV(t, env)
	// Live entries for the day exist, but the persisted summary wins.
	defs := fresh.Definitions()
	if _, err := fresh.LogMeal(ledger.LogMealInput{
		MealID: defs[0].ID,
		At:     env.now,
		Foods:  []model.SelectedFood{{FoodID: "perfect", PortionGrams: 100}},
	}); err != nil {
		t.Fatalf("log meal: %v", err)
	}
	summary := fresh.SummaryForDay("2026-03-10")
	if summary.ConsistencyScore != 1.0 || summary.MacroScore != 60 {
		t.Fatalf("derived summary overrode the persisted one: %+v", summary)
	}
}

func TestDailyProgressRemaining(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-10 12:00", testTargets())
	logMealAt(t, env, env.now, false, model.SelectedFood{FoodID: "perfect", PortionGrams: 1000})

	progress := env.ledger.GetDailyProgress()
	if !progress.HasTargets {
		t.Fatalf("expected targets in progress view")
	}
	if progress.RemainingProteinG != 75 {
		t.Errorf("remaining protein = %v, want 75", progress.RemainingProteinG)
	}
	if progress.RemainingCalories != 1000 {
		t.Errorf("remaining calories = %v, want 1000", progress.RemainingCalories)
	}
}
