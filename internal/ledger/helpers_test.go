package ledger_test

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/macrofit/macrofit-cli/internal/clock"
	"github.com/macrofit/macrofit-cli/internal/ledger"
	"github.com/macrofit/macrofit-cli/internal/model"
)

type fakeKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	failGet bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}}
}

func (f *fakeKV) Get(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return nil, false, fmt.Errorf("store unavailable")
	}
	value, ok := f.data[key]
	return value, ok, nil
}

func (f *fakeKV) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeKV) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok
}

type fakeFoods map[string]model.Nutrients

func (f fakeFoods) PerHundredGrams(id string) (model.Nutrients, bool, error) {
	n, ok := f[id]
	return n, ok, nil
}

func localTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04", value, time.Local)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testTargets is a round-number daily target set whose five-meal
// distribution sums exactly to the daily values.
func testTargets() *model.NutritionTargets {
	meals := make([]model.MealTarget, 0, 5)
	for _, name := range []string{"Breakfast", "Mid-Morning", "Lunch", "Post-Workout", "Dinner"} {
		meals = append(meals, model.MealTarget{
			Name: name, ProteinG: 30, CarbsG: 40, FatG: 12, MinFiberG: 5, MaxSugarG: 9,
		})
	}
	return &model.NutritionTargets{
		TargetCalories: 2000,
		ProteinG:       150,
		CarbsG:         200,
		FatG:           60,
		FiberG:         30,
		SugarG:         30,
		SaturatedFatG:  20,
		SodiumMg:       2300,
		Micronutrients: model.Micronutrients{
			"omega_3":   {Value: 1.6, Unit: "g"},
			"iron":      {Value: 8, Unit: "mg"},
			"calcium":   {Value: 1000, Unit: "mg"},
			"vitamin_d": {Value: 15, Unit: "mcg"},
		},
		MealDistribution: meals,
	}
}

// perfectFood is tuned so 2000 g covers testTargets exactly.
var perfectFood = model.Nutrients{
	Calories:    100,
	ProteinG:    7.5,
	CarbsG:      10,
	FatG:        3,
	FiberG:      1.5,
	Omega3G:     0.08,
	IronMg:      0.4,
	CalciumMg:   50,
	VitaminDMcg: 0.75,
}

type testEnv struct {
	ledger *ledger.Ledger
	kv     *fakeKV
	foods  fakeFoods
	now    time.Time
}

func newTestLedger(t *testing.T, now string, targets *model.NutritionTargets) *testEnv {
	t.Helper()
	kv := newFakeKV()
	foods := fakeFoods{"perfect": perfectFood}
	at := localTime(t, now)
	l := ledger.New(kv, foods, clock.Fixed{At: at}, testLogger(), model.DefaultPreferences(), targets)
	if targets != nil {
		l.ApplyTargets(targets)
	}
	return &testEnv{ledger: l, kv: kv, foods: foods, now: at}
}

// newTestLedgerFromKV reopens a ledger over the same blob store, as a
// fresh session would.
func newTestLedgerFromKV(t *testing.T, env *testEnv) *ledger.Ledger {
	t.Helper()
	return ledger.New(env.kv, env.foods, clock.Fixed{At: env.now}, testLogger(), model.DefaultPreferences(), testTargets())
}

// newTestLedgerWithPrefs reopens over the same blob store with different
// preferences.
func newTestLedgerWithPrefs(t *testing.T, env *testEnv, prefs model.Preferences) *ledger.Ledger {
	t.Helper()
	return ledger.New(env.kv, env.foods, clock.Fixed{At: env.now}, testLogger(), prefs, testTargets())
}

func logMealAt(t *testing.T, env *testEnv, at time.Time, cheat bool, foods ...model.SelectedFood) model.MealPlanEntry {
	t.Helper()
	defs := env.ledger.Definitions()
	entry, err := env.ledger.LogMeal(ledger.LogMealInput{
		MealID:      defs[0].ID,
		At:          at,
		IsCheatMeal: cheat,
		Foods:       foods,
	})
	if err != nil {
		t.Fatalf("log meal: %v", err)
	}
	return entry
}
