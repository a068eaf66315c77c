package ledger_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/macrofit/macrofit-cli/internal/ledger"
	"github.com/macrofit/macrofit-cli/internal/model"
	"github.com/macrofit/macrofit-cli/internal/store"
)

func TestLifecycleArchivesOnlyStaleEntries(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-20 12:00", testTargets())
	logMealAt(t, env, localTime(t, "2026-03-05 12:00"), false,
		model.SelectedFood{FoodID: "perfect", PortionGrams: 2000})
	logMealAt(t, env, localTime(t, "2026-03-13 12:00"), false,
		model.SelectedFood{FoodID: "perfect", PortionGrams: 500})
	logMealAt(t, env, localTime(t, "2026-03-18 12:00"), false,
		model.SelectedFood{FoodID: "perfect", PortionGrams: 500})

	report := env.ledger.RunLifecycle()
	if report.ArchivedEntries != 1 {
		t.Fatalf("archived = %d, want only the 2026-03-05 entry", report.ArchivedEntries)
	}
	if len(env.ledger.Entries()) != 2 {
		t.Fatalf("live entries = %d, want 2", len(env.ledger.Entries()))
	}

	summaries := env.ledger.Summaries()
	if len(summaries) != 1 || summaries[0].Date != "2026-03-05" {
		t.Fatalf("summaries = %+v, want one for 2026-03-05", summaries)
	}
	if summaries[0].ConsistencyScore != 1.0 {
		t.Fatalf("archived day consistency = %v, want 1.0", summaries[0].ConsistencyScore)
	}
}

func TestLifecycleIdempotent(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-20 12:00", testTargets())
	logMealAt(t, env, localTime(t, "2026-03-01 12:00"), false,
		model.SelectedFood{FoodID: "perfect", PortionGrams: 800})
	logMealAt(t, env, localTime(t, "2026-03-19 12:00"), false,
		model.SelectedFood{FoodID: "perfect", PortionGrams: 800})

	first := env.ledger.RunLifecycle()
	if !first.Changed() {
		t.Fatalf("first run should archive")
	}
	entriesAfter := env.ledger.Entries()
	summariesAfter := env.ledger.Summaries()

	second := env.ledger.RunLifecycle()
	if second.Changed() {
		t.Fatalf("second run must be a no-op, got %+v", second)
	}
	if !reflect.DeepEqual(entriesAfter, env.ledger.Entries()) {
		t.Fatalf("entries changed on idempotent rerun")
	}
	if !reflect.DeepEqual(summariesAfter, env.ledger.Summaries()) {
		t.Fatalf("summaries changed on idempotent rerun")
	}
}

func TestLifecycleNeverOverwritesExistingSummary(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-20 12:00", testTargets())
	env.ledger.Flush()

	stored := map[string]model.DailySummary{
		"2026-03-05": {Date: "2026-03-05", MacroScore: 60, ConsistencyScore: 0.6},
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("marshal summaries: %v", err)
	}
	if err := env.kv.Set(store.KeyDailySummaries, raw); err != nil {
		t.Fatalf("seed summaries: %v", err)
	}

	fresh := newTestLedgerFromKV(t, env)
	defs := fresh.Definitions()
	if _, err := fresh.LogMeal(ledger.LogMealInput{
		MealID: defs[0].ID,
		At:     localTime(t, "2026-03-05 12:00"),
		Foods:  []model.SelectedFood{{FoodID: "perfect", PortionGrams: 800}},
	}); err != nil {
		t.Fatalf("log stale meal: %v", err)
	}

	report := fresh.RunLifecycle()
	if report.ArchivedEntries != 1 {
		t.Fatalf("archived = %d, want 1", report.ArchivedEntries)
	}
	summary := fresh.SummaryForDay("2026-03-05")
	if summary.MacroScore != 60 || summary.ConsistencyScore != 0.6 {
		t.Fatalf("existing summary was overwritten: %+v", summary)
	}
	if len(fresh.EntriesForDay("2026-03-05")) != 0 {
		t.Fatalf("stale entries must still be removed when the day has a summary")
	}
}

func TestLifecyclePruneHonorsRetention(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-06-01 12:00", testTargets())
	env.ledger.Flush()

	stored := map[string]model.DailySummary{
		"2026-05-20": {Date: "2026-05-20"}, // well inside retention
		"2026-02-01": {Date: "2026-02-01"}, // 120 days old
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("marshal summaries: %v", err)
	}
	if err := env.kv.Set(store.KeyDailySummaries, raw); err != nil {
		t.Fatalf("seed summaries: %v", err)
	}

	fresh := newTestLedgerFromKV(t, env)
	report := fresh.RunLifecycle()
	if report.PrunedSummaries != 1 {
		t.Fatalf("pruned = %d, want 1", report.PrunedSummaries)
	}
	summaries := fresh.Summaries()
	if len(summaries) != 1 || summaries[0].Date != "2026-05-20" {
		t.Fatalf("summaries after prune = %+v", summaries)
	}
}

func TestLifecycleRetentionFromPreferences(t *testing.T) {
	t.Parallel()

	env := newTestLedger(t, "2026-03-20 12:00", testTargets())
	env.ledger.Flush()

	stored := map[string]model.DailySummary{
		"2026-03-08": {Date: "2026-03-08"},
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("marshal summaries: %v", err)
	}
	if err := env.kv.Set(store.KeyDailySummaries, raw); err != nil {
		t.Fatalf("seed summaries: %v", err)
	}

	prefs := model.DefaultPreferences()
	prefs.RetentionDays = 10
	short := newTestLedgerWithPrefs(t, env, prefs)
	report := short.RunLifecycle()
	if report.PrunedSummaries != 1 {
		t.Fatalf("pruned = %d, want 1 with 10-day retention", report.PrunedSummaries)
	}
}
