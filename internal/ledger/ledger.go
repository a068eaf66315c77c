// Package ledger owns meal definitions, logged meal-plan entries, and
// daily summaries. Every mutation takes the in-memory snapshot to the next
// state synchronously and then persists the touched collection in the
// background; in-memory state is the source of truth for the session.
package ledger

import (
	"encoding/json"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/macrofit/macrofit-cli/internal/clock"
	"github.com/macrofit/macrofit-cli/internal/food"
	"github.com/macrofit/macrofit-cli/internal/model"
	"github.com/macrofit/macrofit-cli/internal/store"
)

type Ledger struct {
	mu      sync.Mutex
	kv      store.KV
	foods   food.Source
	clk     clock.Clock
	logger  *slog.Logger
	prefs   model.Preferences
	targets *model.NutritionTargets

	defs      []model.MealDefinition
	entries   []model.MealPlanEntry
	summaries map[string]model.DailySummary

	pending sync.WaitGroup
}

// New loads the persisted collections. A missing key means built-in
// defaults; a read or decode failure is logged and also falls back to
// defaults so the session stays usable.
func New(kv store.KV, foods food.Source, clk clock.Clock, logger *slog.Logger, prefs model.Preferences, targets *model.NutritionTargets) *Ledger {
	l := &Ledger{
		kv:        kv,
		foods:     foods,
		clk:       clk,
		logger:    logger,
		prefs:     prefs,
		targets:   targets,
		summaries: map[string]model.DailySummary{},
	}

	if !loadCollection(kv, logger, store.KeyMealDefinitions, &l.defs) || len(l.defs) == 0 {
		l.defs = defaultDefinitions(clk.Now())
	}
	loadCollection(kv, logger, store.KeyMealPlanEntries, &l.entries)
	loadCollection(kv, logger, store.KeyDailySummaries, &l.summaries)
	if l.entries == nil {
		l.entries = []model.MealPlanEntry{}
	}
	if l.summaries == nil {
		l.summaries = map[string]model.DailySummary{}
	}
	return l
}

func loadCollection(kv store.KV, logger *slog.Logger, key string, out any) bool {
	raw, ok, err := kv.Get(key)
	if err != nil {
		logger.Warn("loading collection, using defaults", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Warn("decoding collection, using defaults", "key", key, "error", err)
		return false
	}
	return true
}

// Flush waits for background persistence to finish. Call before process
// exit.
func (l *Ledger) Flush() {
	l.pending.Wait()
}

// persistLocked snapshots a collection and writes it in the background;
// failures are logged and swallowed.
func (l *Ledger) persistLocked(key string, value any) {
	encoded, err := json.Marshal(value)
	if err != nil {
		l.logger.Warn("encoding collection", "key", key, "error", err)
		return
	}
	l.pending.Add(1)
	go func() {
		defer l.pending.Done()
		if err := l.kv.Set(key, encoded); err != nil {
			l.logger.Warn("persisting collection", "key", key, "error", err)
		}
	}()
}

// DailyTargets returns the targets the ledger scores against, or nil when
// no personalization has happened yet.
func (l *Ledger) DailyTargets() *model.NutritionTargets {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.targets == nil {
		return nil
	}
	t := *l.targets
	return &t
}

// ApplyTargets replaces the targets reference and regenerates the
// personalized meal definitions from the new meal distribution.
// User-custom definitions survive regeneration.
func (l *Ledger) ApplyTargets(targets *model.NutritionTargets) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.targets = targets
	if targets == nil || len(targets.MealDistribution) == 0 {
		return
	}

	now := l.clk.Now()
	next := make([]model.MealDefinition, 0, len(targets.MealDistribution))
	for _, meal := range targets.MealDistribution {
		next = append(next, model.MealDefinition{
			ID:   uuid.New().String(),
			Name: meal.Name,
			Targets: model.MacroTargets{
				ProteinG:  meal.ProteinG,
				CarbsG:    meal.CarbsG,
				FatG:      meal.FatG,
				MinFiberG: meal.MinFiberG,
				MaxSugarG: meal.MaxSugarG,
			},
			PersonalizedGenerated: true,
			CreatedAt:             now,
		})
	}
	for _, def := range l.defs {
		if def.UserCustom {
			next = append(next, def)
		}
	}
	l.defs = next
	l.persistLocked(store.KeyMealDefinitions, l.defs)
}

func (l *Ledger) Definitions() []model.MealDefinition {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.MealDefinition, len(l.defs))
	copy(out, l.defs)
	return out
}

func (l *Ledger) definitionByIDLocked(id string) *model.MealDefinition {
	for i := range l.defs {
		if l.defs[i].ID == id {
			return &l.defs[i]
		}
	}
	return nil
}

// AddCustomDefinition appends a user-defined meal that regeneration will
// never remove.
func (l *Ledger) AddCustomDefinition(name string, targets model.MacroTargets) model.MealDefinition {
	l.mu.Lock()
	defer l.mu.Unlock()

	def := model.MealDefinition{
		ID:         uuid.New().String(),
		Name:       name,
		Targets:    targets,
		UserCustom: true,
		CreatedAt:  l.clk.Now(),
	}
	l.defs = append(l.defs, def)
	l.persistLocked(store.KeyMealDefinitions, l.defs)
	return def
}

// RevertDefinitions restores the built-in defaults, keeping user-custom
// definitions.
func (l *Ledger) RevertDefinitions() {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := defaultDefinitions(l.clk.Now())
	for _, def := range l.defs {
		if def.UserCustom {
			next = append(next, def)
		}
	}
	l.defs = next
	l.persistLocked(store.KeyMealDefinitions, l.defs)
}

// Entries returns the live entry collection, newest first.
func (l *Ledger) Entries() []model.MealPlanEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]model.MealPlanEntry, len(l.entries))
	copy(out, l.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// EntriesForDay returns live entries bucketed to the given day, in logged
// order.
func (l *Ledger) EntriesForDay(date string) []model.MealPlanEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entriesForDayLocked(date)
}

func (l *Ledger) entriesForDayLocked(date string) []model.MealPlanEntry {
	out := make([]model.MealPlanEntry, 0)
	for _, e := range l.entries {
		if clock.DayBucket(e.CreatedAt, l.prefs.DayResetHour) == date {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (l *Ledger) today() string {
	return clock.DayBucket(l.clk.Now(), l.prefs.DayResetHour)
}

func copySummary(s model.DailySummary) model.DailySummary {
	out := s
	out.MacroResults = append([]model.MacroResult(nil), s.MacroResults...)
	out.NutrientResults = append([]model.NutrientResult(nil), s.NutrientResults...)
	out.TopFoods = append([]string(nil), s.TopFoods...)
	if s.TargetsAchieved != nil {
		out.TargetsAchieved = make(map[string]float64, len(s.TargetsAchieved))
		for k, v := range s.TargetsAchieved {
			out.TargetsAchieved[k] = v
		}
	}
	return out
}
