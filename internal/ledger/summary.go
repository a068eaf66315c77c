package ledger

import (
	"sort"

	"github.com/macrofit/macrofit-cli/internal/model"
)

const (
	hitLowerBound = 0.95
	hitUpperBound = 1.05

	macroPoints    = 20
	nutrientPoints = 8
)

// The five minimum-threshold nutrients worth 8 points each.
var scoredNutrients = []struct {
	name string
	key  string
	unit string
}{
	{"fiber", "", "g"},
	{"omega-3", "omega_3", "g"},
	{"iron", "iron", "mg"},
	{"calcium", "calcium", "mg"},
	{"vitamin D", "vitamin_d", "mcg"},
}

// effectiveNutrients resolves what an entry contributes to the day: its
// logged vector, or for a cheat meal the assumed-optimal vector built from
// its meal definition's targets. A cheat entry whose definition no longer
// exists contributes nothing, like any other dangling reference.
func (l *Ledger) effectiveNutrients(e model.MealPlanEntry) model.Nutrients {
	if !e.IsCheatMeal {
		return e.CalculatedMacros
	}
	def := l.definitionByIDLocked(e.MealID)
	if def == nil {
		return model.Nutrients{}
	}
	return l.assumedOptimal(def.Targets)
}

// assumedOptimal credits a cheat meal with exactly its definition targets
// for the macros and a per-meal share of the daily targets for the scored
// nutrients.
func (l *Ledger) assumedOptimal(targets model.MacroTargets) model.Nutrients {
	protein := float64(targets.ProteinG)
	carbs := float64(targets.CarbsG)
	fat := float64(targets.FatG)

	n := model.Nutrients{
		ProteinG:      protein,
		CarbsG:        carbs,
		FatG:          fat,
		Calories:      protein*4 + carbs*4 + fat*9,
		FiberG:        float64(targets.MinFiberG) / 0.8,
		SugarG:        float64(targets.MaxSugarG) / 1.5,
		SaturatedFatG: fat * 0.3,
	}
	if l.targets != nil && len(l.targets.MealDistribution) > 0 {
		share := 1 / float64(len(l.targets.MealDistribution))
		n.FiberG = l.targets.FiberG * share
		n.Omega3G = l.microTargetLocked("omega_3") * share
		n.IronMg = l.microTargetLocked("iron") * share
		n.CalciumMg = l.microTargetLocked("calcium") * share
		n.VitaminDMcg = l.microTargetLocked("vitamin_d") * share
	}
	return n
}

func (l *Ledger) microTargetLocked(key string) float64 {
	if l.targets == nil {
		return 0
	}
	return l.targets.Micronutrients[key].Value
}

// buildSummary aggregates one bucketed day of entries and scores it
// against the daily targets.
func (l *Ledger) buildSummary(date string, entries []model.MealPlanEntry) model.DailySummary {
	summary := model.DailySummary{
		Date:            date,
		TargetsAchieved: map[string]float64{},
		MacroResults:    make([]model.MacroResult, 0, 3),
		NutrientResults: make([]model.NutrientResult, 0, len(scoredNutrients)),
		TopFoods:        []string{},
		EntryCount:      len(entries),
		CreatedAt:       l.clk.Now(),
	}

	for _, e := range entries {
		summary.Totals = summary.Totals.Add(l.effectiveNutrients(e))
		if e.IsCheatMeal {
			summary.CheatMealCount++
		}
	}

	var proteinTarget, carbsTarget, fatTarget, fiberTarget float64
	if l.targets != nil {
		proteinTarget = l.targets.ProteinG
		carbsTarget = l.targets.CarbsG
		fatTarget = l.targets.FatG
		fiberTarget = l.targets.FiberG
	}

	macros := []struct {
		name   string
		actual float64
		target float64
	}{
		{"protein", summary.Totals.ProteinG, proteinTarget},
		{"carbs", summary.Totals.CarbsG, carbsTarget},
		{"fat", summary.Totals.FatG, fatTarget},
	}
	for _, m := range macros {
		result := model.MacroResult{Name: m.name, TargetG: m.target, ActualG: m.actual, Status: model.StatusUnder}
		if m.target > 0 {
			result.Ratio = m.actual / m.target
			switch {
			case result.Ratio >= hitLowerBound && result.Ratio <= hitUpperBound:
				result.Status = model.StatusHit
			case result.Ratio > hitUpperBound:
				result.Status = model.StatusOver
			}
			summary.TargetsAchieved[m.name] = result.Ratio * 100
		}
		if result.Status == model.StatusHit {
			summary.MacroScore += macroPoints
		}
		summary.MacroResults = append(summary.MacroResults, result)
	}

	nutrientActuals := map[string]float64{
		"fiber":     summary.Totals.FiberG,
		"omega-3":   summary.Totals.Omega3G,
		"iron":      summary.Totals.IronMg,
		"calcium":   summary.Totals.CalciumMg,
		"vitamin D": summary.Totals.VitaminDMcg,
	}
	for _, n := range scoredNutrients {
		target := fiberTarget
		if n.key != "" {
			target = l.microTargetLocked(n.key)
		}
		result := model.NutrientResult{
			Name:   n.name,
			Target: target,
			Actual: nutrientActuals[n.name],
			Unit:   n.unit,
		}
		// Minimum-threshold semantics, not a range.
		result.Achieved = target > 0 && result.Actual >= target
		if result.Achieved {
			summary.NutrientScore += nutrientPoints
		}
		summary.NutrientResults = append(summary.NutrientResults, result)
	}

	summary.ConsistencyScore = float64(summary.MacroScore+summary.NutrientScore) / 100
	summary.TopFoods = topFoods(entries)
	return summary
}

// topFoods ranks food ids by cumulative portion grams, keeping
// first-encountered order for ties.
func topFoods(entries []model.MealPlanEntry) []string {
	grams := map[string]float64{}
	order := make([]string, 0)
	for _, e := range entries {
		for _, f := range e.SelectedFoods {
			if _, seen := grams[f.FoodID]; !seen {
				order = append(order, f.FoodID)
			}
			grams[f.FoodID] += f.PortionGrams
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return grams[order[i]] > grams[order[j]] })
	if len(order) > 3 {
		order = order[:3]
	}
	return order
}

// SummaryForDay returns the persisted summary when one exists (persisted
// summaries are authoritative) and otherwise derives one on demand from
// the live entries of that day.
func (l *Ledger) SummaryForDay(date string) model.DailySummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.summaryForDayLocked(date)
}

func (l *Ledger) summaryForDayLocked(date string) model.DailySummary {
	if stored, ok := l.summaries[date]; ok {
		return copySummary(stored)
	}
	return l.buildSummary(date, l.entriesForDayLocked(date))
}

// TodaysSummary derives today's summary on demand; it is never persisted
// until the day falls out of the archive window.
func (l *Ledger) TodaysSummary() model.DailySummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.summaryForDayLocked(l.today())
}

// DailyProgress is the read-only view the presentation layer polls.
type DailyProgress struct {
	Date              string          `json:"date"`
	Totals            model.Nutrients `json:"totals"`
	HasTargets        bool            `json:"has_targets"`
	TargetCalories    float64         `json:"target_calories,omitempty"`
	TargetProteinG    float64         `json:"target_protein_g,omitempty"`
	TargetCarbsG      float64         `json:"target_carbs_g,omitempty"`
	TargetFatG        float64         `json:"target_fat_g,omitempty"`
	RemainingCalories float64         `json:"remaining_calories,omitempty"`
	RemainingProteinG float64         `json:"remaining_protein_g,omitempty"`
	RemainingCarbsG   float64         `json:"remaining_carbs_g,omitempty"`
	RemainingFatG     float64         `json:"remaining_fat_g,omitempty"`
	ConsistencyScore  float64         `json:"consistency_score"`
	EntryCount        int             `json:"entry_count"`
}

func (l *Ledger) GetDailyProgress() DailyProgress {
	l.mu.Lock()
	defer l.mu.Unlock()

	today := l.today()
	summary := l.summaryForDayLocked(today)
	progress := DailyProgress{
		Date:             today,
		Totals:           summary.Totals,
		ConsistencyScore: summary.ConsistencyScore,
		EntryCount:       summary.EntryCount,
	}
	if l.targets != nil {
		progress.HasTargets = true
		progress.TargetCalories = l.targets.TargetCalories
		progress.TargetProteinG = l.targets.ProteinG
		progress.TargetCarbsG = l.targets.CarbsG
		progress.TargetFatG = l.targets.FatG
		progress.RemainingCalories = l.targets.TargetCalories - summary.Totals.Calories
		progress.RemainingProteinG = l.targets.ProteinG - summary.Totals.ProteinG
		progress.RemainingCarbsG = l.targets.CarbsG - summary.Totals.CarbsG
		progress.RemainingFatG = l.targets.FatG - summary.Totals.FatG
	}
	return progress
}

// Summaries returns the persisted summaries, oldest first.
func (l *Ledger) Summaries() []model.DailySummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]model.DailySummary, 0, len(l.summaries))
	for _, s := range l.summaries {
		out = append(out, copySummary(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
