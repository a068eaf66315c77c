package ledger

import (
	"github.com/macrofit/macrofit-cli/internal/clock"
	"github.com/macrofit/macrofit-cli/internal/model"
	"github.com/macrofit/macrofit-cli/internal/store"
)

// CheatStatus reports quota usage for the current period window.
type CheatStatus struct {
	PeriodType  model.PeriodType `json:"period_type"`
	PeriodStart string           `json:"period_start"`
	MealsUsed   int              `json:"meals_used"`
	MealsLimit  int              `json:"meals_limit"`
	DaysUsed    int              `json:"days_used"`
	DaysLimit   int              `json:"days_limit"`
}

func (l *Ledger) CheatStatus() CheatStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := clock.PeriodStart(l.clk.Now(), string(l.prefs.CheatPeriodType), l.prefs.DayResetHour)
	startBucket := clock.DayBucket(start, l.prefs.DayResetHour)

	status := CheatStatus{
		PeriodType:  l.prefs.CheatPeriodType,
		PeriodStart: startBucket,
		MealsLimit:  l.prefs.CheatMealsPerPeriod,
		DaysLimit:   l.prefs.CheatDaysPerPeriod,
	}
	for _, e := range l.entries {
		if e.IsCheatMeal && !e.CreatedAt.Before(start) {
			status.MealsUsed++
		}
	}
	// Archived days contribute through their summaries; live days have no
	// summary entries counted twice because archiving removed the entries.
	for date, s := range l.summaries {
		if date < startBucket {
			continue
		}
		status.MealsUsed += s.CheatMealCount
		if s.IsCheatDay {
			status.DaysUsed++
		}
	}
	return status
}

// CanUseCheatMeal reports whether another cheat meal fits the configured
// per-period quota.
func (l *Ledger) CanUseCheatMeal() bool {
	status := l.CheatStatus()
	return status.MealsUsed < status.MealsLimit
}

func (l *Ledger) CanUseCheatDay() bool {
	status := l.CheatStatus()
	return status.DaysUsed < status.DaysLimit
}

// SetCheatDay toggles the cheat flag on a day's persisted summary. A day
// without one gets a zeroed summary carrying only the flag; macros are
// never recomputed from entries here.
func (l *Ledger) SetCheatDay(date string, flag bool) model.DailySummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	summary, ok := l.summaries[date]
	if !ok {
		summary = model.DailySummary{
			Date:            date,
			TargetsAchieved: map[string]float64{},
			MacroResults:    []model.MacroResult{},
			NutrientResults: []model.NutrientResult{},
			TopFoods:        []string{},
			CreatedAt:       l.clk.Now(),
		}
	}
	summary.IsCheatDay = flag
	l.summaries[date] = summary
	l.persistLocked(store.KeyDailySummaries, l.summaries)
	return copySummary(summary)
}
