package ledger

// DoctorReport counts dangling references. Aggregation already treats
// these as zero-contribution; the report only surfaces them.
type DoctorReport struct {
	Entries            int `json:"entries"`
	OrphanEntries      int `json:"orphan_entries"`
	UnknownFoodRefs    int `json:"unknown_food_refs"`
	PersistedSummaries int `json:"persisted_summaries"`
	UserCustomMeals    int `json:"user_custom_meals"`
	PersonalizedMeals  int `json:"personalized_meals"`
}

func (l *Ledger) Doctor() DoctorReport {
	l.mu.Lock()
	defer l.mu.Unlock()

	report := DoctorReport{
		Entries:            len(l.entries),
		PersistedSummaries: len(l.summaries),
	}
	for _, def := range l.defs {
		if def.UserCustom {
			report.UserCustomMeals++
		}
		if def.PersonalizedGenerated {
			report.PersonalizedMeals++
		}
	}
	for _, e := range l.entries {
		if l.definitionByIDLocked(e.MealID) == nil {
			report.OrphanEntries++
		}
		for _, f := range e.SelectedFoods {
			_, ok, err := l.foods.PerHundredGrams(f.FoodID)
			if err != nil || !ok {
				report.UnknownFoodRefs++
			}
		}
	}
	return report
}
