// Package settings owns the user profile, the derived nutrition targets,
// and preferences. The ledger consumes targets read-only; it never runs
// the calculator itself.
package settings

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/macrofit/macrofit-cli/internal/calc"
	"github.com/macrofit/macrofit-cli/internal/model"
	"github.com/macrofit/macrofit-cli/internal/store"
)

type Store struct {
	mu      sync.Mutex
	kv      store.KV
	logger  *slog.Logger
	current model.Settings
}

// Load reads the settings blob. Absence or a decode failure falls back to
// defaults so the app stays usable.
func Load(kv store.KV, logger *slog.Logger) *Store {
	s := &Store{kv: kv, logger: logger}
	s.current = model.Settings{Preferences: model.DefaultPreferences()}

	raw, ok, err := kv.Get(store.KeySettings)
	if err != nil {
		logger.Warn("loading settings, using defaults", "error", err)
		return s
	}
	if !ok {
		return s
	}
	var loaded model.Settings
	if err := json.Unmarshal(raw, &loaded); err != nil {
		logger.Warn("decoding settings, using defaults", "error", err)
		return s
	}
	loaded.Preferences = normalizePreferences(loaded.Preferences)
	s.current = loaded
	return s
}

func normalizePreferences(p model.Preferences) model.Preferences {
	defaults := model.DefaultPreferences()
	if p.DayResetHour < 0 || p.DayResetHour > 23 {
		p.DayResetHour = defaults.DayResetHour
	}
	if p.CheatMealsPerPeriod < 0 {
		p.CheatMealsPerPeriod = defaults.CheatMealsPerPeriod
	}
	if p.CheatDaysPerPeriod < 0 {
		p.CheatDaysPerPeriod = defaults.CheatDaysPerPeriod
	}
	if p.CheatPeriodType != model.PeriodWeekly && p.CheatPeriodType != model.PeriodMonthly {
		p.CheatPeriodType = defaults.CheatPeriodType
	}
	if p.RetentionDays <= 0 {
		p.RetentionDays = defaults.RetentionDays
	}
	return p
}

func (s *Store) Settings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySettings(s.current)
}

func (s *Store) Profile() *model.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.Profile == nil {
		return nil
	}
	p := *s.current.Profile
	return &p
}

func (s *Store) Targets() *model.NutritionTargets {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current.Targets == nil {
		return nil
	}
	t := *s.current.Targets
	return &t
}

func (s *Store) Preferences() model.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Preferences
}

// UpdateProfile stores the profile and, when it is complete and in range,
// recomputes targets wholesale. Validation problems are returned as data;
// they leave any previously computed targets untouched.
func (s *Store) UpdateProfile(p model.UserProfile) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := p
	s.current.Profile = &stored

	targets, problems := calc.CalculateTargets(p)
	if len(problems) == 0 {
		s.current.Targets = targets
	}
	s.persistLocked()
	return problems
}

// Preference keys accepted by SetPreference.
const (
	PrefDayResetHour        = "day_reset_hour"
	PrefCheatMealsPerPeriod = "cheat_meals_per_period"
	PrefCheatDaysPerPeriod  = "cheat_days_per_period"
	PrefCheatPeriodType     = "cheat_period_type"
	PrefRetentionDays       = "retention_days"
)

func (s *Store) SetPreference(key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	value = strings.TrimSpace(value)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch key {
	case PrefDayResetHour:
		v, err := strconv.Atoi(value)
		if err != nil || v < 0 || v > 23 {
			return fmt.Errorf("day reset hour must be an integer between 0 and 23")
		}
		s.current.Preferences.DayResetHour = v
	case PrefCheatMealsPerPeriod:
		v, err := strconv.Atoi(value)
		if err != nil || v < 0 {
			return fmt.Errorf("cheat meals per period must be an integer >= 0")
		}
		s.current.Preferences.CheatMealsPerPeriod = v
	case PrefCheatDaysPerPeriod:
		v, err := strconv.Atoi(value)
		if err != nil || v < 0 {
			return fmt.Errorf("cheat days per period must be an integer >= 0")
		}
		s.current.Preferences.CheatDaysPerPeriod = v
	case PrefCheatPeriodType:
		if value != string(model.PeriodWeekly) && value != string(model.PeriodMonthly) {
			return fmt.Errorf("cheat period type must be weekly or monthly")
		}
		s.current.Preferences.CheatPeriodType = model.PeriodType(value)
	case PrefRetentionDays:
		v, err := strconv.Atoi(value)
		if err != nil || v < 1 {
			return fmt.Errorf("retention days must be an integer >= 1")
		}
		s.current.Preferences.RetentionDays = v
	default:
		return fmt.Errorf("unknown preference %q", key)
	}

	s.persistLocked()
	return nil
}

// Best effort: in-memory state stays correct for the session even when the
// write fails.
func (s *Store) persistLocked() {
	encoded, err := json.Marshal(s.current)
	if err != nil {
		s.logger.Warn("encoding settings", "error", err)
		return
	}
	if err := s.kv.Set(store.KeySettings, encoded); err != nil {
		s.logger.Warn("persisting settings", "error", err)
	}
}

func copySettings(in model.Settings) model.Settings {
	out := in
	if in.Profile != nil {
		p := *in.Profile
		out.Profile = &p
	}
	if in.Targets != nil {
		t := *in.Targets
		out.Targets = &t
	}
	return out
}
