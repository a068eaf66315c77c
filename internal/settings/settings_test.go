package settings_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/macrofit/macrofit-cli/internal/model"
	"github.com/macrofit/macrofit-cli/internal/settings"
	"github.com/macrofit/macrofit-cli/internal/store"
)

type memKV map[string][]byte

func (m memKV) Get(key string) ([]byte, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memKV) Set(key string, value []byte) error {
	m[key] = value
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validProfile() model.UserProfile {
	return model.UserProfile{
		Age:           30,
		Gender:        model.GenderMale,
		WeightKg:      80,
		HeightCm:      180,
		ActivityLevel: model.ActivityModerate,
		Goal:          model.GoalMaintenance,
		MealsPerDay:   4,
	}
}

func TestLoadEmptyStoreUsesDefaults(t *testing.T) {
	t.Parallel()

	s := settings.Load(memKV{}, testLogger())
	if s.Profile() != nil {
		t.Errorf("expected no profile on a fresh store")
	}
	if s.Targets() != nil {
		t.Errorf("expected no targets on a fresh store")
	}
	if got := s.Preferences(); got != model.DefaultPreferences() {
		t.Errorf("preferences = %+v, want defaults", got)
	}
}

func TestLoadCorruptBlobFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	kv := memKV{store.KeySettings: []byte("{not json")}
	s := settings.Load(kv, testLogger())
	if got := s.Preferences(); got != model.DefaultPreferences() {
		t.Errorf("preferences after corrupt blob = %+v, want defaults", got)
	}
}

func TestUpdateProfileComputesTargets(t *testing.T) {
	t.Parallel()

	kv := memKV{}
	s := settings.Load(kv, testLogger())
	problems := s.UpdateProfile(validProfile())
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
	targets := s.Targets()
	if targets == nil {
		t.Fatalf("targets not computed for a valid profile")
	}
	if targets.BMR != 1780 {
		t.Errorf("bmr = %v, want 1780", targets.BMR)
	}
	if diff := targets.TargetCalories - 2759; diff > 0.01 || diff < -0.01 {
		t.Errorf("target calories = %v, want 2759", targets.TargetCalories)
	}
	if len(targets.MealDistribution) != 4 {
		t.Errorf("meal targets = %d, want 4", len(targets.MealDistribution))
	}

	// Persisted state survives a reload.
	reloaded := settings.Load(kv, testLogger())
	if reloaded.Targets() == nil || reloaded.Profile() == nil {
		t.Fatalf("profile and targets lost across reload")
	}
}

func TestInvalidProfileKeepsPreviousTargets(t *testing.T) {
	t.Parallel()

	s := settings.Load(memKV{}, testLogger())
	if problems := s.UpdateProfile(validProfile()); len(problems) != 0 {
		t.Fatalf("seed profile rejected: %v", problems)
	}
	before := s.Targets()

	bad := validProfile()
	bad.Age = 12
	problems := s.UpdateProfile(bad)
	if len(problems) == 0 {
		t.Fatalf("expected validation problems for age 12")
	}
	after := s.Targets()
	if after == nil || after.TargetCalories != before.TargetCalories {
		t.Errorf("targets changed after a rejected profile")
	}
	// The profile itself is stored as entered so the user can fix it.
	if got := s.Profile(); got == nil || got.Age != 12 {
		t.Errorf("stored profile = %+v, want the rejected input", got)
	}
}

func TestSetPreference(t *testing.T) {
	t.Parallel()

	kv := memKV{}
	s := settings.Load(kv, testLogger())

	cases := []struct {
		key, value string
		wantErr    bool
	}{
		{settings.PrefDayResetHour, "6", false},
		{settings.PrefDayResetHour, "24", true},
		{settings.PrefCheatMealsPerPeriod, "3", false},
		{settings.PrefCheatMealsPerPeriod, "-1", true},
		{settings.PrefCheatPeriodType, "monthly", false},
		{settings.PrefCheatPeriodType, "fortnightly", true},
		{settings.PrefRetentionDays, "30", false},
		{settings.PrefRetentionDays, "0", true},
		{"nope", "1", true},
	}
	for _, tc := range cases {
		err := s.SetPreference(tc.key, tc.value)
		if (err != nil) != tc.wantErr {
			t.Errorf("SetPreference(%q, %q) error = %v, wantErr %v", tc.key, tc.value, err, tc.wantErr)
		}
	}

	prefs := s.Preferences()
	if prefs.DayResetHour != 6 || prefs.CheatMealsPerPeriod != 3 ||
		prefs.CheatPeriodType != model.PeriodMonthly || prefs.RetentionDays != 30 {
		t.Errorf("preferences = %+v", prefs)
	}

	reloaded := settings.Load(kv, testLogger())
	if reloaded.Preferences() != prefs {
		t.Errorf("preferences lost across reload: %+v", reloaded.Preferences())
	}
}
