package macrofit

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/macrofit/macrofit-cli/internal/app"
	"github.com/macrofit/macrofit-cli/internal/clock"
	"github.com/macrofit/macrofit-cli/internal/food"
	"github.com/macrofit/macrofit-cli/internal/ledger"
	"github.com/macrofit/macrofit-cli/internal/model"
	"github.com/macrofit/macrofit-cli/internal/settings"
	"github.com/macrofit/macrofit-cli/internal/store"
)

// appCtx wires the stores and the in-memory ledger for one command run.
type appCtx struct {
	DB       *sql.DB
	Path     string
	Catalog  *food.SQLiteCatalog
	Settings *settings.Store
	Ledger   *ledger.Ledger
	Logger   *slog.Logger
}

func withApp(run func(*appCtx) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := store.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := store.ApplyMigrations(sqldb); err != nil {
		return err
	}

	logger := newLogger()
	kv := store.NewKV(sqldb)
	catalog := food.NewCatalog(sqldb)
	cfg := settings.Load(kv, logger)
	l := ledger.New(kv, catalog, clock.System{}, logger, cfg.Preferences(), cfg.Targets())
	defer l.Flush()

	// Housekeeping on every load keeps the entry window and the
	// retention horizon honest without a daemon.
	if report := l.RunLifecycle(); report.Changed() {
		logger.Debug("lifecycle maintenance",
			"archived_entries", report.ArchivedEntries,
			"pruned_summaries", report.PrunedSummaries)
	}

	return run(&appCtx{
		DB:       sqldb,
		Path:     path,
		Catalog:  catalog,
		Settings: cfg,
		Ledger:   l,
		Logger:   logger,
	})
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	switch strings.ToLower(os.Getenv("MACROFIT_LOG")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func parseDateArg(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if _, err := time.ParseInLocation("2006-01-02", value, time.Local); err != nil {
		return "", fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", value)
	}
	return value, nil
}

// parseDateTimeOpt returns the zero time when both flags are empty; the
// ledger substitutes its clock for zero timestamps.
func parseDateTimeOpt(date, timeStr string) (time.Time, error) {
	date = strings.TrimSpace(date)
	timeStr = strings.TrimSpace(timeStr)
	if date == "" && timeStr == "" {
		return time.Time{}, nil
	}
	if date == "" {
		return time.Time{}, fmt.Errorf("--date is required when --time is set")
	}
	if timeStr == "" {
		t, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
		}
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeStr, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date/--time (expected YYYY-MM-DD and HH:MM)")
	}
	return t, nil
}

// parseFoodsFlag parses repeated "food-id:grams" pairs.
func parseFoodsFlag(values []string) ([]model.SelectedFood, error) {
	foods := make([]model.SelectedFood, 0, len(values))
	for _, raw := range values {
		id, grams, ok := strings.Cut(strings.TrimSpace(raw), ":")
		if !ok {
			return nil, fmt.Errorf("invalid --food %q (expected id:grams)", raw)
		}
		portion, err := strconv.ParseFloat(strings.TrimSpace(grams), 64)
		if err != nil || portion <= 0 {
			return nil, fmt.Errorf("invalid portion in --food %q (grams must be > 0)", raw)
		}
		foods = append(foods, model.SelectedFood{
			FoodID:       strings.TrimSpace(id),
			PortionGrams: portion,
		})
	}
	return foods, nil
}

func convertWeightToKg(value float64, unit string) (float64, error) {
	if value <= 0 {
		return 0, fmt.Errorf("weight must be > 0")
	}
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		u = "kg"
	}
	switch u {
	case "kg":
		return value, nil
	case "lb", "lbs":
		return value * 0.45359237, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}

// findDefinition resolves a meal definition by id or case-insensitive name.
func findDefinition(l *ledger.Ledger, ref string) (model.MealDefinition, error) {
	ref = strings.TrimSpace(ref)
	for _, def := range l.Definitions() {
		if def.ID == ref || strings.EqualFold(def.Name, ref) {
			return def, nil
		}
	}
	return model.MealDefinition{}, fmt.Errorf("meal %q not found (see 'macrofit meals list')", ref)
}
