package food_test

import (
	"path/filepath"
	"testing"

	"github.com/macrofit/macrofit-cli/internal/food"
	"github.com/macrofit/macrofit-cli/internal/model"
	"github.com/macrofit/macrofit-cli/internal/store"
)

func newTestCatalog(t *testing.T) *food.SQLiteCatalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "macrofit.db")
	db, err := store.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := store.ApplyMigrations(db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return food.NewCatalog(db)
}

func TestSeededFoodLookup(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog(t)
	n, ok, err := catalog.PerHundredGrams("chicken-breast")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok {
		t.Fatalf("expected seeded chicken-breast")
	}
	if n.ProteinG != 31 {
		t.Fatalf("chicken protein = %v, want 31", n.ProteinG)
	}
}

func TestUnknownFoodIsNotAnError(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog(t)
	n, ok, err := catalog.PerHundredGrams("no-such-food")
	if err != nil {
		t.Fatalf("unknown food must not error: %v", err)
	}
	if ok {
		t.Fatalf("unknown food reported as found")
	}
	if n != (model.Nutrients{}) {
		t.Fatalf("unknown food vector = %+v, want zero", n)
	}
}

func TestAddAndListUserFood(t *testing.T) {
	t.Parallel()

	catalog := newTestCatalog(t)
	err := catalog.Add("Cottage Cheese", "Cottage Cheese", model.Nutrients{Calories: 98, ProteinG: 11, CarbsG: 3.4, FatG: 4.3})
	if err != nil {
		t.Fatalf("add food: %v", err)
	}

	got, err := catalog.Get("cottage-cheese")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || !got.UserAdded || got.Per100g.ProteinG != 11 {
		t.Fatalf("user food = %+v", got)
	}

	foods, err := catalog.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(foods) == 0 {
		t.Fatalf("expected foods in list")
	}
}
