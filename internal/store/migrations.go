package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/macrofit/macrofit-cli/internal/model"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS app_state (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS foods (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  per_100g TEXT NOT NULL,
  user_added INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
}

type seedFood struct {
	id      string
	name    string
	per100g model.Nutrients
}

// Starter catalog, per 100 g.
var seedFoods = []seedFood{
	{"chicken-breast", "Chicken Breast", model.Nutrients{Calories: 165, ProteinG: 31, FatG: 3.6, SaturatedFatG: 1.0, Omega3G: 0.1, SodiumMg: 74, PotassiumMg: 256, IronMg: 1.0, CalciumMg: 15, MagnesiumMg: 29, ZincMg: 1.0, VitaminB6Mg: 0.6, VitaminB12Mcg: 0.3, FolateMcg: 4}},
	{"salmon", "Atlantic Salmon", model.Nutrients{Calories: 208, ProteinG: 20, FatG: 13, SaturatedFatG: 3.1, Omega3G: 2.3, SodiumMg: 59, PotassiumMg: 363, IronMg: 0.3, CalciumMg: 9, MagnesiumMg: 27, ZincMg: 0.4, VitaminAMcg: 58, VitaminCMg: 3.9, VitaminDMcg: 13.1, VitaminB6Mg: 0.6, VitaminB12Mcg: 3.2, FolateMcg: 26}},
	{"whole-egg", "Whole Egg", model.Nutrients{Calories: 155, ProteinG: 13, CarbsG: 1.1, FatG: 11, SaturatedFatG: 3.3, Omega3G: 0.1, SodiumMg: 124, PotassiumMg: 126, IronMg: 1.2, CalciumMg: 56, MagnesiumMg: 12, ZincMg: 1.3, VitaminAMcg: 160, VitaminDMcg: 2.2, VitaminB6Mg: 0.1, VitaminB12Mcg: 1.1, FolateMcg: 47}},
	{"oats", "Rolled Oats", model.Nutrients{Calories: 389, ProteinG: 16.9, CarbsG: 66.3, FatG: 6.9, FiberG: 10.6, SugarG: 1.0, SaturatedFatG: 1.2, Omega3G: 0.1, SodiumMg: 2, PotassiumMg: 429, IronMg: 4.7, CalciumMg: 54, MagnesiumMg: 177, ZincMg: 4.0, VitaminB6Mg: 0.1, FolateMcg: 56}},
	{"brown-rice", "Brown Rice (cooked)", model.Nutrients{Calories: 111, ProteinG: 2.6, CarbsG: 23, FatG: 0.9, FiberG: 1.8, SugarG: 0.4, SaturatedFatG: 0.2, SodiumMg: 5, PotassiumMg: 43, IronMg: 0.4, CalciumMg: 10, MagnesiumMg: 43, ZincMg: 0.6, FolateMcg: 4}},
	{"greek-yogurt", "Greek Yogurt (plain)", model.Nutrients{Calories: 59, ProteinG: 10, CarbsG: 3.6, FatG: 0.4, SugarG: 3.2, SaturatedFatG: 0.1, SodiumMg: 36, PotassiumMg: 141, CalciumMg: 110, MagnesiumMg: 11, ZincMg: 0.5, VitaminB12Mcg: 0.8, FolateMcg: 7}},
	{"broccoli", "Broccoli", model.Nutrients{Calories: 34, ProteinG: 2.8, CarbsG: 6.6, FatG: 0.4, FiberG: 2.6, SugarG: 1.7, SodiumMg: 33, PotassiumMg: 316, IronMg: 0.7, CalciumMg: 47, MagnesiumMg: 21, ZincMg: 0.4, VitaminAMcg: 31, VitaminCMg: 89.2, VitaminB6Mg: 0.2, FolateMcg: 63}},
	{"banana", "Banana", model.Nutrients{Calories: 89, ProteinG: 1.1, CarbsG: 22.8, FatG: 0.3, FiberG: 2.6, SugarG: 12.2, SodiumMg: 1, PotassiumMg: 358, IronMg: 0.3, CalciumMg: 5, MagnesiumMg: 27, ZincMg: 0.2, VitaminCMg: 8.7, VitaminB6Mg: 0.4, FolateMcg: 20}},
	{"almonds", "Almonds", model.Nutrients{Calories: 579, ProteinG: 21.2, CarbsG: 21.6, FatG: 49.9, FiberG: 12.5, SugarG: 4.4, SaturatedFatG: 3.8, Omega6G: 12.3, SodiumMg: 1, PotassiumMg: 733, IronMg: 3.7, CalciumMg: 269, MagnesiumMg: 270, ZincMg: 3.1, VitaminB6Mg: 0.1, FolateMcg: 44}},
	{"olive-oil", "Olive Oil", model.Nutrients{Calories: 884, FatG: 100, SaturatedFatG: 13.8, Omega3G: 0.8, Omega6G: 9.8, SodiumMg: 2, IronMg: 0.6}},
	{"lentils", "Lentils (cooked)", model.Nutrients{Calories: 116, ProteinG: 9, CarbsG: 20.1, FatG: 0.4, FiberG: 7.9, SugarG: 1.8, SodiumMg: 2, PotassiumMg: 369, IronMg: 3.3, CalciumMg: 19, MagnesiumMg: 36, ZincMg: 1.3, VitaminB6Mg: 0.2, FolateMcg: 181}},
	{"whey-protein", "Whey Protein Powder", model.Nutrients{Calories: 370, ProteinG: 80, CarbsG: 8, FatG: 3, SugarG: 4, SaturatedFatG: 1.5, SodiumMg: 180, PotassiumMg: 500, CalciumMg: 450, IronMg: 1.1, VitaminB12Mcg: 1.4}},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}

		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	for _, f := range seedFoods {
		encoded, err := json.Marshal(f.per100g)
		if err != nil {
			return fmt.Errorf("encode seed food %s: %w", f.id, err)
		}
		if _, err := db.Exec(`INSERT OR IGNORE INTO foods(id, name, per_100g) VALUES(?, ?, ?)`, f.id, f.name, string(encoded)); err != nil {
			return fmt.Errorf("seed food %s: %w", f.id, err)
		}
	}

	return nil
}
