// Package food is the lookup collaborator for logged portions: foods keyed
// by id with per-100g nutrient vectors.
package food

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/macrofit/macrofit-cli/internal/model"
)

// Source resolves a food id to its per-100g nutrient vector. An unknown
// id reports (zero, false, nil), never an error.
type Source interface {
	PerHundredGrams(id string) (model.Nutrients, bool, error)
}

type Food struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Per100g   model.Nutrients `json:"per_100g"`
	UserAdded bool            `json:"user_added"`
	CreatedAt time.Time       `json:"created_at"`
}

// SQLiteCatalog serves foods from the foods table.
type SQLiteCatalog struct {
	db *sql.DB
}

func NewCatalog(db *sql.DB) *SQLiteCatalog {
	return &SQLiteCatalog{db: db}
}

func (c *SQLiteCatalog) PerHundredGrams(id string) (model.Nutrients, bool, error) {
	id = normalizeID(id)
	var raw string
	err := c.db.QueryRow(`SELECT per_100g FROM foods WHERE id = ?`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.Nutrients{}, false, nil
	}
	if err != nil {
		return model.Nutrients{}, false, fmt.Errorf("lookup food %q: %w", id, err)
	}
	var n model.Nutrients
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return model.Nutrients{}, false, fmt.Errorf("decode food %q: %w", id, err)
	}
	return n, true, nil
}

func (c *SQLiteCatalog) Get(id string) (*Food, error) {
	id = normalizeID(id)
	var f Food
	var raw string
	err := c.db.QueryRow(`SELECT id, name, per_100g, user_added, created_at FROM foods WHERE id = ?`, id).
		Scan(&f.ID, &f.Name, &raw, &f.UserAdded, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get food %q: %w", id, err)
	}
	if err := json.Unmarshal([]byte(raw), &f.Per100g); err != nil {
		return nil, fmt.Errorf("decode food %q: %w", id, err)
	}
	return &f, nil
}

func (c *SQLiteCatalog) List() ([]Food, error) {
	rows, err := c.db.Query(`SELECT id, name, per_100g, user_added, created_at FROM foods ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	defer rows.Close()

	foods := make([]Food, 0)
	for rows.Next() {
		var f Food
		var raw string
		if err := rows.Scan(&f.ID, &f.Name, &raw, &f.UserAdded, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &f.Per100g); err != nil {
			return nil, fmt.Errorf("decode food %q: %w", f.ID, err)
		}
		foods = append(foods, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foods: %w", err)
	}
	return foods, nil
}

func (c *SQLiteCatalog) Add(id, name string, per100g model.Nutrients) error {
	id = normalizeID(id)
	if id == "" {
		return fmt.Errorf("food id is required")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("food name is required")
	}
	if per100g.Calories < 0 || per100g.ProteinG < 0 || per100g.CarbsG < 0 || per100g.FatG < 0 {
		return fmt.Errorf("nutrient amounts must be >= 0")
	}
	encoded, err := json.Marshal(per100g)
	if err != nil {
		return fmt.Errorf("encode food %q: %w", id, err)
	}
	_, err = c.db.Exec(`
INSERT INTO foods(id, name, per_100g, user_added)
VALUES(?, ?, ?, 1)
ON CONFLICT(id) DO UPDATE SET name=excluded.name, per_100g=excluded.per_100g
`, id, name, string(encoded))
	if err != nil {
		return fmt.Errorf("add food %q: %w", id, err)
	}
	return nil
}

func normalizeID(id string) string {
	id = strings.TrimSpace(strings.ToLower(id))
	return strings.ReplaceAll(id, " ", "-")
}
