// Package store owns the sqlite database: the opaque app_state blob store
// the core persists through, the food catalog table, and backups.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Persisted blob keys. A missing key means "use built-in defaults".
const (
	KeyMealDefinitions = "meal_definitions"
	KeyMealPlanEntries = "meal_plan_entries"
	KeyDailySummaries  = "daily_summaries"
	KeySettings        = "settings"
)

// KV is the blob store the ledger and settings persist through.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return db, nil
}

// SQLiteKV stores blobs in the app_state table.
type SQLiteKV struct {
	db *sql.DB
}

func NewKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

func (s *SQLiteKV) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get state %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteKV) Set(key string, value []byte) error {
	_, err := s.db.Exec(`
INSERT INTO app_state(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, value)
	if err != nil {
		return fmt.Errorf("set state %q: %w", key, err)
	}
	return nil
}
