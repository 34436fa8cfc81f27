// Package store persists user preferences across sessions in a small sqlite
// database. Articles are never stored here; only the response cache holds
// them, in memory.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	selectedCategoriesKey = "selectedCategories"
	lastOpenedKey         = "last_opened"
)

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.init(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS prefs (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SelectedCategories returns the persisted category selection, or nil when
// none has been saved yet.
func (s *Store) SelectedCategories() ([]string, error) {
	value, err := s.getPref(selectedCategoriesKey)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return nil, fmt.Errorf("parsing saved categories: %w", err)
	}
	return ids, nil
}

// SetSelectedCategories saves the category selection as a JSON-encoded list.
func (s *Store) SetSelectedCategories(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.setPref(selectedCategoriesKey, string(data))
}

// LastOpened returns the instant the dashboard was last opened, or the zero
// time on the first run.
func (s *Store) LastOpened() (time.Time, error) {
	value, err := s.getPref(lastOpenedKey)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, value)
}

func (s *Store) SetLastOpened() error {
	return s.setPref(lastOpenedKey, time.Now().Format(time.RFC3339))
}

func (s *Store) getPref(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&value)
	return value, err
}

func (s *Store) setPref(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO prefs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
