// Package store provides a SQLite-backed key-value store for saved
// dashboard state.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/runway/internal/config"
	"github.com/theirongolddev/runway/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ScenarioKey is the slot the scenario planner saves to.
const ScenarioKey = "financial-scenario"

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is a single-table key-value store.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// DefaultPath returns the database location under the cache directory.
func DefaultPath() string {
	return filepath.Join(config.CacheDir(), "runway.db")
}

// Open opens or creates the store at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the store database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put writes value under key, replacing any previous value.
func (s *Store) Put(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, ?)`,
		key, value, s.now().UTC().Format(time.RFC3339))
	return err
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return value, err
}

// SaveScenario serializes cfg as JSON into the scenario slot. There is no
// matching load path; the dashboard always starts from defaults.
func (s *Store) SaveScenario(cfg model.ScenarioConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding scenario: %w", err)
	}
	if err := s.Put(ScenarioKey, string(data)); err != nil {
		return fmt.Errorf("saving scenario: %w", err)
	}
	return nil
}

// SaveScenarioAt opens the store at path, saves cfg, and closes it again.
func SaveScenarioAt(path string, cfg model.ScenarioConfig) error {
	st, err := Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	return st.SaveScenario(cfg)
}
