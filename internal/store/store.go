package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// Blob keys. Each collection is persisted as one whole JSON document and
// rewritten in full on every mutation.
const (
	keyTasks      = "tasks"
	keyDailyTasks = "daily-tasks"
	keySessions   = "focus-sessions"
	keyGoals      = "focus-goals"
	keyAppState   = "app-state"
)

var (
	ErrEmptyTitle  = errors.New("title is required")
	ErrEmptyTime   = errors.New("time is required")
	ErrInvalidGoal = errors.New("goal values must be positive")
	ErrNotFound    = errors.New("record not found")
)

// Store owns the task, daily-task, focus-session and goal collections plus
// the app-state record. Collections live in memory and round-trip as keyed
// JSON blobs through a SQLite table; every mutator saves the affected
// collection synchronously.
type Store struct {
	db  *sql.DB
	now func() time.Time

	tasks    []Task
	daily    []DailyTask
	sessions []FocusSession
	goals    []FocusGoal
	state    AppState
}

// New opens (or creates) the SQLite database at dbPath, runs migrations and
// loads all collections.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s.loadAll()
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Now returns the store's current time. The clock is swappable in tests.
func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS records (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`
	_, err := s.db.Exec(ddl)
	return err
}

// loadAll populates the in-memory collections. Missing or malformed blobs
// fall back to empty collections rather than failing the open.
func (s *Store) loadAll() {
	s.loadBlob(keyTasks, &s.tasks)
	s.loadBlob(keyDailyTasks, &s.daily)
	s.loadBlob(keySessions, &s.sessions)
	s.loadBlob(keyGoals, &s.goals)

	s.state = defaultAppState()
	s.loadBlob(keyAppState, &s.state)
}

func (s *Store) loadBlob(key string, v any) {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM records WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		return
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		// Malformed blob: keep the caller's default.
		return
	}
}

func (s *Store) saveBlob(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO records (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(raw),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func defaultAppState() AppState {
	return AppState{
		LastPage: "dashboard",
		TimerState: TimerSnapshot{
			Minutes:      25,
			Seconds:      0,
			IsRunning:    false,
			TotalSeconds: 25 * 60,
			Mode:         SessionFocus,
		},
	}
}

// DefaultDBPath returns ~/.config/aura/aura.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "aura", "aura.db"), nil
}
