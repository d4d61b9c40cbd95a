package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"vocabsender/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS sender_state (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	used       TEXT NOT NULL,
	last_sent  TEXT NOT NULL,
	sent_hours TEXT NOT NULL
);
`

// StateRepo implements repository.StateRepository backed by a SQLite
// database. Unlike the plain file store, SQLite serializes concurrent
// invocations through its own locking.
type StateRepo struct {
	db *sql.DB
}

// NewStateRepo opens (creating if needed) the SQLite database at path
func NewStateRepo(path string) (*StateRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}
	// SQLite prefers a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")
	_, _ = db.Exec("PRAGMA busy_timeout = 5000")

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate state database: %w", err)
	}

	return &StateRepo{db: db}, nil
}

// Close releases the database handle
func (r *StateRepo) Close() error {
	return r.db.Close()
}

// Load reads the single state row, returning an empty state when the
// database has never been written
func (r *StateRepo) Load() (*domain.State, error) {
	var usedJSON, lastSent, sentHoursJSON string
	query := `SELECT used, last_sent, sent_hours FROM sender_state WHERE id = 1`

	err := r.db.QueryRow(query).Scan(&usedJSON, &lastSent, &sentHoursJSON)
	if err == sql.ErrNoRows {
		return domain.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state row: %w", err)
	}

	state := domain.NewState()
	state.LastSent = lastSent
	if err := json.Unmarshal([]byte(usedJSON), &state.Used); err != nil {
		return nil, fmt.Errorf("parse used indices: %w", err)
	}
	if err := json.Unmarshal([]byte(sentHoursJSON), &state.SentHours); err != nil {
		return nil, fmt.Errorf("parse sent hours: %w", err)
	}
	if state.Used == nil {
		state.Used = []int{}
	}
	if state.SentHours == nil {
		state.SentHours = map[string][]int{}
	}
	return state, nil
}

// Save upserts the single state row
func (r *StateRepo) Save(state *domain.State) error {
	usedJSON, err := json.Marshal(state.Used)
	if err != nil {
		return fmt.Errorf("encode used indices: %w", err)
	}
	sentHoursJSON, err := json.Marshal(state.SentHours)
	if err != nil {
		return fmt.Errorf("encode sent hours: %w", err)
	}

	query := `
		INSERT INTO sender_state (id, used, last_sent, sent_hours)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			used = excluded.used,
			last_sent = excluded.last_sent,
			sent_hours = excluded.sent_hours
	`
	if _, err := r.db.Exec(query, string(usedJSON), state.LastSent, string(sentHoursJSON)); err != nil {
		return fmt.Errorf("save state row: %w", err)
	}
	return nil
}
