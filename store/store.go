// Package store persists the project collection as JSON snapshots in a
// local SQLite database. Each save appends a snapshot row; loading
// returns the newest one. Identical consecutive snapshots are skipped
// so idle autosaves do not grow the database.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"lukechampine.com/blake3"

	"sld/schematic"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	hash       TEXT NOT NULL,
	payload    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at);
`

// Store wraps the snapshot database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
	keep   int // snapshots retained after pruning
}

// Open creates or opens the snapshot database at path, creating parent
// directories as needed.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating storage directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db, logger: logger, keep: 100}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes the collection as a new snapshot. Saving a collection
// identical to the latest snapshot is a no-op.
func (s *Store) Save(projects []*schematic.Project) error {
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	hash := fmt.Sprintf("%x", blake3.Sum256(data))

	var latest string
	err = s.db.QueryRow(`SELECT hash FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&latest)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("reading latest snapshot: %w", err)
	}
	if latest == hash {
		return nil
	}

	start := time.Now()
	if _, err := s.db.Exec(`INSERT INTO snapshots (hash, payload) VALUES (?, ?)`, hash, string(data)); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := s.prune(); err != nil {
		s.logger.Warn("snapshot prune failed", "error", err)
	}
	s.logger.Debug("snapshot saved",
		"bytes", len(data),
		"projects", len(projects),
		"elapsed", time.Since(start))
	return nil
}

// Load returns the newest snapshot, migrated to the current page
// format. An empty database yields a fresh single-project collection.
func (s *Store) Load() ([]*schematic.Project, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&payload)
	if err == sql.ErrNoRows {
		s.logger.Info("no snapshots found, starting fresh")
		return []*schematic.Project{schematic.NewProject("Project 1")}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	var projects []*schematic.Project
	if err := json.Unmarshal([]byte(payload), &projects); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	for _, p := range projects {
		p.Normalize()
	}
	if len(projects) == 0 {
		projects = []*schematic.Project{schematic.NewProject("Project 1")}
	}
	return projects, nil
}

// prune keeps the newest snapshots and discards the rest.
func (s *Store) prune() error {
	_, err := s.db.Exec(`
		DELETE FROM snapshots WHERE id NOT IN (
			SELECT id FROM snapshots ORDER BY id DESC LIMIT ?
		)`, s.keep)
	return err
}
