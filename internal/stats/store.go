// Package stats persists win counts in a small SQLite file. The simulation
// records outcomes fire-and-forget and the server reads totals on connect;
// neither depends on the store being available.
package stats

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Totals is the all-time win tally per faction.
type Totals struct {
	Wins map[string]int64
}

// Store wraps the SQLite connection.
type Store struct {
	db *sqlx.DB
}

// Open opens or creates the database at the given path.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open stats db: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate stats db: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS wins (
		faction TEXT PRIMARY KEY,
		count INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS matches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		winner TEXT NOT NULL,
		ticks INTEGER NOT NULL,
		finished_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_matches_winner ON matches(winner);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordWin bumps the winner's tally and appends a match history row.
func (s *Store) RecordWin(faction string, ticks int64) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO wins (faction, count) VALUES (?, 1)
		 ON CONFLICT(faction) DO UPDATE SET count = count + 1`,
		faction,
	); err != nil {
		return fmt.Errorf("bump wins: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT INTO matches (winner, ticks, finished_at) VALUES (?, ?, ?)",
		faction, ticks, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	return tx.Commit()
}

// Fetch returns the win tallies. Callers degrade an error to zero totals.
func (s *Store) Fetch() (Totals, error) {
	var rows []struct {
		Faction string `db:"faction"`
		Count   int64  `db:"count"`
	}
	if err := s.db.Select(&rows, "SELECT faction, count FROM wins"); err != nil {
		return Totals{}, fmt.Errorf("select wins: %w", err)
	}

	totals := Totals{Wins: make(map[string]int64, len(rows))}
	for _, r := range rows {
		totals.Wins[r.Faction] = r.Count
	}
	return totals, nil
}

// MatchCount reports how many finished matches have been recorded.
func (s *Store) MatchCount() (int64, error) {
	var n int64
	if err := s.db.Get(&n, "SELECT COUNT(*) FROM matches"); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return n, nil
}
