// Package storage provides SQLite-based persistence for finished session
// results. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// ResultEntry represents one finished session.
type ResultEntry struct {
	ID           int64
	RunID        string // Generated on save when empty
	Generator    string
	BPM          int
	Meter        string
	Mode         string
	Score        int
	Perfect      int
	Good         int
	Miss         int
	MaxCombo     int
	DurationSecs int
	CreatedAt    time.Time
}

// Accuracy is the share of judged notes that were not missed.
func (r ResultEntry) Accuracy() float64 {
	total := r.Perfect + r.Good + r.Miss
	if total == 0 {
		return 0
	}
	return float64(r.Perfect+r.Good) / float64(total)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			generator TEXT NOT NULL,
			bpm INTEGER NOT NULL,
			meter TEXT NOT NULL,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			perfect INTEGER NOT NULL DEFAULT 0,
			good INTEGER NOT NULL DEFAULT 0,
			miss INTEGER NOT NULL DEFAULT 0,
			max_combo INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_meter ON results(meter);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(meter, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished session and returns the stored entry's ID.
// A run ID is generated when the entry has none.
func (s *Store) SaveResult(r ResultEntry) (int64, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}

	res, err := s.db.Exec(
		`INSERT INTO results
		 (run_id, generator, bpm, meter, mode, score, perfect, good, miss, max_combo, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID,
		r.Generator,
		r.BPM,
		r.Meter,
		r.Mode,
		r.Score,
		r.Perfect,
		r.Good,
		r.Miss,
		r.MaxCombo,
		r.DurationSecs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const resultColumns = `id, run_id, generator, bpm, meter, mode, score, perfect, good, miss, max_combo, duration_secs, created_at`

// RecentResults retrieves the most recent results, newest first.
func (s *Store) RecentResults(limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanResults(rows)
}

// TopResults retrieves the best results for a meter, or for all meters when
// meter is empty. Results are ordered by score descending.
func (s *Store) TopResults(meter string, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE ? = '' OR meter = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		meter, meter, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query top results: %w", err)
	}
	return scanResults(rows)
}

// ResultByRunID retrieves a result by its run ID. It returns nil when no
// such run exists.
func (s *Store) ResultByRunID(runID string) (*ResultEntry, error) {
	row := s.db.QueryRow(`SELECT `+resultColumns+` FROM results WHERE run_id = ?`, runID)

	var r ResultEntry
	var createdAt any
	err := row.Scan(&r.ID, &r.RunID, &r.Generator, &r.BPM, &r.Meter, &r.Mode,
		&r.Score, &r.Perfect, &r.Good, &r.Miss, &r.MaxCombo, &r.DurationSecs, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query result: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// BestScore returns the highest score for the given meter.
// Returns 0 if no results exist.
func (s *Store) BestScore(meter string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM results WHERE meter = ?",
		meter,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearResults deletes all stored results.
func (s *Store) ClearResults() error {
	_, err := s.db.Exec("DELETE FROM results")
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// MeterStats contains aggregated statistics for one meter.
type MeterStats struct {
	Meter      string
	Sessions   int
	BestScore  int
	AvgScore   float64
	BestCombo  int
	TotalSecs  int64
	LastPlayed time.Time
}

// Stats retrieves statistics for every meter that has been played.
func (s *Store) Stats() (map[string]*MeterStats, error) {
	rows, err := s.db.Query(
		`SELECT meter, COUNT(*), MAX(score), AVG(score), MAX(max_combo), SUM(duration_secs), MAX(created_at)
		 FROM results
		 GROUP BY meter`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*MeterStats)
	for rows.Next() {
		var m MeterStats
		var lastPlayed any
		if err := rows.Scan(&m.Meter, &m.Sessions, &m.BestScore, &m.AvgScore, &m.BestCombo, &m.TotalSecs, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.LastPlayed = parseTime(lastPlayed)
		stats[m.Meter] = &m
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

func scanResults(rows *sql.Rows) ([]ResultEntry, error) {
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var r ResultEntry
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Generator, &r.BPM, &r.Meter, &r.Mode,
			&r.Score, &r.Perfect, &r.Good, &r.Miss, &r.MaxCombo, &r.DurationSecs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		entries = append(entries, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
