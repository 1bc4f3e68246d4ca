// Package storage provides SQLite-based persistence for run summaries.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only the outcome of a finished run is stored; simulation state is never
// saved or resumed.
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

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunSummary is the recorded outcome of one simulation run.
type RunSummary struct {
	ID        int64
	RunID     string // uuid, generated by SaveRun when empty
	Preset    string
	Renderer  string
	FPS       int
	Seed      int64
	Ticks     uint64
	Frames    uint64
	Shots     int
	Alive     int
	Evicted   int
	Duration  time.Duration
	EndReason string // see the gunsim.End* constants
	CreatedAt time.Time
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

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			preset TEXT NOT NULL,
			renderer TEXT NOT NULL DEFAULT '',
			fps INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			frames INTEGER NOT NULL DEFAULT 0,
			shots INTEGER NOT NULL DEFAULT 0,
			alive INTEGER NOT NULL DEFAULT 0,
			evicted INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_preset ON runs(preset);
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

// SaveRun records a finished run and returns its run ID.
func (s *Store) SaveRun(r RunSummary) (string, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	} else if _, err := uuid.Parse(r.RunID); err != nil {
		return "", fmt.Errorf("storage: invalid run id %q: %w", r.RunID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, preset, renderer, fps, seed, ticks, frames, shots, alive, evicted, duration_ms, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID,
		r.Preset,
		r.Renderer,
		r.FPS,
		r.Seed,
		int64(r.Ticks),
		int64(r.Frames),
		r.Shots,
		r.Alive,
		r.Evicted,
		r.Duration.Milliseconds(),
		r.EndReason,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return r.RunID, nil
}

const runColumns = `id, run_id, preset, renderer, fps, seed, ticks, frames,
		        shots, alive, evicted, duration_ms, end_reason, created_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(sc rowScanner) (RunSummary, error) {
	var r RunSummary
	var ticks, frames, durationMs int64
	var createdAt any

	if err := sc.Scan(
		&r.ID,
		&r.RunID,
		&r.Preset,
		&r.Renderer,
		&r.FPS,
		&r.Seed,
		&ticks,
		&frames,
		&r.Shots,
		&r.Alive,
		&r.Evicted,
		&durationMs,
		&r.EndReason,
		&createdAt,
	); err != nil {
		return r, err
	}

	r.Ticks = uint64(ticks)
	r.Frames = uint64(frames)
	r.Duration = time.Duration(durationMs) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RunByID retrieves a run by its run ID. Returns nil if it does not exist.
func (s *Store) RunByID(runID string) (*RunSummary, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE run_id = ?`,
		runID,
	)

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recent runs, newest first.
// An empty preset matches all presets.
func (s *Store) RecentRuns(preset string, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR preset = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		preset, preset, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearRuns deletes all runs for the given preset.
func (s *Store) ClearRuns(preset string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE preset = ?", preset)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// PresetStats contains aggregated statistics for a preset.
type PresetStats struct {
	Preset     string
	Runs       int
	TotalShots int64
	MaxShots   int
	AvgShots   float64
	TotalTicks int64
	LastRun    time.Time
}

// Stats retrieves aggregated statistics for a specific preset.
func (s *Store) Stats(preset string) (*PresetStats, error) {
	stats := &PresetStats{Preset: preset}
	var lastRun any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(shots), 0), COALESCE(MAX(shots), 0),
		        COALESCE(AVG(shots), 0), COALESCE(SUM(ticks), 0), MAX(created_at)
		 FROM runs WHERE preset = ?`,
		preset,
	).Scan(&stats.Runs, &stats.TotalShots, &stats.MaxShots, &stats.AvgShots, &stats.TotalTicks, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get preset stats: %w", err)
	}
	stats.LastRun = parseTime(lastRun)

	return stats, nil
}

// AllStats retrieves statistics for every preset that has been run.
func (s *Store) AllStats() (map[string]*PresetStats, error) {
	rows, err := s.db.Query(
		`SELECT preset, COUNT(*), SUM(shots), MAX(shots), AVG(shots), SUM(ticks), MAX(created_at)
		 FROM runs
		 GROUP BY preset`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all presets stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PresetStats)
	for rows.Next() {
		var ps PresetStats
		var lastRun any
		if err := rows.Scan(&ps.Preset, &ps.Runs, &ps.TotalShots, &ps.MaxShots, &ps.AvgShots, &ps.TotalTicks, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastRun = parseTime(lastRun)
		stats[ps.Preset] = &ps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
