package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// RunRow is one finished piloted session
type RunRow struct {
	ID              int64     `json:"id"`
	SessionID       string    `json:"sid"`
	Pilot           string    `json:"pilot"`
	PeakScore       float64   `json:"peak"`
	FinalScore      float64   `json:"final"`
	Ticks           uint64    `json:"ticks"`
	DurationMs      float64   `json:"duration_ms"` // sim clock
	FoodEaten       int       `json:"food_eaten"`
	AIEaten         int       `json:"ai_eaten"`
	PlayerCellsLost int       `json:"cells_lost"`
	Splits          int       `json:"splits"`
	Merges          int       `json:"merges"`
	CreatedAt       time.Time `json:"created_at"`
}

// LeaderboardEntry represents one row in the leaderboard
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	Pilot      string  `json:"pilot"`
	PeakScore  float64 `json:"peak"`
	FinalScore float64 `json:"final"`
	DurationMs float64 `json:"duration_ms"`
	AIEaten    int     `json:"ai_eaten"`
}

// OpenDB opens (or creates) the SQLite database
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	// WAL lets the analytics writer and API readers overlap
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates tables if they don't exist
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		pilot TEXT NOT NULL,
		peak_score REAL NOT NULL DEFAULT 0,
		final_score REAL NOT NULL DEFAULT 0,
		ticks INTEGER NOT NULL DEFAULT 0,
		duration_ms REAL NOT NULL DEFAULT 0,
		food_eaten INTEGER NOT NULL DEFAULT 0,
		ai_eaten INTEGER NOT NULL DEFAULT 0,
		cells_lost INTEGER NOT NULL DEFAULT 0,
		splits INTEGER NOT NULL DEFAULT 0,
		merges INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS analytics_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_type TEXT NOT NULL,
		session_id TEXT,
		data TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_peak ON runs(peak_score);
	CREATE INDEX IF NOT EXISTS idx_events_type ON analytics_events(event_type, created_at);
	`
	_, err := db.conn.Exec(schema)
	if err != nil {
		log.Printf("DB migration error: %v", err)
	}
	return err
}

// RecordRun stores a finished run and returns its ID
func (db *DB) RecordRun(r RunRow) (int64, error) {
	res, err := db.conn.Exec(
		`INSERT INTO runs (session_id, pilot, peak_score, final_score, ticks, duration_ms,
			food_eaten, ai_eaten, cells_lost, splits, merges)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.Pilot, r.PeakScore, r.FinalScore, int64(r.Ticks), r.DurationMs,
		r.FoodEaten, r.AIEaten, r.PlayerCellsLost, r.Splits, r.Merges,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// TopRuns returns the best runs by peak score
func (db *DB) TopRuns(limit int) ([]LeaderboardEntry, error) {
	rows, err := db.conn.Query(`
		SELECT pilot, peak_score, final_score, duration_ms, ai_eaten
		FROM runs
		ORDER BY peak_score DESC, id ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top runs: %w", err)
	}
	defer rows.Close()

	var result []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.Pilot, &e.PeakScore, &e.FinalScore, &e.DurationMs, &e.AIEaten); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		result = append(result, e)
	}
	return result, rows.Err()
}

// RunsByPilot returns a pilot's most recent runs
func (db *DB) RunsByPilot(pilot string, limit int) ([]RunRow, error) {
	rows, err := db.conn.Query(`
		SELECT id, session_id, pilot, peak_score, final_score, ticks, duration_ms,
			food_eaten, ai_eaten, cells_lost, splits, merges, created_at
		FROM runs
		WHERE pilot = ?
		ORDER BY id DESC
		LIMIT ?`,
		pilot, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var result []RunRow
	for rows.Next() {
		var r RunRow
		var ticks int64
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Pilot, &r.PeakScore, &r.FinalScore, &ticks,
			&r.DurationMs, &r.FoodEaten, &r.AIEaten, &r.PlayerCellsLost, &r.Splits, &r.Merges,
			&r.CreatedAt); err != nil {
			return nil, err
		}
		r.Ticks = uint64(ticks)
		result = append(result, r)
	}
	return result, rows.Err()
}
