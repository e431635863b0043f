// Package storage provides SQLite-based persistence for finished-game
// results. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. Only outcomes are stored; game state never leaves memory.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents one finished game.
type ScoreEntry struct {
	ID        int64
	VariantID string
	Score     int
	Moves     int
	MaxTile   int
	Won       bool
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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			variant_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			max_tile INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_variant ON scores(variant_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(variant_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_created ON scores(created_at);
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

// SaveScore records a finished game. The entry's ID and CreatedAt are
// assigned by the database; the returned value is the inserted ID.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (variant_id, score, moves, max_tile, won) VALUES (?, ?, ?, ?, ?)",
		e.VariantID, e.Score, e.Moves, e.MaxTile, e.Won,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores retrieves the top N scores for the given variant.
// Results are ordered by score descending.
func (s *Store) TopScores(variantID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, variant_id, score, moves, max_tile, won, created_at
		 FROM scores
		 WHERE variant_id = ?
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		variantID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// RecentScores retrieves the most recently finished games across all
// variants, newest first.
func (s *Store) RecentScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, variant_id, score, moves, max_tile, won, created_at
		 FROM scores
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent scores: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// HighScore returns the highest score for the given variant.
// Returns 0 if no scores exist.
func (s *Store) HighScore(variantID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE variant_id = ?",
		variantID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given variant.
func (s *Store) ClearScores(variantID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE variant_id = ?", variantID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// VariantStats contains aggregated statistics for one variant.
type VariantStats struct {
	VariantID  string
	Plays      int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	BestTile   int
	Wins       int
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for a specific variant.
func (s *Store) Stats(variantID string) (*VariantStats, error) {
	stats := &VariantStats{VariantID: variantID}

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0),
		        COALESCE(MAX(max_tile), 0),
		        COALESCE(SUM(won), 0)
		 FROM scores WHERE variant_id = ?`,
		variantID,
	).Scan(&stats.Plays, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.BestTile, &stats.Wins)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE variant_id = ? ORDER BY created_at DESC LIMIT 1`,
		variantID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = scanTime(lastPlayed)
	}

	return stats, nil
}

// AllStats retrieves statistics for every variant that has been played.
func (s *Store) AllStats() (map[string]*VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant_id, COUNT(*), MAX(score), AVG(score), SUM(score),
		        MAX(max_tile), SUM(won), MAX(created_at)
		 FROM scores
		 GROUP BY variant_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*VariantStats)
	for rows.Next() {
		var vs VariantStats
		var lastPlayed any
		if err := rows.Scan(&vs.VariantID, &vs.Plays, &vs.HighScore, &vs.AvgScore,
			&vs.TotalScore, &vs.BestTile, &vs.Wins, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		vs.LastPlayed = scanTime(lastPlayed)
		stats[vs.VariantID] = &vs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// scanEntries reads score rows produced by the SELECT column order used
// throughout this package.
func scanEntries(rows *sql.Rows) ([]ScoreEntry, error) {
	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.VariantID, &e.Score, &e.Moves, &e.MaxTile, &e.Won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = scanTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// scanTime converts a scanned datetime column, which the driver may
// return as time.Time or string, into a time.Time.
func scanTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse("2006-01-02 15:04:05", string(t)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
