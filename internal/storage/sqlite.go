// Package storage provides SQLite-based persistence for game records.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for record persistence.
type Store struct {
	db *sql.DB
}

// Record is a single stored result: rally hits for pong, a lap time for
// retrocar. The meaning of Value belongs to the game.
type Record struct {
	ID        int64
	GameID    string
	Value     float64
	CreatedAt time.Time
}

// Order says which end of the value range is best.
type Order int

const (
	HigherIsBetter Order = iota
	LowerIsBetter
)

func (o Order) sql() string {
	if o == LowerIsBetter {
		return "ASC"
	}
	return "DESC"
}

// aggregate is the SQL function picking the best value.
func (o Order) aggregate() string {
	if o == LowerIsBetter {
		return "MIN"
	}
	return "MAX"
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
		CREATE TABLE IF NOT EXISTS records (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			value REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_records_game_id ON records(game_id);
		CREATE INDEX IF NOT EXISTS idx_records_value ON records(game_id, value);
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

// SaveRecord stores a new record for the given game.
// Returns the ID of the inserted record.
func (s *Store) SaveRecord(gameID string, value float64) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO records (game_id, value) VALUES (?, ?)",
		gameID, value,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRecords retrieves the best N records for the given game, best first.
// Equal values keep insertion order.
func (s *Store) TopRecords(gameID string, order Order, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, value, created_at
		 FROM records
		 WHERE game_id = ?
		 ORDER BY value `+order.sql()+`, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query records: %w", err)
	}
	return scanRecords(rows)
}

// RecentRecords retrieves the latest N records for the given game, newest first.
func (s *Store) RecentRecords(gameID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, value, created_at
		 FROM records
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query records: %w", err)
	}
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Value, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// parseTime handles both time.Time and string DATETIME values.
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

// Best returns the best value for the given game.
// ok is false when the game has no records yet.
func (s *Store) Best(gameID string, order Order) (value float64, ok bool, err error) {
	agg := order.aggregate()
	var best sql.NullFloat64
	err = s.db.QueryRow(
		"SELECT "+agg+"(value) FROM records WHERE game_id = ?",
		gameID,
	).Scan(&best)
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best record: %w", err)
	}

	return best.Float64, best.Valid, nil
}

// ClearRecords deletes all records for the given game.
func (s *Store) ClearRecords(gameID string) error {
	_, err := s.db.Exec("DELETE FROM records WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear records: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	Count      int
	Best       float64
	Average    float64
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for a specific game.
func (s *Store) Stats(gameID string, order Order) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	agg := order.aggregate()
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(`+agg+`(value), 0), COALESCE(AVG(value), 0)
		 FROM records WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Count, &stats.Best, &stats.Average)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM records WHERE game_id = ? ORDER BY id DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}
