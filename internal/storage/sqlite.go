// Package storage provides SQLite-based persistence for session results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Persistence is a collaborator of the session core, never part of it: the
// controller finishes a Result, the caller decides whether to save it.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/minutegames/gauntlet/internal/session"
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// SessionEntry is one persisted session outcome.
type SessionEntry struct {
	ID           int64
	RoundsTotal  int
	RoundsPlayed int
	RawScore     int
	MaxScore     int
	Total        float64
	Average      float64
	Grade        string
	Abandoned    bool
	CreatedAt    time.Time
}

// RoundEntry is one persisted round record within a session.
type RoundEntry struct {
	SessionID  int64
	Index      int
	ModuleID   string
	RawScore   int
	MaxScore   int
	Normalized float64
	Grade      string
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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			rounds_total INTEGER NOT NULL,
			rounds_played INTEGER NOT NULL,
			raw_score INTEGER NOT NULL DEFAULT 0,
			max_score INTEGER NOT NULL DEFAULT 0,
			total REAL NOT NULL DEFAULT 0,
			average REAL NOT NULL DEFAULT 0,
			grade TEXT NOT NULL,
			abandoned INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_best ON sessions(abandoned, average DESC);

		CREATE TABLE IF NOT EXISTS session_rounds (
			session_id INTEGER NOT NULL REFERENCES sessions(id),
			idx INTEGER NOT NULL,
			module_id TEXT NOT NULL,
			raw_score INTEGER NOT NULL,
			max_score INTEGER NOT NULL,
			normalized REAL NOT NULL,
			grade TEXT NOT NULL,
			PRIMARY KEY (session_id, idx)
		);
		CREATE INDEX IF NOT EXISTS idx_session_rounds_module ON session_rounds(module_id);
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

// SaveResult persists a finished (or abandoned) session result with its
// per-round records. Returns the ID of the inserted session row.
func (s *Store) SaveResult(res *session.Result, policy session.Aggregation, grade string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	raw, max := res.RawTotals()
	out, err := tx.Exec(
		`INSERT INTO sessions
		 (rounds_total, rounds_played, raw_score, max_score, total, average, grade, abandoned)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		res.RoundsPlanned,
		res.RoundsPlayed(),
		raw,
		max,
		res.Total(policy),
		res.Average(policy),
		grade,
		boolToInt(res.Abandoned),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := out.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	for _, rec := range res.Records {
		if _, err := tx.Exec(
			`INSERT INTO session_rounds
			 (session_id, idx, module_id, raw_score, max_score, normalized, grade)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, rec.Index, rec.ModuleID, rec.RawScore, rec.MaxScore, rec.Normalized, rec.Grade,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save round %d: %w", rec.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit session: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, rounds_total, rounds_played, raw_score, max_score,
		        total, average, grade, abandoned, created_at
		 FROM sessions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// BestSessions retrieves completed sessions ordered by average score.
func (s *Store) BestSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, rounds_total, rounds_played, raw_score, max_score,
		        total, average, grade, abandoned, created_at
		 FROM sessions
		 WHERE abandoned = 0
		 ORDER BY average DESC, created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// SessionRounds retrieves the round records for one session, in order.
func (s *Store) SessionRounds(sessionID int64) ([]RoundEntry, error) {
	rows, err := s.db.Query(
		`SELECT session_id, idx, module_id, raw_score, max_score, normalized, grade
		 FROM session_rounds
		 WHERE session_id = ?
		 ORDER BY idx`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var entries []RoundEntry
	for rows.Next() {
		var e RoundEntry
		if err := rows.Scan(&e.SessionID, &e.Index, &e.ModuleID, &e.RawScore, &e.MaxScore, &e.Normalized, &e.Grade); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ModuleStats contains aggregated statistics for one game module.
type ModuleStats struct {
	ModuleID      string
	RoundsPlayed  int
	AvgNormalized float64
	BestRaw       int
}

// GetModuleStats retrieves aggregated statistics for every module that has
// been played.
func (s *Store) GetModuleStats() ([]ModuleStats, error) {
	rows, err := s.db.Query(
		`SELECT module_id, COUNT(*), COALESCE(AVG(normalized), 0), COALESCE(MAX(raw_score), 0)
		 FROM session_rounds
		 GROUP BY module_id
		 ORDER BY module_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query module stats: %w", err)
	}
	defer rows.Close()

	var stats []ModuleStats
	for rows.Next() {
		var st ModuleStats
		if err := rows.Scan(&st.ModuleID, &st.RoundsPlayed, &st.AvgNormalized, &st.BestRaw); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats = append(stats, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

func scanSessions(rows *sql.Rows) ([]SessionEntry, error) {
	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var abandoned int
		var createdAt any
		if err := rows.Scan(
			&e.ID, &e.RoundsTotal, &e.RoundsPlayed, &e.RawScore, &e.MaxScore,
			&e.Total, &e.Average, &e.Grade, &abandoned, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Abandoned = abandoned != 0
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles the driver returning DATETIME columns as either
// time.Time or string.
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

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
