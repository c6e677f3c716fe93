// Package storage provides SQLite-based persistence for run high scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// MaxHighScores is how many runs the table retains.
const MaxHighScores = 5

const timestampLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db   *sql.DB
	keep int
}

// RunRecord is one finished run.
type RunRecord struct {
	ID         int64
	RunID      string
	Score      int
	Time       string // Survival time as mm:ss
	SurvivalMS int64
	Level      int
	Kills      int
	CreatedAt  time.Time
}

// RunStats aggregates every run ever saved, including pruned ones.
type RunStats struct {
	Runs       int
	Kills      int
	SurvivalMS int64
	BestScore  int
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
	// A single writer avoids SQLITE_BUSY between SSH sessions.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, keep: MaxHighScores}
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
			score INTEGER NOT NULL,
			survival_time TEXT NOT NULL,
			survival_ms INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			kills INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);

		CREATE TABLE IF NOT EXISTS totals (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			runs INTEGER NOT NULL DEFAULT 0,
			kills INTEGER NOT NULL DEFAULT 0,
			survival_ms INTEGER NOT NULL DEFAULT 0,
			best_score INTEGER NOT NULL DEFAULT 0
		);
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

// SaveRun records a finished run and prunes the table to the best
// MaxHighScores entries. A missing RunID is generated.
func (s *Store) SaveRun(ctx context.Context, r RunRecord) (RunRecord, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	if r.Level <= 0 {
		r.Level = 1
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return r, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, score, survival_time, survival_ms, level, kills, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Score, r.Time, r.SurvivalMS, r.Level, r.Kills, r.CreatedAt.UTC().Format(timestampLayout),
	)
	if err != nil {
		return r, fmt.Errorf("storage: cannot save run: %w", err)
	}
	if r.ID, err = result.LastInsertId(); err != nil {
		return r, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO totals (id, runs, kills, survival_ms, best_score) VALUES (1, 1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			runs = runs + 1,
			kills = kills + excluded.kills,
			survival_ms = survival_ms + excluded.survival_ms,
			best_score = MAX(best_score, excluded.best_score)`,
		r.Kills, r.SurvivalMS, r.Score,
	)
	if err != nil {
		return r, fmt.Errorf("storage: cannot update totals: %w", err)
	}

	if err := prune(ctx, tx, s.keep); err != nil {
		return r, err
	}

	if err := tx.Commit(); err != nil {
		return r, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return r, nil
}

// prune drops malformed rows and everything below the best keep runs.
// Ties keep the older run.
func prune(ctx context.Context, tx *sql.Tx, keep int) error {
	_, err := tx.ExecContext(ctx,
		`DELETE FROM runs
		 WHERE typeof(score) != 'integer'
		    OR id NOT IN (
				SELECT id FROM runs
				WHERE typeof(score) = 'integer'
				ORDER BY score DESC, id ASC
				LIMIT ?
			)`,
		keep,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prune runs: %w", err)
	}
	return nil
}

// TopRuns retrieves the best runs, highest score first.
// Rows that cannot be decoded are skipped.
func (s *Store) TopRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = MaxHighScores
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, score, survival_time, survival_ms, level, kills, created_at
		 FROM runs
		 ORDER BY score DESC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			r         RunRecord
			score     any
			timeText  sql.NullString
			createdAt any
		)
		if err := rows.Scan(&r.ID, &r.RunID, &score, &timeText, &r.SurvivalMS, &r.Level, &r.Kills, &createdAt); err != nil {
			continue
		}
		v, ok := score.(int64)
		if !ok || v < 0 || !timeText.Valid {
			continue
		}
		r.Score = int(v)
		r.Time = timeText.String
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
		if len(runs) == limit {
			break
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// HighScore returns the best stored score, or 0 when there are none.
func (s *Store) HighScore(ctx context.Context) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM runs WHERE typeof(score) = 'integer'",
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats returns lifetime totals.
func (s *Store) Stats(ctx context.Context) (RunStats, error) {
	var st RunStats
	err := s.db.QueryRowContext(ctx,
		"SELECT runs, kills, survival_ms, best_score FROM totals WHERE id = 1",
	).Scan(&st.Runs, &st.Kills, &st.SurvivalMS, &st.BestScore)
	if err == sql.ErrNoRows {
		return RunStats{}, nil
	}
	if err != nil {
		return RunStats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	return st, nil
}

// ClearRuns deletes every stored run and resets the totals.
func (s *Store) ClearRuns(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM runs; DELETE FROM totals;"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string column values.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timestampLayout, t); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse(timestampLayout, string(t)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
