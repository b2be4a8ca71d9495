// Package store handles SQLite persistence of workout history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/rounds/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed-width UTC so that text comparison orders by time.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for session data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			uuid TEXT NOT NULL UNIQUE,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			warmup_s INTEGER NOT NULL,
			round_s INTEGER NOT NULL,
			rest_s INTEGER NOT NULL,
			rounds INTEGER NOT NULL,
			rounds_completed INTEGER NOT NULL,
			completed INTEGER NOT NULL,
			skips INTEGER NOT NULL,
			counted_s INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertSession stores a workout session. A UUID is assigned when the
// record has none.
func (s *Store) InsertSession(ctx context.Context, rec model.SessionRecord) (int64, error) {
	if rec.UUID == "" {
		rec.UUID = uuid.New().String()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (uuid, started_at, ended_at, warmup_s, round_s, rest_s, rounds, rounds_completed, completed, skips, counted_s)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.UUID,
		formatTime(rec.StartedAt),
		formatTime(rec.EndedAt),
		rec.Workout.WarmupSeconds,
		rec.Workout.RoundSeconds,
		rec.Workout.RestSeconds,
		rec.Workout.Rounds,
		rec.RoundsCompleted,
		boolToInt(rec.Completed),
		rec.Skips,
		rec.CountedSeconds,
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	return res.LastInsertId()
}

// ListSessions returns sessions ordered by start time, filtered by cfg.
func (s *Store) ListSessions(ctx context.Context, cfg model.HistoryConfig) ([]model.SessionRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Since != nil {
		clauses = append(clauses, "started_at >= ?")
		args = append(args, formatTime(*cfg.Since))
	}
	if cfg.CompletedOnly {
		clauses = append(clauses, "completed = 1")
	}
	query := fmt.Sprintf(`SELECT id, uuid, started_at, ended_at, warmup_s, round_s, rest_s, rounds, rounds_completed, completed, skips, counted_s
		FROM sessions
		WHERE %s
		ORDER BY started_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionRecord
	for rows.Next() {
		var rec model.SessionRecord
		var startedAt, endedAt string
		var completed int
		if err := rows.Scan(
			&rec.ID, &rec.UUID, &startedAt, &endedAt,
			&rec.Workout.WarmupSeconds, &rec.Workout.RoundSeconds, &rec.Workout.RestSeconds, &rec.Workout.Rounds,
			&rec.RoundsCompleted, &completed, &rec.Skips, &rec.CountedSeconds,
		); err != nil {
			return nil, err
		}
		if rec.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, err
		}
		if rec.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
			return nil, err
		}
		rec.Completed = completed != 0
		sessions = append(sessions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	return sessions, nil
}

// DeleteBefore removes sessions that started before t and returns how
// many were removed.
func (s *Store) DeleteBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE started_at < ?`, formatTime(t))
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	return res.RowsAffected()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
