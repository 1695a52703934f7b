// Package storage persists a history of scan sessions and their stage
// outcomes in a SQLite database, so past runs can be queried without
// walking the scans directory.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure Go driver, no CGO
)

// Ledger is the session history database.
type Ledger struct {
	db *sql.DB
}

// SessionRecord is one scan session row.
type SessionRecord struct {
	ID        string    `json:"id"`
	Scope     string    `json:"scope"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time,omitempty"`
	Status    string    `json:"status"`
}

// StageRecord is one pipeline stage outcome within a session.
type StageRecord struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Seq       int       `json:"seq"`
	Stage     string    `json:"stage"`
	Artifact  string    `json:"artifact"`
	LineCount int       `json:"line_count"`
	Error     string    `json:"error,omitempty"`
	EndedAt   time.Time `json:"ended_at"`
}

// Open opens (creating if necessary) the history database at path.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

func (l *Ledger) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		scope TEXT NOT NULL,
		start_time DATETIME NOT NULL,
		end_time DATETIME,
		status TEXT NOT NULL DEFAULT 'running'
	);
	CREATE TABLE IF NOT EXISTS stage_records (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES sessions(id),
		seq INTEGER NOT NULL,
		stage TEXT NOT NULL,
		artifact TEXT NOT NULL,
		line_count INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		ended_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_scope ON sessions(scope);
	CREATE INDEX IF NOT EXISTS idx_stage_records_session ON stage_records(session_id, seq);
	`
	if _, err := l.db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// Close closes the database.
func (l *Ledger) Close() error { return l.db.Close() }

// BeginSession records a new running session.
func (l *Ledger) BeginSession(id, scope string, start time.Time) error {
	_, err := l.db.Exec(
		`INSERT INTO sessions (id, scope, start_time, status) VALUES (?, ?, ?, 'running')`,
		id, scope, start.UTC(),
	)
	return err
}

// CloseSession marks a session finished.
func (l *Ledger) CloseSession(id, status string, end time.Time) error {
	_, err := l.db.Exec(
		`UPDATE sessions SET end_time = ?, status = ? WHERE id = ?`,
		end.UTC(), status, id,
	)
	return err
}

// RecordStage appends one stage outcome to a session.
func (l *Ledger) RecordStage(sessionID string, seq int, stage, artifact string, lineCount int, stageErr error) error {
	errText := ""
	if stageErr != nil {
		errText = stageErr.Error()
	}
	_, err := l.db.Exec(
		`INSERT INTO stage_records (id, session_id, seq, stage, artifact, line_count, error, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), sessionID, seq, stage, artifact, lineCount, errText, time.Now().UTC(),
	)
	return err
}

// Sessions returns the most recent sessions, optionally filtered by scope.
func (l *Ledger) Sessions(scope string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, scope, start_time, end_time, status
		FROM sessions`
	args := []any{}
	if scope != "" {
		query += ` WHERE scope = ?`
		args = append(args, scope)
	}
	query += ` ORDER BY start_time DESC LIMIT ?`
	args = append(args, limit)

	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var r SessionRecord
		// end_time is NULL while a session is running; a bare *time.Time
		// scan would reject the NULL (and expression columns lose the
		// DATETIME declared type entirely), so go through sql.NullTime.
		var end sql.NullTime
		if err := rows.Scan(&r.ID, &r.Scope, &r.StartTime, &end, &r.Status); err != nil {
			return nil, err
		}
		if end.Valid {
			r.EndTime = end.Time
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stages returns the stage records of one session in pipeline order.
func (l *Ledger) Stages(sessionID string) ([]StageRecord, error) {
	rows, err := l.db.Query(
		`SELECT id, session_id, seq, stage, artifact, line_count, COALESCE(error, ''), ended_at
		 FROM stage_records WHERE session_id = ? ORDER BY seq`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StageRecord
	for rows.Next() {
		var r StageRecord
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Seq, &r.Stage, &r.Artifact, &r.LineCount, &r.Error, &r.EndedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
