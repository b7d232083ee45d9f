package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"bookgen/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the sqlite-backed run journal
type Store struct {
	db *sql.DB
}

// Open connects to the journal at dbPath and creates its tables if needed
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// one writer; keeps ":memory:" databases on a single connection
	db.SetMaxOpenConns(1)

	runTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		input TEXT,
		output TEXT,
		status TEXT,
		read_count INTEGER DEFAULT 0,
		accepted_count INTEGER DEFAULT 0,
		rejected TEXT,
		started_at DATETIME,
		finished_at DATETIME
	);
	`
	errorTable := `
	CREATE TABLE IF NOT EXISTS run_errors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT,
		error_message TEXT,
		created_at DATETIME
	);
	`

	for _, stmt := range []string{runTable, errorTable} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create journal tables: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores a new run in its initial state
func (s *Store) SaveRun(summary model.Summary) error {
	_, err := s.db.Exec(`INSERT INTO runs (id, input, output, status, rejected, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		summary.RunID, summary.Input, summary.Output, summary.Status, "{}", summary.StartedAt)
	return err
}

// FinishRun stores the final counts and status, plus the error if the run failed
func (s *Store) FinishRun(summary model.Summary) error {
	counts := summary.Rejected
	if counts == nil {
		counts = map[string]int64{}
	}
	rejected, err := json.Marshal(counts)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`UPDATE runs SET status = ?, read_count = ?, accepted_count = ?, rejected = ?, finished_at = ? WHERE id = ?`,
		summary.Status, summary.Read, summary.Accepted, string(rejected), summary.FinishedAt, summary.RunID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s not found", summary.RunID)
	}

	if summary.Error != "" {
		return s.SaveRunError(summary.RunID, summary.Error)
	}
	return nil
}

// SaveRunError records an error for a run
func (s *Store) SaveRunError(runID string, message string) error {
	now := time.Now().UTC()
	_, err := s.db.Exec(`INSERT INTO run_errors (run_id, error_message, created_at) VALUES (?, ?, ?)`,
		runID, message, now)
	return err
}

// ListRuns returns the journaled runs, newest first
func (s *Store) ListRuns() ([]model.Summary, error) {
	rows, err := s.db.Query(`SELECT id FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, err
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	runs := make([]model.Summary, 0, len(ids))
	for _, id := range ids {
		run, err := s.GetRun(id)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// GetRun fetches one run with its last recorded error
func (s *Store) GetRun(runID string) (model.Summary, error) {
	var (
		summary    model.Summary
		rejected   string
		finishedAt sql.NullTime
	)

	err := s.db.QueryRow(`SELECT id, input, output, status, read_count, accepted_count, rejected, started_at, finished_at FROM runs WHERE id = ?`, runID).
		Scan(&summary.RunID, &summary.Input, &summary.Output, &summary.Status, &summary.Read, &summary.Accepted, &rejected, &summary.StartedAt, &finishedAt)
	if err != nil {
		return model.Summary{}, err
	}
	if finishedAt.Valid {
		summary.FinishedAt = finishedAt.Time
	}

	summary.Rejected = map[string]int64{}
	if err := json.Unmarshal([]byte(rejected), &summary.Rejected); err != nil {
		return model.Summary{}, err
	}

	var message string
	err = s.db.QueryRow(`SELECT error_message FROM run_errors WHERE run_id = ? ORDER BY id DESC LIMIT 1`, runID).Scan(&message)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return model.Summary{}, err
	default:
		summary.Error = message
	}

	return summary, nil
}
