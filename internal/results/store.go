// apps/go-solver/internal/results/store.go
//
// SQLite persistence for solve-all benchmark runs.
// Responsibilities:
//   - Open the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Bootstrap the schema (idempotent).
//   - Record run summaries and per-answer guess counts.
//   - Query recent runs for comparison between catalog or strategy tweaks.
//
// Solver state itself is never persisted; only harness output lands here.

package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/robalobadob/wordle/apps/go-solver/internal/stats"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at        TEXT NOT NULL,
	hard_mode         INTEGER NOT NULL,
	workers           INTEGER NOT NULL,
	answers           INTEGER NOT NULL,
	groupsize_totals  TEXT NOT NULL,
	groupcount_totals TEXT NOT NULL,
	record            TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS run_answers (
	run_id     INTEGER NOT NULL REFERENCES runs(id),
	answer     TEXT NOT NULL,
	groupsize  INTEGER NOT NULL,
	groupcount INTEGER NOT NULL,
	PRIMARY KEY (run_id, answer)
);
`

// Store wraps the SQLite handle.
type Store struct {
	db *sql.DB
}

// Open opens (creating if missing) the database at dsn and bootstraps the
// schema.
func Open(dsn string) (*Store, error) {
	// Ensure directory exists for ./data/runs.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Run is one persisted summary row.
type Run struct {
	ID               int64
	StartedAt        time.Time
	HardMode         bool
	Workers          int
	Answers          int
	GroupSizeTotals  [stats.MaxGuesses]int
	GroupCountTotals [stats.MaxGuesses]int
	Record           [3]int
}

// InsertRun records a whole run summary plus its per-answer rows in one
// transaction and returns the new run ID.
func (s *Store) InsertRun(ctx context.Context, startedAt time.Time, hardMode bool, workers int, summary *stats.Summary) (int64, error) {
	sizeJSON, err := json.Marshal(summary.GroupSize)
	if err != nil {
		return 0, err
	}
	countJSON, err := json.Marshal(summary.GroupCount)
	if err != nil {
		return 0, err
	}
	recordJSON, err := json.Marshal(summary.Record)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, hard_mode, workers, answers, groupsize_totals, groupcount_totals, record)
		 VALUES (?,?,?,?,?,?,?)`,
		startedAt.UTC().Format(time.RFC3339), boolInt(hardMode), workers, len(summary.Answers),
		string(sizeJSON), string(countJSON), string(recordJSON))
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, a := range summary.Answers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_answers (run_id, answer, groupsize, groupcount) VALUES (?,?,?,?)`,
			runID, a.Answer, a.GroupSize, a.GroupCount); err != nil {
			return 0, fmt.Errorf("insert answer %q: %w", a.Answer, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// RecentRuns returns up to limit run summaries, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, hard_mode, workers, answers, groupsize_totals, groupcount_totals, record
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r          Run
			started    string
			hard       int
			sizeJSON   string
			countJSON  string
			recordJSON string
		)
		if err := rows.Scan(&r.ID, &started, &hard, &r.Workers, &r.Answers, &sizeJSON, &countJSON, &recordJSON); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		r.HardMode = hard != 0
		if err := json.Unmarshal([]byte(sizeJSON), &r.GroupSizeTotals); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(countJSON), &r.GroupCountTotals); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(recordJSON), &r.Record); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// HardestAnswers returns the answers of a run that took the most guesses
// under the groupsize strategy.
func (s *Store) HardestAnswers(ctx context.Context, runID int64, limit int) ([]stats.AnswerResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT answer, groupsize, groupcount FROM run_answers
		 WHERE run_id=? ORDER BY groupsize DESC, answer ASC LIMIT ?`, runID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []stats.AnswerResult
	for rows.Next() {
		var a stats.AnswerResult
		if err := rows.Scan(&a.Answer, &a.GroupSize, &a.GroupCount); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
