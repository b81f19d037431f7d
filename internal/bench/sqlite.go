package bench

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrRunNotFound = errors.New("run not found")

// EnsureSchema creates tables if they don't exist.
func EnsureSchema(db *sql.DB) error {
	schema := `
PRAGMA journal_mode=WAL;
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  started_at DATETIME NOT NULL,
  iterations INTEGER NOT NULL CHECK(iterations > 0),
  name_bytes INTEGER NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);
CREATE TABLE IF NOT EXISTS results (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  run_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  format TEXT NOT NULL,
  bytes INTEGER NOT NULL,
  encode_ns INTEGER NOT NULL,
  decode_ns INTEGER NOT NULL,
  round_trip INTEGER NOT NULL DEFAULT 0,
  conversions INTEGER NOT NULL DEFAULT 0,
  FOREIGN KEY(run_id) REFERENCES runs(id)
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_results_run ON results(run_id, position);
`
	_, err := db.Exec(schema)
	return err
}

// Repository records comparison runs.
type Repository interface {
	SaveRun(ctx context.Context, r Run) (string, error)
	GetRun(ctx context.Context, id string) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

type sqliteRepo struct{ db *sql.DB }

func NewSQLiteRepo(db *sql.DB) Repository { return &sqliteRepo{db: db} }

func (r *sqliteRepo) SaveRun(ctx context.Context, run Run) (id string, err error) {
	id = run.ID
	if id == "" {
		id = "run_" + uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
INSERT INTO runs (id,started_at,iterations,name_bytes,created_at)
VALUES (?,?,?,?,CURRENT_TIMESTAMP)`, id, run.StartedAt, run.Iterations, run.NameBytes)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	for i, res := range run.Results {
		_, err = tx.ExecContext(ctx, `
INSERT INTO results (run_id,position,format,bytes,encode_ns,decode_ns,round_trip,conversions)
VALUES (?,?,?,?,?,?,?,?)`, id, i, res.Format, res.Bytes, res.EncodeNs, res.DecodeNs, res.RoundTrip, res.Conversions)
		if err != nil {
			return "", fmt.Errorf("insert result %s: %w", res.Format, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

func (r *sqliteRepo) GetRun(ctx context.Context, id string) (Run, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,started_at,iterations,name_bytes FROM runs WHERE id=?`, id)
	var run Run
	err := row.Scan(&run.ID, &run.StartedAt, &run.Iterations, &run.NameBytes)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, err
	}
	if run.Results, err = r.results(ctx, run.ID); err != nil {
		return Run{}, err
	}
	return run, nil
}

func (r *sqliteRepo) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,started_at,iterations,name_bytes
FROM runs ORDER BY started_at DESC, created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.Iterations, &run.NameBytes); err != nil {
			rows.Close()
			return nil, err
		}
		runs = append(runs, run)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, err
	}

	// Results are loaded after the runs cursor is closed; the pool may hold a
	// single connection.
	for i := range runs {
		if runs[i].Results, err = r.results(ctx, runs[i].ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (r *sqliteRepo) results(ctx context.Context, runID string) ([]Result, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT format,bytes,encode_ns,decode_ns,round_trip,conversions
FROM results WHERE run_id=? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var res Result
		if err := rows.Scan(&res.Format, &res.Bytes, &res.EncodeNs, &res.DecodeNs, &res.RoundTrip, &res.Conversions); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
