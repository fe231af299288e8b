// Package store persists filter runs and their per-record decisions in
// Postgres so past filtering passes can be listed and re-inspected.
package store

import (
    "context"
    "database/sql"
    "encoding/json"
    "errors"
    "fmt"
    "strings"
    "time"

    "github.com/gofrs/uuid/v5"
)

// ErrNotFound is returned by GetRun when no run has the requested id.
var ErrNotFound = errors.New("run not found")

// Run is one recorded filtering pass.
type Run struct {
    ID          string    `json:"id"`
    CreatedAt   time.Time `json:"created_at"`
    Level       string    `json:"level"`
    SourceID    int64     `json:"source_id"`
    Filters     []string  `json:"filters"`
    RecordCount int       `json:"record_count"`
    PassedCount int       `json:"passed_count"`
}

// Decision is the stored outcome for a single record within a run.
type Decision struct {
    RecordKey    string `json:"record_key"`
    Passed       bool   `json:"passed"`
    FailedFilter string `json:"failed_filter,omitempty"`
    EvalError    string `json:"eval_error,omitempty"`
}

type Store struct {
    db *sql.DB
}

func New(db *sql.DB) *Store {
    return &Store{db: db}
}

// schemaSQL is the baseline schema. InitSchema applies it statement by
// statement; extra migrations can be layered on top via RunMigrations.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS filter_runs (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMPTZ NOT NULL,
    level TEXT NOT NULL,
    source_id BIGINT NOT NULL DEFAULT 0,
    filters JSONB NOT NULL,
    record_count INTEGER NOT NULL,
    passed_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS filter_decisions (
    run_id TEXT NOT NULL REFERENCES filter_runs(id) ON DELETE CASCADE,
    record_key TEXT NOT NULL,
    passed BOOLEAN NOT NULL,
    failed_filter TEXT NOT NULL DEFAULT '',
    eval_error TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_filter_decisions_run ON filter_decisions(run_id)
`

// InitSchema creates the tables if they do not exist yet.
func (s *Store) InitSchema(ctx context.Context) error {
    for _, c := range strings.Split(schemaSQL, ";") {
        stmt := strings.TrimSpace(c)
        if stmt == "" { continue }
        if _, err := s.db.ExecContext(ctx, stmt); err != nil {
            return fmt.Errorf("init schema: %w", err)
        }
    }
    return nil
}

// SaveRun stores the run header and all decisions in one transaction.
// A missing ID is filled with a fresh UUID, a zero CreatedAt with now.
func (s *Store) SaveRun(ctx context.Context, run *Run, decisions []Decision) error {
    if run.ID == "" {
        id, err := uuid.NewV4()
        if err != nil { return fmt.Errorf("new run id: %w", err) }
        run.ID = id.String()
    }
    if run.CreatedAt.IsZero() {
        run.CreatedAt = time.Now().UTC()
    }
    filters, err := json.Marshal(run.Filters)
    if err != nil { return fmt.Errorf("encode filters: %w", err) }

    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil { return fmt.Errorf("begin: %w", err) }

    if _, err := tx.ExecContext(ctx, `INSERT INTO filter_runs(id, created_at, level, source_id, filters, record_count, passed_count)
        VALUES ($1,$2,$3,$4,$5,$6,$7)`,
        run.ID, run.CreatedAt, run.Level, run.SourceID, string(filters), run.RecordCount, run.PassedCount,
    ); err != nil {
        tx.Rollback()
        return fmt.Errorf("insert run: %w", err)
    }

    stmt, err := tx.PrepareContext(ctx, `INSERT INTO filter_decisions(run_id, record_key, passed, failed_filter, eval_error)
        VALUES ($1,$2,$3,$4,$5)`)
    if err != nil {
        tx.Rollback()
        return fmt.Errorf("prepare decisions: %w", err)
    }
    for _, d := range decisions {
        if _, err := stmt.ExecContext(ctx, run.ID, d.RecordKey, d.Passed, d.FailedFilter, d.EvalError); err != nil {
            stmt.Close()
            tx.Rollback()
            return fmt.Errorf("insert decision %s: %w", d.RecordKey, err)
        }
    }
    stmt.Close()
    if err := tx.Commit(); err != nil { return fmt.Errorf("commit: %w", err) }
    return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
    if limit <= 0 { limit = 50 }
    rows, err := s.db.QueryContext(ctx, `SELECT id, created_at, level, source_id, filters, record_count, passed_count
        FROM filter_runs ORDER BY created_at DESC LIMIT $1`, limit)
    if err != nil { return nil, fmt.Errorf("list runs: %w", err) }
    defer rows.Close()

    out := make([]Run, 0)
    for rows.Next() {
        var r Run
        var filters []byte
        if err := rows.Scan(&r.ID, &r.CreatedAt, &r.Level, &r.SourceID, &filters, &r.RecordCount, &r.PassedCount); err != nil {
            return nil, fmt.Errorf("scan run: %w", err)
        }
        if err := json.Unmarshal(filters, &r.Filters); err != nil {
            return nil, fmt.Errorf("decode filters for %s: %w", r.ID, err)
        }
        out = append(out, r)
    }
    return out, rows.Err()
}

// GetRun loads one run and its decisions. Returns ErrNotFound when the id
// is unknown.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, []Decision, error) {
    var r Run
    var filters []byte
    err := s.db.QueryRowContext(ctx, `SELECT id, created_at, level, source_id, filters, record_count, passed_count
        FROM filter_runs WHERE id=$1`, id).
        Scan(&r.ID, &r.CreatedAt, &r.Level, &r.SourceID, &filters, &r.RecordCount, &r.PassedCount)
    if errors.Is(err, sql.ErrNoRows) { return nil, nil, ErrNotFound }
    if err != nil { return nil, nil, fmt.Errorf("get run %s: %w", id, err) }
    if err := json.Unmarshal(filters, &r.Filters); err != nil {
        return nil, nil, fmt.Errorf("decode filters for %s: %w", id, err)
    }

    rows, err := s.db.QueryContext(ctx, `SELECT record_key, passed, failed_filter, eval_error
        FROM filter_decisions WHERE run_id=$1`, id)
    if err != nil { return nil, nil, fmt.Errorf("get decisions %s: %w", id, err) }
    defer rows.Close()

    decisions := make([]Decision, 0)
    for rows.Next() {
        var d Decision
        if err := rows.Scan(&d.RecordKey, &d.Passed, &d.FailedFilter, &d.EvalError); err != nil {
            return nil, nil, fmt.Errorf("scan decision: %w", err)
        }
        decisions = append(decisions, d)
    }
    return &r, decisions, rows.Err()
}
