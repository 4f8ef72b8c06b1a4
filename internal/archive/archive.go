// Package archive persists finished simulation runs to SQLite so they
// can be listed and inspected later.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"kitchend/internal/kitchen"
)

// Run is one archived simulation run.
type Run struct {
	ID         string           `json:"id"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
	Rate       float64          `json:"rate"`
	OrderCount int              `json:"order_count"`
	Placed     int              `json:"orders_placed"`
	Failed     int              `json:"orders_failed"`
	PickedUp   int              `json:"orders_picked_up"`
	Missed     int              `json:"orders_missed"`
	Discarded  int              `json:"orders_discarded"`
	Moved      int              `json:"orders_moved"`
	Actions    []kitchen.Action `json:"actions,omitempty"`
}

// SaveRunParams carries everything a run leaves behind.
type SaveRunParams struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Rate       float64
	OrderCount int
	Placed     int
	Failed     int
	PickedUp   int
	Missed     int
	Discarded  int
	Moved      int
	Actions    []kitchen.Action
}

// Archive stores runs in a SQLite database.
type Archive struct {
	db      *sql.DB
	entropy *rand.Rand
}

// Open opens or creates the archive database at the given path.
func Open(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	a := &Archive{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := a.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return a, nil
}

func (a *Archive) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), a.entropy).String()
}

func (a *Archive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id               TEXT PRIMARY KEY,
		started_at       TEXT NOT NULL,
		finished_at      TEXT NOT NULL,
		rate             REAL NOT NULL,
		order_count      INTEGER NOT NULL,
		orders_placed    INTEGER NOT NULL,
		orders_failed    INTEGER NOT NULL,
		orders_picked_up INTEGER NOT NULL,
		orders_missed    INTEGER NOT NULL,
		orders_discarded INTEGER NOT NULL,
		orders_moved     INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);

	CREATE TABLE IF NOT EXISTS run_actions (
		run_id   TEXT NOT NULL REFERENCES runs(id),
		seq      INTEGER NOT NULL,
		at       TEXT NOT NULL,
		order_id TEXT NOT NULL,
		action   TEXT NOT NULL,
		target   TEXT,
		details  TEXT,
		PRIMARY KEY (run_id, seq)
	);
	`
	_, err := a.db.Exec(schema)
	return err
}

// SaveRun persists a run and its full ledger, returning the new run id.
func (a *Archive) SaveRun(ctx context.Context, p SaveRunParams) (string, error) {
	id := a.newID()

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, rate, order_count,
		                   orders_placed, orders_failed, orders_picked_up,
		                   orders_missed, orders_discarded, orders_moved)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		p.StartedAt.UTC().Format(time.RFC3339),
		p.FinishedAt.UTC().Format(time.RFC3339),
		p.Rate, p.OrderCount, p.Placed, p.Failed, p.PickedUp,
		p.Missed, p.Discarded, p.Moved)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, act := range p.Actions {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_actions (run_id, seq, at, order_id, action, target, details)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, i, act.Timestamp.UTC().Format(time.RFC3339Nano),
			act.OrderID, string(act.Type), string(act.Target), act.Details)
		if err != nil {
			return "", fmt.Errorf("insert action %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	return id, nil
}

// ListRuns returns the most recent runs, newest first, without their
// ledgers.
func (a *Archive) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := a.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, rate, order_count,
		        orders_placed, orders_failed, orders_picked_up,
		        orders_missed, orders_discarded, orders_moved
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	return runs, nil
}

// GetRun returns one archived run with its full ledger.
func (a *Archive) GetRun(ctx context.Context, id string) (Run, error) {
	r, err := scanRun(a.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, rate, order_count,
		        orders_placed, orders_failed, orders_picked_up,
		        orders_missed, orders_discarded, orders_moved
		 FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return Run{}, err
	}

	rows, err := a.db.QueryContext(ctx,
		`SELECT at, order_id, action, target, details
		 FROM run_actions WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return Run{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var at, orderID, action string
		var target, details sql.NullString
		if err := rows.Scan(&at, &orderID, &action, &target, &details); err != nil {
			return Run{}, err
		}
		ts, _ := time.Parse(time.RFC3339Nano, at)
		r.Actions = append(r.Actions, kitchen.Action{
			Timestamp: ts,
			OrderID:   orderID,
			Type:      kitchen.ActionType(action),
			Target:    kitchen.Location(target.String),
			Details:   details.String,
		})
	}

	return r, nil
}

// Close closes the underlying database.
func (a *Archive) Close() error {
	return a.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	var started, finished string

	err := row.Scan(&r.ID, &started, &finished, &r.Rate, &r.OrderCount,
		&r.Placed, &r.Failed, &r.PickedUp, &r.Missed, &r.Discarded, &r.Moved)
	if err != nil {
		return r, err
	}

	r.StartedAt, _ = time.Parse(time.RFC3339, started)
	r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
	return r, nil
}
