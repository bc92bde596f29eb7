// Package store persists the saastrack workspace (the current snapshot and
// its monthly history) in a local SQLite file.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/saastrack/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Workspace is a SQLite-backed snapshot store.
type Workspace struct {
	db *sql.DB
}

// Meta describes the last saved revision.
type Meta struct {
	Revision  string
	UpdatedAt time.Time
}

// Open opens or creates the workspace database at the given path.
func Open(dbPath string) (*Workspace, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating workspace dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening workspace db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Workspace{db: db}, nil
}

// Close closes the workspace database.
func (w *Workspace) Close() error {
	return w.db.Close()
}

// LoadSnapshot returns the saved snapshot with its history, or
// model.NewSnapshot() if nothing has been saved yet.
func (w *Workspace) LoadSnapshot() (model.BusinessSnapshot, error) {
	s := model.NewSnapshot()
	err := w.db.QueryRow(`SELECT name, current_users, goal_users, monthly_revenue,
		revenue_goal, churn_rate, growth_rate FROM snapshot WHERE id = 1`).Scan(
		&s.Name, &s.CurrentUsers, &s.GoalUsers, &s.MonthlyRevenue,
		&s.RevenueGoal, &s.ChurnRate, &s.GrowthRate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NewSnapshot(), nil
	}
	if err != nil {
		return s, fmt.Errorf("loading snapshot: %w", err)
	}

	s.History, err = w.loadHistory()
	if err != nil {
		return s, err
	}
	return s, nil
}

func (w *Workspace) loadHistory() ([]model.MonthPoint, error) {
	rows, err := w.db.Query("SELECT month, users, revenue FROM history ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.MonthPoint
	for rows.Next() {
		var p model.MonthPoint
		if err := rows.Scan(&p.Month, &p.Users, &p.Revenue); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SaveSnapshot replaces the stored snapshot and history in one transaction
// and stamps a new revision, which it returns. Projected entries are not
// stored.
func (w *Workspace) SaveSnapshot(s model.BusinessSnapshot) (string, error) {
	tx, err := w.db.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	rev := uuid.NewString()
	_, err = tx.Exec(`INSERT OR REPLACE INTO snapshot
		(id, revision, name, current_users, goal_users, monthly_revenue,
		 revenue_goal, churn_rate, growth_rate, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rev, s.Name, s.CurrentUsers, s.GoalUsers, s.MonthlyRevenue,
		s.RevenueGoal, s.ChurnRate, s.GrowthRate, now(),
	)
	if err != nil {
		return "", fmt.Errorf("saving snapshot: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM history"); err != nil {
		return "", fmt.Errorf("clearing history: %w", err)
	}
	if err := insertHistory(tx, 0, s.History); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing snapshot: %w", err)
	}
	return rev, nil
}

// AppendHistory adds recorded months after the existing history and stamps
// a new revision. The snapshot row is created with defaults if missing.
func (w *Workspace) AppendHistory(points ...model.MonthPoint) (string, error) {
	tx, err := w.db.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	if err := tx.QueryRow("SELECT COALESCE(MAX(position) + 1, 0) FROM history").Scan(&next); err != nil {
		return "", fmt.Errorf("reading history length: %w", err)
	}
	if err := insertHistory(tx, next, points); err != nil {
		return "", err
	}

	rev, err := bumpRevision(tx)
	if err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing history: %w", err)
	}
	return rev, nil
}

// ClearHistory removes every recorded month and stamps a new revision.
func (w *Workspace) ClearHistory() (string, error) {
	tx, err := w.db.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM history"); err != nil {
		return "", fmt.Errorf("clearing history: %w", err)
	}
	rev, err := bumpRevision(tx)
	if err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing history: %w", err)
	}
	return rev, nil
}

// Revision returns the current revision, or "" if nothing was saved.
func (w *Workspace) Revision() (string, error) {
	m, err := w.Meta()
	return m.Revision, err
}

// Meta returns the current revision and its save time.
func (w *Workspace) Meta() (Meta, error) {
	var m Meta
	var updated string
	err := w.db.QueryRow("SELECT revision, updated_at FROM snapshot WHERE id = 1").Scan(&m.Revision, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Meta{}, nil
	}
	if err != nil {
		return m, fmt.Errorf("reading revision: %w", err)
	}
	m.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return m, nil
}

func insertHistory(tx *sql.Tx, start int, points []model.MonthPoint) error {
	pos := start
	for _, p := range points {
		if p.Projected {
			continue
		}
		_, err := tx.Exec("INSERT INTO history (position, month, users, revenue) VALUES (?, ?, ?, ?)",
			pos, p.Month, p.Users, p.Revenue)
		if err != nil {
			return fmt.Errorf("saving history month %q: %w", p.Month, err)
		}
		pos++
	}
	return nil
}

// bumpRevision stamps a new revision on the snapshot row, creating it from
// the defaults if no snapshot was saved yet.
func bumpRevision(tx *sql.Tx) (string, error) {
	rev := uuid.NewString()
	res, err := tx.Exec("UPDATE snapshot SET revision = ?, updated_at = ? WHERE id = 1", rev, now())
	if err != nil {
		return "", fmt.Errorf("updating revision: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return rev, nil
	}

	d := model.NewSnapshot()
	_, err = tx.Exec(`INSERT INTO snapshot
		(id, revision, name, current_users, goal_users, monthly_revenue,
		 revenue_goal, churn_rate, growth_rate, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rev, d.Name, d.CurrentUsers, d.GoalUsers, d.MonthlyRevenue,
		d.RevenueGoal, d.ChurnRate, d.GrowthRate, now(),
	)
	if err != nil {
		return "", fmt.Errorf("creating snapshot: %w", err)
	}
	return rev, nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
