// Package sqlite implements the state repository on SQLite. This is the
// default backend: a single local file, no server to run.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"

	"paydesk/internal/state"
)

// Repo implements state.Repository for SQLite.
//
// SQLite has no native timestamp type; saved_at is stored as an
// RFC3339Nano string for reliable round-trips and easy debugging.
type Repo struct {
	db *sql.DB
}

func init() {
	state.Register("sqlite", New)
}

func New(ctx context.Context, cfg state.Config) (state.Repository, error) {
	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Repo{db: db}, nil
}

func (r *Repo) Close() { _ = r.db.Close() }

func (r *Repo) Init(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS paydesk_state (
    id       INTEGER PRIMARY KEY CHECK (id = 1),
    payload  TEXT NOT NULL,
    saved_at TEXT NOT NULL
)`)
	return err
}

// Save upserts the single snapshot row. "INSERT OR REPLACE" works because
// id is the primary key.
func (r *Repo) Save(ctx context.Context, s *state.Snapshot) error {
	payload, err := state.Encode(s)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO paydesk_state (id, payload, saved_at) VALUES (1, ?, ?)`,
		string(payload), s.SavedAt.UTC().Format(time.RFC3339Nano))
	return err
}

func (r *Repo) Load(ctx context.Context) (*state.Snapshot, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM paydesk_state WHERE id = 1`).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, state.ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return state.Decode([]byte(payload))
}

func (r *Repo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM paydesk_state WHERE id = 1`)
	return err
}

var _ state.Repository = (*Repo)(nil)
