// Package postgres implements the state repository on PostgreSQL, for
// installations where several operators share one payroll session.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"paydesk/internal/state"
)

// Repo implements state.Repository for Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

func init() {
	state.Register("postgres", New)
}

func New(ctx context.Context, cfg state.Config) (state.Repository, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, err
	}
	return &Repo{pool: pool}, nil
}

func (r *Repo) Close() { r.pool.Close() }

func (r *Repo) Init(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS paydesk_state (
    id       INT PRIMARY KEY CHECK (id = 1),
    payload  JSONB NOT NULL,
    saved_at TIMESTAMPTZ NOT NULL
)`)
	return err
}

// Save upserts via ON CONFLICT so concurrent saves settle on last-writer-wins.
func (r *Repo) Save(ctx context.Context, s *state.Snapshot) error {
	payload, err := state.Encode(s)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO paydesk_state (id, payload, saved_at) VALUES (1, $1, $2)
ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, saved_at = EXCLUDED.saved_at`,
		payload, s.SavedAt.UTC())
	return err
}

func (r *Repo) Load(ctx context.Context) (*state.Snapshot, error) {
	var payload []byte
	err := r.pool.QueryRow(ctx,
		`SELECT payload FROM paydesk_state WHERE id = 1`).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, state.ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return state.Decode(payload)
}

func (r *Repo) Clear(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM paydesk_state WHERE id = 1`)
	return err
}

var _ state.Repository = (*Repo)(nil)
