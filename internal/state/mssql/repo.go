// Package mssql implements the state repository on Microsoft SQL Server.
//
// Note on driver registration:
//   - This package intentionally does NOT blank-import a SQL Server driver.
//     The application must register the "sqlserver" driver elsewhere; the
//     state/all package does so.
package mssql

import (
	"context"
	"database/sql"
	"errors"

	"paydesk/internal/state"
)

// Repo implements state.Repository for SQL Server.
type Repo struct {
	db *sql.DB
}

func init() {
	state.Register("sqlserver", New)
}

func New(ctx context.Context, cfg state.Config) (state.Repository, error) {
	db, err := sql.Open("sqlserver", cfg.DSN)
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
IF OBJECT_ID(N'paydesk_state', N'U') IS NULL
CREATE TABLE paydesk_state (
    id       INT NOT NULL PRIMARY KEY CHECK (id = 1),
    payload  NVARCHAR(MAX) NOT NULL,
    saved_at DATETIMEOFFSET NOT NULL
)`)
	return err
}

// Save upserts with an UPDATE-then-INSERT pair; with id fixed to 1 this is
// race-free enough for a single-writer tool and avoids MERGE's quirks.
func (r *Repo) Save(ctx context.Context, s *state.Snapshot) error {
	payload, err := state.Encode(s)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE paydesk_state SET payload = @p1, saved_at = @p2 WHERE id = 1`,
		string(payload), s.SavedAt.UTC())
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO paydesk_state (id, payload, saved_at) VALUES (1, @p1, @p2)`,
		string(payload), s.SavedAt.UTC())
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
