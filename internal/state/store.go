// Package state persists a payroll session between runs: the imported
// employees, the resolved period, and any dispatch selection.
//
// Backends register themselves under a kind string from an init() function;
// the application selects one via Config.Kind. Import the state/all package
// to link every backend.
package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("state: no snapshot")

// Config selects and configures a backend.
//
// Edge cases:
//   - Kind must be non-empty and must match a registered backend kind.
//   - DSN is passed through to the backend factory; validation is
//     backend-specific.
type Config struct {
	Kind string
	DSN  string
}

// Repository is the backend-agnostic persistence surface.
//
// Each backend implements the upsert in its own idiomatic way (Postgres
// ON CONFLICT, SQLite OR REPLACE, SQL Server MERGE).
type Repository interface {
	// Init creates the backing table if needed. Idempotent.
	Init(ctx context.Context) error

	// Save stores the snapshot, replacing any previous one.
	Save(ctx context.Context, s *Snapshot) error

	// Load returns the stored snapshot, or ErrNoSnapshot.
	Load(ctx context.Context) (*Snapshot, error)

	// Clear removes the stored snapshot. Clearing an empty store is not
	// an error.
	Clear(ctx context.Context) error

	// Close releases backend resources. Treat as "call once".
	Close()
}

type factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]factory{}
)

// Register registers a backend under a kind (e.g. "postgres", "sqlite").
//
// When to use:
//   - Call Register from an init() function in a backend package.
//
// Panics:
//   - If kind is empty, f is nil, or kind is already registered. Failing
//     fast avoids ambiguous backend selection.
func Register(kind string, f factory) {
	mu.Lock()
	defer mu.Unlock()

	if kind == "" {
		panic("state: Register called with empty kind")
	}
	if f == nil {
		panic("state: Register called with nil factory")
	}
	if _, exists := factories[kind]; exists {
		panic(fmt.Sprintf("state: factory already registered for kind=%q", kind))
	}

	factories[kind] = f
}

// New constructs a Repository using the registered backend factory.
//
// Errors:
//   - Returns an error if cfg.Kind is empty or unsupported.
//   - Returns whatever error the registered factory returns.
func New(ctx context.Context, cfg Config) (Repository, error) {
	if cfg.Kind == "" {
		return nil, fmt.Errorf("state: missing Kind")
	}

	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("state: unsupported kind %q", cfg.Kind)
	}
	return f(ctx, cfg)
}

// Kinds returns the registered backend kinds, for error messages and CLI
// help.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	return out
}
