// Package metrics defines the minimal backend interface the dispatcher
// reports delivery outcomes through.
//
// Core code depends only on Backend; concrete backends live in
// subpackages so their SDKs never leak into the delivery path.
package metrics

import (
	"context"
	"time"
)

// Backend accepts counters and duration samples.
//
// Implementations are expected to buffer in memory and submit on Flush;
// Close must flush one final time.
type Backend interface {
	IncCounter(name string, delta float64)
	ObserveDuration(name string, d time.Duration)
	Flush(ctx context.Context) error
	Close(ctx context.Context) error
}

// Nop is the default backend: it discards everything.
type Nop struct{}

func (Nop) IncCounter(string, float64)            {}
func (Nop) ObserveDuration(string, time.Duration) {}
func (Nop) Flush(context.Context) error           { return nil }
func (Nop) Close(context.Context) error           { return nil }
