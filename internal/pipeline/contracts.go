// Package pipeline implements the system pipeline scheduler: it orders
// registered systems into execution groups separated by synchronization
// merges, and drives one frame of execution per tick.
//
// The store, the query engine beyond the pipeline's own two queries, the
// deferred-command log, the worker pool, and the time source are external
// collaborators. This file declares the contracts this package consumes from
// them; it owns no concrete store or transport.
package pipeline

import (
	"context"
	"time"
)

// Store is the bracket a caller uses to buffer mutations so they don't
// perturb an iteration already in progress. The Activation Sweep opens and
// closes this bracket but flips active bits directly rather than through it. Nested Begin/End pairs are legal; only the outermost
// End flushes.
type Store interface {
	DeferBegin()
	DeferEnd()
}

// TimeSource supplies wall-clock readings to the Frame Clock.
type TimeSource interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemExecutor invokes one system's body. The pipeline core never calls a
// system directly; it is opaque to the driver.
type SystemExecutor interface {
	Run(ctx context.Context, sys *SystemDescriptor, deltaTime time.Duration) error
}

// WorkerPool is the external epoch/barrier abstraction. Begin/End bracket one
// frame; RunGroup fans the members of one execution group out to workers
// (order within the group is unspecified) and joins before returning; Sync
// is the inter-group barrier and reports whether the run query's match set
// changed during the barrier (e.g. because a deferred activation flushed).
type WorkerPool interface {
	Begin(ctx context.Context)
	RunGroup(ctx context.Context, group []*SystemDescriptor, exec SystemExecutor, deltaTime time.Duration, diag Diagnostics)
	Sync(ctx context.Context) bool
	End(ctx context.Context)
}

// Diagnostics observes system execution and merge crossings.
type Diagnostics interface {
	SystemStart(name string, phase Phase)
	SystemEnd(name string, phase Phase, err error, duration time.Duration)
	MergeBegin(groupIndex int)
	MergeEnd(groupIndex int)
}

// NopDiagnostics implements Diagnostics with no-ops.
type NopDiagnostics struct{}

func (NopDiagnostics) SystemStart(string, Phase)                    {}
func (NopDiagnostics) SystemEnd(string, Phase, error, time.Duration) {}
func (NopDiagnostics) MergeBegin(int)                                {}
func (NopDiagnostics) MergeEnd(int)                                  {}
