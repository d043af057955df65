package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/oriumgames/bevi/internal/command"
)

// BoundedWorkerPool is the reference WorkerPool: a bounded set of goroutines,
// started by Begin, reused across the groups of one frame and torn down by
// End, adapted from the teacher's
// scheduler.RunStage/runSystem. It fans the members of one execution group
// out concurrently (order within a group is unspecified per §5) and joins
// before returning, so the caller's Sync() barrier sees every member's
// effects.
type BoundedWorkerPool struct {
	buffer  *command.Buffer
	onSync  func() bool
	maxProc int

	mu      sync.Mutex
	work    chan job
	cancel  func()
	started bool
}

type job struct {
	ctx      context.Context
	sys      *SystemDescriptor
	exec     SystemExecutor
	delta    time.Duration
	diag     Diagnostics
	done     func()
}

// NewBoundedWorkerPool constructs a pool. buffer is flushed during Sync so
// deferred activation changes (from a system that toggled another's active
// bit) are applied at the barrier, before the next group runs. onSync, if
// non-nil, reports whether the run query's match set changed as a result of
// the flush; App binds it to a BitSet.Equal comparison of successive
// Manager.SnapshotActive snapshots.
func NewBoundedWorkerPool(buffer *command.Buffer, onSync func() bool) *BoundedWorkerPool {
	return &BoundedWorkerPool{
		buffer:  buffer,
		onSync:  onSync,
		maxProc: max(runtime.GOMAXPROCS(0), 1),
	}
}

// Begin opens a worker epoch, spinning up the bounded goroutine pool.
func (p *BoundedWorkerPool) Begin(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.work = make(chan job)
	p.started = true

	var wg sync.WaitGroup
	wg.Add(p.maxProc)
	for range p.maxProc {
		go func() {
			defer wg.Done()
			for j := range p.work {
				runSystemJob(j)
				j.done()
			}
		}()
	}
	p.cancel = func() {
		close(p.work)
		wg.Wait()
	}
}

// RunGroup submits every member of the group to the worker pool and blocks
// until all have completed.
func (p *BoundedWorkerPool) RunGroup(ctx context.Context, group []*SystemDescriptor, exec SystemExecutor, deltaTime time.Duration, diag Diagnostics) {
	if len(group) == 0 {
		return
	}
	var wg sync.WaitGroup
	wg.Add(len(group))
	for _, sys := range group {
		p.work <- job{ctx: ctx, sys: sys, exec: exec, delta: deltaTime, diag: diag, done: wg.Done}
	}
	wg.Wait()
}

// Sync flushes the deferred command buffer (applying staged activation
// changes) and reports whether doing so changed the run query's match set.
func (p *BoundedWorkerPool) Sync(ctx context.Context) bool {
	if p.buffer != nil {
		p.buffer.Flush()
	}
	if p.onSync == nil {
		return false
	}
	return p.onSync()
}

// End closes the worker epoch, tearing down the goroutine pool.
func (p *BoundedWorkerPool) End(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.started {
		return
	}
	p.cancel()
	p.started = false
	p.work = nil
	p.cancel = nil
}

func runSystemJob(j job) {
	if j.diag != nil {
		j.diag.SystemStart(j.sys.Name(), j.sys.Phase())
	}
	start := time.Now()
	var runErr error

	func() {
		defer func() {
			if r := recover(); r != nil {
				runErr = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
			}
		}()
		runErr = j.exec.Run(j.ctx, j.sys, j.delta)
	}()

	if j.diag != nil {
		j.diag.SystemEnd(j.sys.Name(), j.sys.Phase(), runErr, time.Since(start))
	}
}
