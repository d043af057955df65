package pipeline_test

import (
	"context"
	"sync"
	"time"

	"github.com/oriumgames/bevi/internal/pipeline"
)

// fakeClock is a deterministic TimeSource: Now() advances by a fixed step
// every call, and Sleep is a no-op so clock-throttle tests run instantly.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
	step time.Duration
}

func newFakeClock(step time.Duration) *fakeClock {
	return &fakeClock{now: time.Unix(0, 0), step: step}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {}

// recordExecutor runs a system's body directly and records the call order.
type recordExecutor struct {
	mu    sync.Mutex
	order []string
}

func (e *recordExecutor) Run(ctx context.Context, sys *pipeline.SystemDescriptor, dt time.Duration) error {
	err := sys.Run(ctx, dt)
	e.mu.Lock()
	e.order = append(e.order, sys.Name())
	e.mu.Unlock()
	return err
}

func (e *recordExecutor) Order() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// sequentialPool runs each group's members one at a time on the calling
// goroutine, preserving input order — enough to make driver/plan tests
// deterministic without depending on BoundedWorkerPool's concurrency.
type sequentialPool struct {
	onSync func() bool
}

func (p *sequentialPool) Begin(ctx context.Context) {}
func (p *sequentialPool) End(ctx context.Context)   {}

func (p *sequentialPool) RunGroup(ctx context.Context, group []*pipeline.SystemDescriptor, exec pipeline.SystemExecutor, dt time.Duration, diag pipeline.Diagnostics) {
	for _, sys := range group {
		_ = exec.Run(ctx, sys, dt)
	}
}

func (p *sequentialPool) Sync(ctx context.Context) bool {
	if p.onSync == nil {
		return false
	}
	return p.onSync()
}

func noopFn(ctx context.Context, dt time.Duration) error { return nil }
