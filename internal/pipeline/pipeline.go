package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oriumgames/bevi/internal/command"
)

// PipelineHandle identifies a materialized pipeline, mirroring the entity id
// flecs stamps the Pipeline tag onto. A Manager materializes exactly one
// pipeline at construction (NewManager stands in for the on-add trigger of
// §6), so DefaultPipeline is the only handle any Manager ever accepts.
type PipelineHandle int64

// DefaultPipeline is the handle NewManager materializes and the only one
// SetPipeline ever accepts for a given Manager.
const DefaultPipeline PipelineHandle = 1

// Manager is a per-instance pipeline scheduler: a registry, the run and
// build queries, a frame clock, a driver, and the next system id counter. It
// is the public entry point: Progress, Quit/ShouldQuit, DeactivateSystems and
// SetPipeline/GetPipeline. There are no separate pipeline_update,
// pipeline_begin/end or frame_begin/end methods; Progress runs the frame
// clock, the plan rebuild and the driver internally. It is kept as a plain
// struct rather than a package-level global so
// an embedding application can run more than one instance side by side. A
// Manager always materializes exactly one pipeline (DefaultPipeline); there
// is no multi-pipeline registry to switch between, so SetPipeline/GetPipeline
// degrade to validating/reporting that single handle rather than selecting
// among several.
type Manager struct {
	Registry  *Registry
	Builtin   BuiltinPhases
	RunQuery  *Query
	BuildQuery *Query

	store Store
	clock *FrameClock
	pool  WorkerPool
	exec  SystemExecutor
	diag  Diagnostics
	buf   *command.Buffer

	driver  *Driver
	handle  PipelineHandle

	mu            sync.Mutex
	nextID        atomic.Int64
	inFrame       atomic.Bool
	inWorkerCount atomic.Int32
	quitFlag      atomic.Bool
}

// trackingExecutor wraps a SystemExecutor so the Manager knows, from any
// goroutine, whether a worker is currently inside a system's body — guarding
// RegisterSystem/UnregisterSystem/SetPipeline against being invoked from
// there (ErrInvalidFromWorker). A plain count rather than a bool, since a
// group's members may run concurrently across several workers.
type trackingExecutor struct {
	inner SystemExecutor
	count *atomic.Int32
}

func (t trackingExecutor) Run(ctx context.Context, sys *SystemDescriptor, deltaTime time.Duration) error {
	t.count.Add(1)
	defer t.count.Add(-1)
	return t.inner.Run(ctx, sys, deltaTime)
}

// Config bundles a Manager's external collaborators. TimeSource and
// Diagnostics may be nil (an always-error-on-zero-delta clock and
// NopDiagnostics, respectively). The worker pool and system executor are not part of
// Config: they are wired afterward via Attach, since a pool's Sync callback
// typically needs to close over the Manager's own RunQuery.
type Config struct {
	TimeSource TimeSource
	Diag       Diagnostics
}

// NewManager constructs a pipeline with the ten built-in phases already
// registered, the run/build queries, and a deferred-command buffer for the
// Activation Sweep's bracket. The returned Manager cannot run a frame until
// Attach supplies a worker pool and system executor.
func NewManager(cfg Config) *Manager {
	reg, builtin := NewBuiltinRegistry()
	runQuery := NewQuery(false)
	buildQuery := NewQuery(true)

	diag := cfg.Diag
	if diag == nil {
		diag = NopDiagnostics{}
	}

	buf := command.NewBuffer()

	return &Manager{
		Registry:   reg,
		Builtin:    builtin,
		RunQuery:   runQuery,
		BuildQuery: buildQuery,
		store:      buf,
		clock:      NewFrameClock(cfg.TimeSource),
		diag:       diag,
		buf:        buf,
		handle:     DefaultPipeline,
	}
}

// SetPipeline assigns the pipeline Progress drives. Since a Manager
// materializes exactly one pipeline at construction, the only handle this
// ever accepts is its own DefaultPipeline; anything else has no registered
// pipeline on this Manager. Invalid while a worker is mid-dispatch.
func (m *Manager) SetPipeline(handle PipelineHandle) error {
	if m.inWorkerCount.Load() > 0 {
		return ErrInvalidFromWorker
	}
	if handle != m.handle {
		return ErrInvalidParameter
	}
	return nil
}

// GetPipeline returns the handle of the pipeline this Manager drives.
func (m *Manager) GetPipeline() PipelineHandle {
	return m.handle
}

// Buffer returns the deferred-command buffer backing this Manager's
// Activation Sweep bracket, so a caller building a WorkerPool can share it
// as the barrier's flush target.
func (m *Manager) Buffer() *command.Buffer {
	return m.buf
}

// SnapshotActive returns a BitSet of the run query's currently matched
// system ids. A caller's WorkerPool.Sync implementation typically keeps the
// previous snapshot and compares it to this one (via BitSet.Equal) to
// decide what it reports back to the driver.
func (m *Manager) SnapshotActive() *BitSet {
	return m.RunQuery.ActiveSnapshot()
}

// Attach wires the worker pool and system executor a Progress call drives.
// It must be called before the first Progress call.
func (m *Manager) Attach(pool WorkerPool, exec SystemExecutor) {
	m.pool = pool
	m.exec = trackingExecutor{inner: exec, count: &m.inWorkerCount}
	m.driver = NewDriver(m.Registry, m.RunQuery, m.BuildQuery, pool, m.exec, m.diag)
}

// RegisterSystem assigns the next system id, constructs its descriptor, and
// adds it to both pipeline queries. The returned descriptor's active bit
// starts true; callers whose system has a real storage query should run an
// ActivationSweep afterward to settle it against the store. Invalid while a
// worker is mid-dispatch (ErrInvalidFromWorker): a system registering another
// system from within its own body would perturb a plan the driver is
// actively walking.
func (m *Manager) RegisterSystem(name string, phase Phase, columns []Column, match MatchFunc, fn func(ctx context.Context, deltaTime time.Duration) error) (*SystemDescriptor, error) {
	if m.inWorkerCount.Load() > 0 {
		return nil, ErrInvalidFromWorker
	}
	id := m.nextID.Add(1)
	d := NewSystemDescriptor(id, name, phase, columns, match, fn)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunQuery.Add(d)
	m.BuildQuery.Add(d)
	return d, nil
}

// UnregisterSystem removes a system from both pipeline queries. Invalid
// while a worker is mid-dispatch (ErrInvalidFromWorker).
func (m *Manager) UnregisterSystem(d *SystemDescriptor) error {
	if m.inWorkerCount.Load() > 0 {
		return ErrInvalidFromWorker
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RunQuery.Remove(d.ID())
	m.BuildQuery.Remove(d.ID())
	return nil
}

// DeactivateSystems runs the Activation Sweep (§4.8). It is invalid while a
// frame is in progress.
func (m *Manager) DeactivateSystems() error {
	return ActivationSweep(m.store, m.RunQuery, m.BuildQuery, m.Registry, m.inFrame.Load)
}

// Quit requests that the current (or next) frame be the last. Neither
// FrameBegin nor Progress reads the flag; Progress's caller observes it via
// ShouldQuit and stops calling Progress. Mirrors ecs_quit's world-level flag,
// scoped here to one Manager instance.
func (m *Manager) Quit() {
	m.quitFlag.Store(true)
}

// ShouldQuit reports whether Quit has been called.
func (m *Manager) ShouldQuit() bool {
	return m.quitFlag.Load()
}

// Progress runs exactly one frame: FrameBegin, the driver's group walk, then
// FrameEnd. userDelta is forwarded to the frame clock; zero means "measure
// it". Returns ErrMissingTimeSource if userDelta is zero and no time source
// was configured.
func (m *Manager) Progress(ctx context.Context, userDelta time.Duration) error {
	if m.driver == nil {
		return ErrInvalidParameter
	}

	deltaTime, err := m.clock.FrameBegin(userDelta)
	if err != nil {
		return err
	}

	m.inFrame.Store(true)
	m.pool.Begin(ctx)
	err = m.driver.Progress(ctx, deltaTime)
	m.pool.End(ctx)
	m.inFrame.Store(false)

	m.clock.FrameEnd(deltaTime)
	return err
}

// SetTargetFPS configures the frame clock's throttle target; zero disables
// throttling.
func (m *Manager) SetTargetFPS(fps float64) {
	m.clock.SetTargetFPS(fps)
}
