package bevi

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mlange-42/ark/ecs"
	"github.com/oriumgames/bevi/internal/event"
	"github.com/oriumgames/bevi/internal/pipeline"
)

// wallClock is the real-time TimeSource backing an App's frame clock.
type wallClock struct{}

func (wallClock) Now() time.Time        { return time.Now() }
func (wallClock) Sleep(d time.Duration) { time.Sleep(d) }

// systemExecutor invokes a descriptor's body; every system an App registers
// already has its world/context plumbing closed over at registration time,
// so the executor itself stays a thin, stateless adapter to
// pipeline.SystemExecutor.
type systemExecutor struct{}

func (systemExecutor) Run(ctx context.Context, sys *pipeline.SystemDescriptor, deltaTime time.Duration) error {
	return sys.Run(ctx, deltaTime)
}

type App struct {
	world  *ecs.World
	mgr    *pipeline.Manager
	events *event.Bus
	diag   *internalDiagnostics

	activeMu   sync.Mutex
	lastActive *pipeline.BitSet
}

func NewApp() *App {
	w := ecs.NewWorld()
	bus := event.NewBus()
	diag := &internalDiagnostics{d: NopDiagnostics{}}

	mgr := pipeline.NewManager(pipeline.Config{TimeSource: wallClock{}, Diag: diag})

	a := &App{
		world:  &w,
		mgr:    mgr,
		events: bus,
		diag:   diag,
	}
	a.lastActive = mgr.SnapshotActive()

	pool := pipeline.NewBoundedWorkerPool(mgr.Buffer(), a.onSync)
	mgr.Attach(pool, systemExecutor{})
	return a
}

// onSync backs the worker pool's inter-group barrier: it reports whether the
// run query's matched system set actually changed since the last barrier,
// not merely that the deferred buffer had something to flush.
func (a *App) onSync() bool {
	a.activeMu.Lock()
	defer a.activeMu.Unlock()
	cur := a.mgr.SnapshotActive()
	changed := !cur.Equal(a.lastActive)
	a.lastActive = cur
	return changed
}

func (a *App) AddPlugin(p Plugin) *App {
	p.Build(a)
	return a
}

func (a *App) AddPlugins(l []Plugin) *App {
	for _, p := range l {
		p.Build(a)
	}
	return a
}

// AddSystem registers a system in the given phase. meta.Access feeds the
// plan builder's merge analysis; meta.Every, if set, throttles the system to
// run at most once per interval.
func (a *App) AddSystem(phase Phase, name string, meta SystemMeta, fn func(context.Context, *ecs.World)) *App {
	body := a.throttle(meta.Every, fn)
	columns := meta.Access.toColumns()
	_, err := a.mgr.RegisterSystem(name, phase, columns, nil, func(ctx context.Context, _ time.Duration) error {
		body(ctx)
		return nil
	})
	if err != nil {
		// Invalid-usage errors are fatal (§7): AddSystem is a setup-time call,
		// never one a system body should make on itself mid-dispatch.
		log.Panicf("bevi: AddSystem %q: %v", name, err)
	}
	return a
}

// throttle wraps fn so it runs at most once per interval; a zero interval
// disables throttling. The wrapped system still occupies its slot in the
// execution group every frame — it simply no-ops between intervals.
func (a *App) throttle(interval time.Duration, fn func(context.Context, *ecs.World)) func(context.Context) {
	if interval <= 0 {
		return func(ctx context.Context) { fn(ctx, a.world) }
	}
	var mu sync.Mutex
	var lastRun time.Time
	return func(ctx context.Context) {
		mu.Lock()
		now := time.Now()
		if !lastRun.IsZero() && now.Sub(lastRun) < interval {
			mu.Unlock()
			return
		}
		lastRun = now
		mu.Unlock()
		fn(ctx, a.world)
	}
}

func (a *App) AddSystems(reg func(*App)) *App {
	reg(a)
	return a
}

// SetTargetFPS configures the frame clock's throttle target; zero (the
// default) runs as fast as possible.
func (a *App) SetTargetFPS(fps float64) *App {
	a.mgr.SetTargetFPS(fps)
	return a
}

// DeactivateSystems runs the Activation Sweep against every registered
// system's MatchFunc. Invalid while a frame is in progress.
func (a *App) DeactivateSystems() error {
	return a.mgr.DeactivateSystems()
}

// Quit requests that Run stop after the current frame.
func (a *App) Quit() {
	a.mgr.Quit()
}

// Pipeline returns the handle of the pipeline Run drives. An App always
// drives its own single materialized pipeline.
func (a *App) Pipeline() pipeline.PipelineHandle {
	return a.mgr.GetPipeline()
}

// SetPipeline reassigns the pipeline Run drives. An App only ever
// materializes one pipeline, so the only handle this accepts is its own
// (ErrInvalidParameter otherwise); it exists for parity with the world-level
// set_pipeline/get_pipeline surface of §6.
func (a *App) SetPipeline(handle pipeline.PipelineHandle) error {
	return a.mgr.SetPipeline(handle)
}

func (a *App) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)
	go func() {
		<-sig
		a.mgr.Quit()
		cancel()
	}()

	for {
		if ctx.Err() != nil || a.mgr.ShouldQuit() {
			return
		}
		if err := a.mgr.Progress(ctx, 0); err != nil {
			log.Printf("bevi: frame aborted: %v", err)
			return
		}
		a.events.CompleteNoReader()
		a.events.Advance()
	}
}

func (a *App) World() *ecs.World {
	return a.world
}

func (a *App) Events() *event.Bus {
	return a.events
}

type Plugin interface {
	Build(app *App)
}
