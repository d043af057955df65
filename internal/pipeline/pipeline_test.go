package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/oriumgames/bevi/internal/pipeline"
)

func TestManagerProgressRunsRegisteredSystemsInOrder(t *testing.T) {
	mgr := pipeline.NewManager(pipeline.Config{})
	exec := &recordExecutor{}
	pool := &sequentialPool{}
	mgr.Attach(pool, exec)

	if _, err := mgr.RegisterSystem("first", mgr.Builtin.OnLoad, nil, nil, noopFn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := mgr.RegisterSystem("second", mgr.Builtin.OnUpdate, nil, nil, noopFn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mgr.Progress(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := exec.Order(); len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("expected [first second], got %v", got)
	}
}

func TestManagerProgressWithoutAttachReturnsInvalidParameter(t *testing.T) {
	mgr := pipeline.NewManager(pipeline.Config{})
	if err := mgr.Progress(context.Background(), time.Millisecond); err != pipeline.ErrInvalidParameter {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestManagerQuitAndShouldQuit(t *testing.T) {
	mgr := pipeline.NewManager(pipeline.Config{})
	if mgr.ShouldQuit() {
		t.Fatalf("expected a fresh manager not to be quitting")
	}
	mgr.Quit()
	if !mgr.ShouldQuit() {
		t.Fatalf("expected ShouldQuit to report true after Quit")
	}
}

func TestManagerDeactivateSystemsInvalidWhileFrameInProgress(t *testing.T) {
	mgr := pipeline.NewManager(pipeline.Config{})
	blocking := make(chan struct{})
	release := make(chan struct{})
	pool := &sequentialPool{}
	exec := &blockingExecutor{entered: blocking, release: release}
	mgr.Attach(pool, exec)
	if _, err := mgr.RegisterSystem("blocker", mgr.Builtin.OnUpdate, nil, nil, noopFn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- mgr.Progress(context.Background(), time.Millisecond) }()

	<-blocking
	if err := mgr.DeactivateSystems(); err != pipeline.ErrInvalidWhileIterating {
		t.Fatalf("expected ErrInvalidWhileIterating mid-frame, got %v", err)
	}
	close(release)
	if err := <-errCh; err != nil {
		t.Fatalf("unexpected Progress error: %v", err)
	}

	if err := mgr.DeactivateSystems(); err != nil {
		t.Fatalf("expected DeactivateSystems to succeed once the frame ended, got %v", err)
	}
}

func TestManagerSnapshotActiveReflectsRegistrationAndActivation(t *testing.T) {
	mgr := pipeline.NewManager(pipeline.Config{})
	snap0 := mgr.SnapshotActive()

	d, err := mgr.RegisterSystem("sys", mgr.Builtin.OnUpdate, nil, nil, noopFn)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap1 := mgr.SnapshotActive()
	if snap0.Equal(snap1) {
		t.Fatalf("expected the snapshot to change after registering a system")
	}

	d.SetActive(false)
	snap2 := mgr.SnapshotActive()
	if snap1.Equal(snap2) {
		t.Fatalf("expected the snapshot to change once the system left the run query's filter")
	}
}

func TestManagerSetPipelineAcceptsOnlyItsOwnHandle(t *testing.T) {
	mgr := pipeline.NewManager(pipeline.Config{})
	if got := mgr.GetPipeline(); got != pipeline.DefaultPipeline {
		t.Fatalf("expected GetPipeline to report DefaultPipeline, got %v", got)
	}
	if err := mgr.SetPipeline(pipeline.DefaultPipeline); err != nil {
		t.Fatalf("expected SetPipeline to accept the manager's own handle, got %v", err)
	}
	if err := mgr.SetPipeline(pipeline.PipelineHandle(99)); err != pipeline.ErrInvalidParameter {
		t.Fatalf("expected ErrInvalidParameter for an unknown handle, got %v", err)
	}
}

// selfRegisteringExecutor calls back into the Manager from within a running
// system's body, exercising the ErrInvalidFromWorker guard.
type selfRegisteringExecutor struct {
	mgr     *pipeline.Manager
	gotErr  error
	invoked bool
}

func (e *selfRegisteringExecutor) Run(ctx context.Context, sys *pipeline.SystemDescriptor, dt time.Duration) error {
	if !e.invoked {
		e.invoked = true
		_, e.gotErr = e.mgr.RegisterSystem("from-worker", e.mgr.Builtin.OnUpdate, nil, nil, noopFn)
	}
	return sys.Run(ctx, dt)
}

func TestManagerRegisterSystemFromWithinRunningSystemIsInvalid(t *testing.T) {
	mgr := pipeline.NewManager(pipeline.Config{})
	exec := &selfRegisteringExecutor{mgr: mgr}
	pool := &sequentialPool{}
	mgr.Attach(pool, exec)
	if _, err := mgr.RegisterSystem("outer", mgr.Builtin.OnUpdate, nil, nil, noopFn); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := mgr.Progress(context.Background(), time.Millisecond); err != nil {
		t.Fatalf("unexpected Progress error: %v", err)
	}
	if !exec.invoked {
		t.Fatalf("expected the system body to have run")
	}
	if exec.gotErr != pipeline.ErrInvalidFromWorker {
		t.Fatalf("expected ErrInvalidFromWorker from within a running system, got %v", exec.gotErr)
	}
	if _, err := mgr.RegisterSystem("after", mgr.Builtin.OnUpdate, nil, nil, noopFn); err != nil {
		t.Fatalf("expected the guard to already be released after Progress returns, got %v", err)
	}
}

// blockingExecutor lets a test synchronize with a system body mid-execution.
type blockingExecutor struct {
	entered chan struct{}
	release chan struct{}
	once    bool
}

func (e *blockingExecutor) Run(ctx context.Context, sys *pipeline.SystemDescriptor, dt time.Duration) error {
	if !e.once {
		e.once = true
		close(e.entered)
		<-e.release
	}
	return sys.Run(ctx, dt)
}
