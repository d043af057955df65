package pipeline

import "errors"

// Invalid-usage errors. The scheduler cannot proceed safely past any of
// these; there is no retry and no partial-failure semantics at this level.
var (
	// ErrInvalidFromWorker is returned by RegisterSystem, UnregisterSystem,
	// and SetPipeline when called while a worker is still inside a system's
	// body (Manager.Attach's executor tracks this via inWorkerCount). Mutating
	// the registry or the active pipeline mid-dispatch would perturb a plan
	// the driver is actively walking.
	ErrInvalidFromWorker = errors.New("pipeline: invalid call from within a system")

	// ErrInvalidWhileIterating is returned when a mutating operation (such as
	// DeactivateSystems) is called while a frame is in progress.
	ErrInvalidWhileIterating = errors.New("pipeline: invalid call while a frame is iterating")

	// ErrInvalidParameter is returned by SetPipeline when given a handle this
	// Manager did not itself materialize, and by Progress when called before
	// Attach has wired a driver.
	ErrInvalidParameter = errors.New("pipeline: invalid parameter")

	// ErrMissingTimeSource is returned by FrameBegin when called with a zero
	// user delta and no time source configured.
	ErrMissingTimeSource = errors.New("pipeline: frame_begin requires a time source when user_delta is zero")
)

// InternalInconsistencyError marks an assertion-class bug: the plan builder's
// re-evaluation after a forced merge still requested another merge, or
// iterator-recover could not locate the resuming entity. These abort rather
// than return, because the scheduler's own invariants are violated and no
// caller-level recovery is meaningful.
type InternalInconsistencyError struct {
	Reason string
}

func (e *InternalInconsistencyError) Error() string {
	return "pipeline: internal inconsistency: " + e.Reason
}

func panicInconsistent(reason string) {
	panic(&InternalInconsistencyError{Reason: reason})
}
