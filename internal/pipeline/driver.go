package pipeline

import (
	"context"
	"time"
)

// Driver runs one frame's worth of execution groups against the run query,
// rebuilding the plan when it has gone stale and recovering the iterator
// position when a barrier's flush changes the run query's match set mid-frame
// (mirroring the original pipeline module's iter_reset).
type Driver struct {
	reg        *Registry
	runQuery   *Query
	buildQuery *Query
	pool       WorkerPool
	exec       SystemExecutor
	diag       Diagnostics

	plan Plan
}

// NewDriver constructs a frame driver. diag may be nil, in which case
// NopDiagnostics is used.
func NewDriver(reg *Registry, runQuery, buildQuery *Query, pool WorkerPool, exec SystemExecutor, diag Diagnostics) *Driver {
	if diag == nil {
		diag = NopDiagnostics{}
	}
	return &Driver{reg: reg, runQuery: runQuery, buildQuery: buildQuery, pool: pool, exec: exec, diag: diag}
}

// Progress runs exactly one frame: it rebuilds the plan if stale, then walks
// its execution groups in order, running each through the worker pool and
// crossing a Sync barrier between groups. If a barrier's flush reports that
// the run query's match set changed, the driver rebuilds the plan against the
// refreshed run query and resumes from the identity of the last system it ran
// this frame rather than restarting it (§8: mid-frame activation changes
// never re-run or skip a system that already ran this frame). This mirrors
// the original pipeline module's iter_reset, which re-locates a resuming
// table iterator by identity rather than by a raw offset, because insertion
// ahead of the resume point shifts every offset behind it. A system that
// activates mid-frame with a sort key at or before the last one already run
// is treated as having already passed its turn this frame (it runs next
// frame); nothing already executed is ever re-run or misattributed.
func (d *Driver) Progress(ctx context.Context, deltaTime time.Duration) error {
	d.plan, _ = rebuildIfStale(d.plan, d.runQuery, d.buildQuery, d.reg)
	sorted := d.runQuery.Sorted(d.reg)

	executed := 0
	var lastID int64
	hasExecuted := false

	for {
		groupIdx, offset := locateGroup(d.plan, executed)
		if groupIdx == -1 {
			return nil
		}
		remaining := d.plan.Groups[groupIdx].Count - offset
		if executed+remaining > len(sorted) {
			remaining = len(sorted) - executed
		}
		if remaining > 0 {
			members := sorted[executed : executed+remaining]
			d.pool.RunGroup(ctx, members, d.exec, deltaTime, d.diag)
			executed += remaining
			lastID = members[len(members)-1].ID()
			hasExecuted = true
		}

		if groupIdx == len(d.plan.Groups)-1 {
			return nil
		}

		d.diag.MergeBegin(groupIdx)
		changed := d.pool.Sync(ctx)
		d.diag.MergeEnd(groupIdx)

		if changed {
			d.plan, _ = rebuildIfStale(Plan{}, d.runQuery, d.buildQuery, d.reg)
			sorted = d.runQuery.Sorted(d.reg)
			executed = locateResumePoint(sorted, d.reg, d.buildQuery, lastID, hasExecuted)
		}
	}
}

// locateGroup finds the group index and in-group offset corresponding to
// having already executed `executed` systems against plan's groups in order.
// It returns (-1, 0) once executed has consumed every group.
func locateGroup(plan Plan, executed int) (int, int) {
	remaining := executed
	for i, g := range plan.Groups {
		if remaining < g.Count {
			return i, remaining
		}
		remaining -= g.Count
	}
	return -1, 0
}

// locateResumePoint re-anchors the driver's resume position in a freshly
// re-sorted run query by the identity of the last system executed this
// frame, rather than by reusing a raw count against the new ordering
// (mirroring iter_reset's identity-based recovery). It returns the number of
// entries of sorted that sort at or before the last-executed system's
// position and so must be treated as already accounted for this frame.
//
// The last-executed descriptor is looked up in buildQuery rather than
// sorted/runQuery, because it may since have deactivated (and so dropped
// out of the run query) without ever being unregistered. If it has been
// unregistered outright, its former position is unrecoverable and
// locateResumePoint panics with an InternalInconsistencyError.
func locateResumePoint(sorted []*SystemDescriptor, reg *Registry, buildQuery *Query, lastID int64, hasExecuted bool) int {
	if !hasExecuted {
		return 0
	}
	last, ok := buildQuery.Get(lastID)
	if !ok {
		panicInconsistent("iterator-recover could not locate the last executed system")
	}
	for i, s := range sorted {
		if Less(reg, last, s) {
			return i
		}
	}
	return len(sorted)
}
