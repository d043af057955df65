package pipeline

// writeState is the per-component scratch value tracked while building a
// plan. It is cleared at every inserted merge.
type writeState int

const (
	notWritten writeState = iota
	writeToMain
	writeToStage
)

// ExecutionGroup is a maximal contiguous run of active systems between two
// merges. count excludes inactive systems: they may activate later, so they
// still shape planning (they can force a merge), but they don't advance the
// run query's progress through a group.
type ExecutionGroup struct {
	Count int
}

// Plan is the ordered output of a build: a vector of execution groups plus
// the run query's match_count at the moment the plan was built, used to
// detect staleness (spec invariant 4 in §8).
type Plan struct {
	Groups            []ExecutionGroup
	MatchCountAtBuild int64
	Built             bool
}

// evalColumn applies the per-column effect table from §4.5 to the running
// write-state map, reporting whether this column alone requests a merge.
// Or columns are inert for planning (never read, never requested); Not
// columns at any source behave like FromEmpty writers.
func evalColumn(col Column, isActive bool, state map[ComponentID]writeState) bool {
	if col.Op == Or {
		return false
	}

	needsMerge := false
	switch {
	case col.Source == FromSelf && col.Op != Not:
		switch col.IO {
		case In, InOut:
			if state[col.Component] == writeToStage {
				needsMerge = true
			}
		}
		switch col.IO {
		case Out, InOut:
			if isActive {
				state[col.Component] = writeToMain
			}
		}
	case col.Source == FromEmpty || col.Op == Not:
		switch col.IO {
		case Out, InOut:
			if isActive {
				state[col.Component] = writeToStage
			}
		}
	}
	return needsMerge
}

// evalSystem runs every column of a system against the write-state map and
// reports whether any column requested a merge.
func evalSystem(sys *SystemDescriptor, isActive bool, state map[ComponentID]writeState) bool {
	needsMerge := false
	for _, col := range sys.Columns() {
		if evalColumn(col, isActive, state) {
			needsMerge = true
		}
	}
	return needsMerge
}

// buildPlan is the central algorithm (§4.5): a single deterministic forward
// sweep over the build query (already sorted by phase rank then identity)
// that inserts the minimum number of merges a greedy single-pass algorithm
// can find (no claim of global optimality — see §4.5 Rationale).
func buildPlan(systems []*SystemDescriptor) Plan {
	state := make(map[ComponentID]writeState)
	var groups []ExecutionGroup
	currentIdx := -1

	for _, sys := range systems {
		isActive := sys.IsActive()
		needsMerge := evalSystem(sys, isActive, state)

		if needsMerge {
			// Close the current group as-is (including inactive-system
			// contributions already counted into it), then reset state for
			// the new group.
			for k := range state {
				delete(state, k)
			}
			currentIdx = -1

			// Re-evaluate this system's own columns post-reset. Only an
			// active system can set any write state, so only evaluate with
			// isActive=true when the system is in fact active; either way,
			// the re-evaluation must not itself request another merge.
			recheck := false
			if isActive {
				recheck = evalSystem(sys, true, state)
			}
			if recheck {
				panicInconsistent("plan re-evaluation after a forced merge still requested another merge")
			}
		}

		if currentIdx == -1 {
			groups = append(groups, ExecutionGroup{})
			currentIdx = len(groups) - 1
		}
		if isActive {
			groups[currentIdx].Count++
		}
	}

	return Plan{Groups: groups, Built: true}
}

// rebuildIfStale rebuilds the plan only if the run query's match_count has
// moved since the last build (§4.5 Invalidation, §8 property 4). It returns
// the (possibly unchanged) plan and whether a rebuild actually happened.
func rebuildIfStale(prev Plan, runQuery, buildQuery *Query, reg *Registry) (Plan, bool) {
	mc := runQuery.MatchCount()
	if prev.Built && prev.MatchCountAtBuild == mc {
		return prev, false
	}
	plan := buildPlan(buildQuery.Sorted(reg))
	plan.MatchCountAtBuild = mc
	return plan, true
}
