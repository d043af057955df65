package pipeline

// ActivationSweep scans the build query and flips each system's active bit
// to match whether its query currently matches at least one storage table
// (§4.8). It brackets the whole scan in a deferred-command scope, but the
// active bits themselves are flipped directly as the scan reaches each
// system, not buffered through the store; the scan walks a sorted copy of
// the build query, so the flips do not perturb it.
//
// inFrame reports whether a frame is currently in progress; calling the
// sweep while inFrame is true is invalid (ErrInvalidWhileIterating), mirroring
// ecs_deactivate_systems's restriction in the original pipeline module.
func ActivationSweep(store Store, runQuery, buildQuery *Query, reg *Registry, inFrame func() bool) error {
	if inFrame != nil && inFrame() {
		return ErrInvalidWhileIterating
	}

	store.DeferBegin()
	defer store.DeferEnd()

	changed := false
	for _, sys := range buildQuery.Sorted(reg) {
		matches := sys.Matches()
		if matches != sys.IsActive() {
			sys.SetActive(matches)
			changed = true
		}
	}

	if changed {
		runQuery.Bump()
		buildQuery.Bump()
	}
	return nil
}
