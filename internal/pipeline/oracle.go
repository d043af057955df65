package pipeline

// CompareIdentity is the identity tie-break: sign(a.id - b.id). System ids
// are unique, so this never returns 0 for distinct systems.
func CompareIdentity(a, b *SystemDescriptor) int {
	switch {
	case a.id < b.id:
		return -1
	case a.id > b.id:
		return 1
	default:
		return 0
	}
}

// PhaseRank resolves a system's phase to its rank in the given registry. An
// unregistered phase ranks last (after every known phase), so it never
// silently sorts ahead of declared phases.
func PhaseRank(reg *Registry, d *SystemDescriptor) int {
	rank, ok := reg.Rank(d.phase)
	if !ok {
		return int(^uint(0) >> 1) // max int
	}
	return rank
}

// Less orders two systems primarily by phase rank, secondarily by identity —
// the total order both pipeline queries are sorted by.
func Less(reg *Registry, a, b *SystemDescriptor) bool {
	ra, rb := PhaseRank(reg, a), PhaseRank(reg, b)
	if ra != rb {
		return ra < rb
	}
	return CompareIdentity(a, b) < 0
}
