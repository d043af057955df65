package pipeline

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Query is one of the two pipeline queries over the registered system set,
// sorted by (phase rank, identity). The run query excludes Inactive systems;
// the build query includes them, since an inactive system may activate
// between frames and the plan must already carry the merges it requires.
//
// matchCount is a monotone counter bumped whenever the set of matched
// descriptors could have changed (a system registered/removed, or — for the
// run query only — a system's active bit flipped). It mirrors flecs's
// ecs_query_t.match_count and is what the plan builder uses to skip
// unnecessary rebuilds.
type Query struct {
	mu              sync.RWMutex
	descriptors     map[int64]*SystemDescriptor
	includeInactive bool
	matchCount      atomic.Int64
}

// NewQuery constructs a pipeline query. includeInactive=false yields the run
// query's filter; true yields the build query's filter.
func NewQuery(includeInactive bool) *Query {
	return &Query{
		descriptors:     make(map[int64]*SystemDescriptor),
		includeInactive: includeInactive,
	}
}

// Add registers a descriptor with this query and bumps match_count.
func (q *Query) Add(d *SystemDescriptor) {
	q.mu.Lock()
	q.descriptors[d.id] = d
	q.mu.Unlock()
	q.Bump()
}

// Remove unregisters a descriptor and bumps match_count.
func (q *Query) Remove(id int64) {
	q.mu.Lock()
	_, ok := q.descriptors[id]
	if ok {
		delete(q.descriptors, id)
	}
	q.mu.Unlock()
	if ok {
		q.Bump()
	}
}

// Get looks up a descriptor by id regardless of its current visibility or
// activation state, for callers that need to re-locate a specific system
// rather than iterate the filtered/sorted view.
func (q *Query) Get(id int64) (*SystemDescriptor, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	d, ok := q.descriptors[id]
	return d, ok
}

// Bump increments match_count, signaling that the matched set may have
// changed (e.g. a system's active bit flipped for the run query).
func (q *Query) Bump() {
	q.matchCount.Add(1)
}

// MatchCount returns the current monotone version counter.
func (q *Query) MatchCount() int64 {
	return q.matchCount.Load()
}

// Sorted returns the query's descriptors, filtered and ordered by
// (phase rank, identity). The run query additionally excludes Inactive
// systems; both exclude Disabled/DisabledIntern systems (invisible to the
// scheduler entirely).
func (q *Query) Sorted(reg *Registry) []*SystemDescriptor {
	q.mu.RLock()
	out := make([]*SystemDescriptor, 0, len(q.descriptors))
	for _, d := range q.descriptors {
		if !d.Visible() {
			continue
		}
		if !q.includeInactive && !d.IsActive() {
			continue
		}
		out = append(out, d)
	}
	q.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return Less(reg, out[i], out[j])
	})
	return out
}

// ActiveSnapshot returns a BitSet of the ids of descriptors this query
// currently includes under its own visibility/activity filter. Comparing two
// snapshots with Equal tells a caller whether the matched set actually
// changed, which is what the worker pool's Sync barrier reports to the
// driver.
func (q *Query) ActiveSnapshot() *BitSet {
	q.mu.RLock()
	defer q.mu.RUnlock()
	bs := NewBitSet(0)
	for id, d := range q.descriptors {
		if !d.Visible() {
			continue
		}
		if !q.includeInactive && !d.IsActive() {
			continue
		}
		bs.Set(int(id))
	}
	return bs
}

// Batch is a contiguous run of descriptors yielded by an Iterator, mirroring
// the store contract's per-batch entities/count.
type Batch struct {
	Descriptors []*SystemDescriptor
}

// Iterator walks a sorted descriptor slice one descriptor at a time,
// presented as a size-1 batch — the simplest faithful realization of
// "yields batches; each batch provides a contiguous run of descriptors"
// when the underlying store groups nothing further.
type Iterator struct {
	items []*SystemDescriptor
	pos   int
	batch Batch
}

// Iter returns an iterator over an already-sorted descriptor slice.
func Iter(items []*SystemDescriptor) *Iterator {
	return &Iterator{items: items}
}

// Next advances the iterator and reports whether a batch is available.
func (it *Iterator) Next() bool {
	if it.pos >= len(it.items) {
		return false
	}
	it.batch = Batch{Descriptors: it.items[it.pos : it.pos+1]}
	it.pos++
	return true
}

// Current returns the batch from the most recent successful Next call.
func (it *Iterator) Current() Batch {
	return it.batch
}
