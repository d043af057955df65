// Package command implements the deferred-mutation bracket consumed by the
// scheduler core as the Store contract's DeferBegin/DeferEnd (spec.md §6).
//
// The design mirrors internal/event's double-buffered store
// (internal/event/store.go: (*store[T]).advance swaps write/read buffers
// under a single mutex): here, mutations raised while a defer scope is open
// accumulate in a write buffer instead of one that is swapped, and flush in
// FIFO order only when the outermost scope closes or Flush is called
// directly. Nested Begin/End pairs are legal; only the outermost End (depth
// reaching zero) applies the buffered operations.
package command

import "sync"

// Op is a single buffered mutation.
type Op func()

// Buffer accumulates operations raised during a deferred scope and applies
// them once the scope (or an explicit Flush) closes.
type Buffer struct {
	mu    sync.Mutex
	depth int
	ops   []Op
}

// NewBuffer constructs an empty command buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// DeferBegin opens (or nests into) a deferred scope.
func (b *Buffer) DeferBegin() {
	b.mu.Lock()
	b.depth++
	b.mu.Unlock()
}

// DeferEnd closes one level of scope. When the outermost scope closes, the
// buffered operations run in FIFO order.
func (b *Buffer) DeferEnd() {
	b.mu.Lock()
	if b.depth > 0 {
		b.depth--
	}
	var toRun []Op
	if b.depth == 0 && len(b.ops) > 0 {
		toRun = b.ops
		b.ops = nil
	}
	b.mu.Unlock()

	for _, op := range toRun {
		op()
	}
}

// Enqueue buffers op if a scope is open, otherwise runs it immediately.
func (b *Buffer) Enqueue(op Op) {
	b.mu.Lock()
	if b.depth > 0 {
		b.ops = append(b.ops, op)
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()
	op()
}

// Flush runs and clears any buffered operations regardless of depth. Used by
// the worker pool's inter-group barrier to apply activation changes staged
// during the group that just finished.
func (b *Buffer) Flush() {
	b.mu.Lock()
	toRun := b.ops
	b.ops = nil
	b.mu.Unlock()

	for _, op := range toRun {
		op()
	}
}

// Pending reports the number of buffered operations awaiting flush.
func (b *Buffer) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.ops)
}
