package pipeline

import "sync"

// Phase is an opaque identifier with a globally assigned integer rank.
// Phase equality is identifier equality; ranks are dense, total, and never
// reused once assigned.
type Phase int64

// Registry assigns dense, never-reused ranks to phases in declaration order.
type Registry struct {
	mu    sync.RWMutex
	names []string
	next  Phase
}

// NewRegistry returns an empty phase registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register declares a new phase and returns its identifier. The phase's rank
// is its position in declaration order across the lifetime of the registry.
func (r *Registry) Register(name string) Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.next
	r.next++
	r.names = append(r.names, name)
	return p
}

// Rank returns the phase's rank and whether it is known to this registry.
func (r *Registry) Rank(p Phase) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p < 0 || int(p) >= len(r.names) {
		return 0, false
	}
	return int(p), true
}

// Name returns the declared name for a phase, or "" if unknown.
func (r *Registry) Name(p Phase) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p < 0 || int(p) >= len(r.names) {
		return ""
	}
	return r.names[p]
}

// BuiltinPhases holds the ten built-in phases, registered once in the
// declaration order fixed by the data model: PreFrame through PostFrame.
type BuiltinPhases struct {
	PreFrame   Phase
	OnLoad     Phase
	PostLoad   Phase
	PreUpdate  Phase
	OnUpdate   Phase
	OnValidate Phase
	PostUpdate Phase
	PreStore   Phase
	OnStore    Phase
	PostFrame  Phase
}

// NewBuiltinRegistry returns a registry with the ten built-in phases already
// registered, and the phase values to use when registering systems.
func NewBuiltinRegistry() (*Registry, BuiltinPhases) {
	r := NewRegistry()
	b := BuiltinPhases{
		PreFrame:   r.Register("PreFrame"),
		OnLoad:     r.Register("OnLoad"),
		PostLoad:   r.Register("PostLoad"),
		PreUpdate:  r.Register("PreUpdate"),
		OnUpdate:   r.Register("OnUpdate"),
		OnValidate: r.Register("OnValidate"),
		PostUpdate: r.Register("PostUpdate"),
		PreStore:   r.Register("PreStore"),
		OnStore:    r.Register("OnStore"),
		PostFrame:  r.Register("PostFrame"),
	}
	return r, b
}
