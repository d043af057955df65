package bevi

import (
	"reflect"
	"time"

	"github.com/oriumgames/bevi/internal/pipeline"
)

// AccessMeta describes what a system reads or writes. It is the source from
// which the pipeline's per-column write-state tracking derives its merge
// decisions: component reads/writes are FromSelf columns, since they are
// evaluated per matched entity; resource and event reads/writes are
// FromEmpty columns, since both are singleton-like global state rather than
// anything keyed by entity, exactly as a system declaring a FromEmpty source
// in the pipeline's own column model (§4.2).
type AccessMeta struct {
	Reads       []reflect.Type
	Writes      []reflect.Type
	ResReads    []reflect.Type
	ResWrites   []reflect.Type
	EventReads  []reflect.Type
	EventWrites []reflect.Type
}

// NewAccess creates a new empty AccessMeta.
func NewAccess() AccessMeta {
	return AccessMeta{
		Reads:       make([]reflect.Type, 0),
		Writes:      make([]reflect.Type, 0),
		ResReads:    make([]reflect.Type, 0),
		ResWrites:   make([]reflect.Type, 0),
		EventReads:  make([]reflect.Type, 0),
		EventWrites: make([]reflect.Type, 0),
	}
}

// AccessRead adds a component read access.
func AccessRead[T any](acc *AccessMeta) {
	typ := baseType(reflect.TypeOf((*T)(nil)).Elem())
	acc.Reads = append(acc.Reads, typ)
}

// AccessWrite adds a component write access.
func AccessWrite[T any](acc *AccessMeta) {
	typ := baseType(reflect.TypeOf((*T)(nil)).Elem())
	acc.Writes = append(acc.Writes, typ)
}

// AccessResRead adds a resource read access.
func AccessResRead[T any](acc *AccessMeta) {
	typ := baseType(reflect.TypeOf((*T)(nil)).Elem())
	acc.ResReads = append(acc.ResReads, typ)
}

// AccessResWrite adds a resource write access.
func AccessResWrite[T any](acc *AccessMeta) {
	typ := baseType(reflect.TypeOf((*T)(nil)).Elem())
	acc.ResWrites = append(acc.ResWrites, typ)
}

// AccessEventRead adds an event read access.
func AccessEventRead[E any](acc *AccessMeta) {
	typ := reflect.TypeOf((*E)(nil)).Elem()
	acc.EventReads = append(acc.EventReads, typ)
}

// AccessEventWrite adds an event write access.
func AccessEventWrite[E any](acc *AccessMeta) {
	typ := reflect.TypeOf((*E)(nil)).Elem()
	acc.EventWrites = append(acc.EventWrites, typ)
}

// MergeAccess merges src into dst.
func MergeAccess(dst, src *AccessMeta) {
	dst.Reads = append(dst.Reads, src.Reads...)
	dst.Writes = append(dst.Writes, src.Writes...)
	dst.ResReads = append(dst.ResReads, src.ResReads...)
	dst.ResWrites = append(dst.ResWrites, src.ResWrites...)
	dst.EventReads = append(dst.EventReads, src.EventReads...)
	dst.EventWrites = append(dst.EventWrites, src.EventWrites...)
}

// toColumns lowers an AccessMeta to the pipeline's column representation.
func (a AccessMeta) toColumns() []pipeline.Column {
	cols := make([]pipeline.Column, 0, len(a.Reads)+len(a.Writes)+len(a.ResReads)+len(a.ResWrites)+len(a.EventReads)+len(a.EventWrites))
	for _, t := range a.Reads {
		cols = append(cols, pipeline.Column{Component: t, IO: pipeline.In, Source: pipeline.FromSelf})
	}
	for _, t := range a.Writes {
		cols = append(cols, pipeline.Column{Component: t, IO: pipeline.Out, Source: pipeline.FromSelf})
	}
	for _, t := range a.ResReads {
		cols = append(cols, pipeline.Column{Component: t, IO: pipeline.In, Source: pipeline.FromEmpty})
	}
	for _, t := range a.ResWrites {
		cols = append(cols, pipeline.Column{Component: t, IO: pipeline.Out, Source: pipeline.FromEmpty})
	}
	for _, t := range a.EventReads {
		cols = append(cols, pipeline.Column{Component: t, IO: pipeline.In, Source: pipeline.FromEmpty})
	}
	for _, t := range a.EventWrites {
		cols = append(cols, pipeline.Column{Component: t, IO: pipeline.Out, Source: pipeline.FromEmpty})
	}
	return cols
}

// SystemMeta describes system registration metadata: its declared access (for
// the plan builder's merge analysis) and an optional minimum re-run interval.
type SystemMeta struct {
	Access AccessMeta
	// Every, if nonzero, throttles the system to run at most once per
	// interval: Progress calls between intervals skip invoking it, though it
	// still occupies its slot in the execution group.
	Every time.Duration
}

// baseType returns the non-pointer base reflect.Type and is the canonical helper for this package.
func baseType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
