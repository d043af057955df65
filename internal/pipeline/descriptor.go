package pipeline

import (
	"context"
	"reflect"
	"sync/atomic"
	"time"
)

// IOKind is a column's read/write declaration.
type IOKind int

const (
	In IOKind = iota
	Out
	InOut
)

// SourceKind is a column's source declaration. Only FromSelf and FromEmpty
// affect planning; any other value is transparent to the plan builder.
type SourceKind int

const (
	FromSelf SourceKind = iota
	FromEmpty
	FromOther // transparent: e.g. a shared/parent/global source
)

// Operator is a column's match operator. Planning ignores Or entirely and
// treats Not as non-accessing at the FromSelf source.
type Operator int

const (
	And Operator = iota
	Or
	Not
)

// ComponentID identifies a component for write-state tracking. Using
// reflect.Type mirrors the teacher's AccessMeta, which already keys
// component access by Go type rather than a numeric id.
type ComponentID = reflect.Type

// Column is one read/write declaration of a system's query.
type Column struct {
	Component ComponentID
	IO        IOKind
	Source    SourceKind
	Op        Operator
}

// MatchFunc reports whether a system's query currently matches at least one
// storage table. It is supplied by the embedding application, which owns the
// real entity/component store; a nil MatchFunc is always considered matching
// (the system is never swept to Inactive).
type MatchFunc func() bool

// SystemDescriptor is the scheduler's per-system record: a query handle (its
// columns), read-only identity and phase, and a mutable active bit.
type SystemDescriptor struct {
	id    int64
	name  string
	phase Phase

	columns []Column
	match   MatchFunc
	fn      func(ctx context.Context, deltaTime time.Duration) error

	active         atomic.Bool
	disabled       atomic.Bool
	disabledIntern atomic.Bool
}

// NewSystemDescriptor constructs a descriptor. id must be unique and is used
// as the identity tie-break by the ordering oracle; callers typically draw it
// from a monotonic counter at registration time.
func NewSystemDescriptor(id int64, name string, phase Phase, columns []Column, match MatchFunc, fn func(ctx context.Context, deltaTime time.Duration) error) *SystemDescriptor {
	d := &SystemDescriptor{
		id:      id,
		name:    name,
		phase:   phase,
		columns: columns,
		match:   match,
		fn:      fn,
	}
	d.active.Store(true)
	return d
}

func (d *SystemDescriptor) ID() int64          { return d.id }
func (d *SystemDescriptor) Name() string       { return d.name }
func (d *SystemDescriptor) Phase() Phase       { return d.phase }
func (d *SystemDescriptor) Columns() []Column  { return d.columns }
func (d *SystemDescriptor) IsActive() bool     { return d.active.Load() }
func (d *SystemDescriptor) IsDisabled() bool   { return d.disabled.Load() }
func (d *SystemDescriptor) isDisabledIntern() bool { return d.disabledIntern.Load() }

// Visible reports whether the system is visible to either pipeline query:
// not Disabled and not DisabledIntern.
func (d *SystemDescriptor) Visible() bool {
	return !d.disabled.Load() && !d.disabledIntern.Load()
}

// SetActive sets the active bit directly. The Activation Sweep and external
// add/remove of component data are the only legitimate callers.
func (d *SystemDescriptor) SetActive(active bool) {
	d.active.Store(active)
}

// SetDisabled toggles the external Disabled tag, excluding the system from
// both pipeline queries.
func (d *SystemDescriptor) SetDisabled(disabled bool) {
	d.disabled.Store(disabled)
}

// SetDisabledIntern toggles the internal-only disabled tag (used while a
// system is being torn down), excluding the system from both queries.
func (d *SystemDescriptor) SetDisabledIntern(disabled bool) {
	d.disabledIntern.Store(disabled)
}

// Matches reports whether the system's query currently matches at least one
// storage table; used by the Activation Sweep.
func (d *SystemDescriptor) Matches() bool {
	if d.match == nil {
		return true
	}
	return d.match()
}

// Run invokes the system body via the caller-supplied function. The
// descriptor itself never touches the store directly.
func (d *SystemDescriptor) Run(ctx context.Context, deltaTime time.Duration) error {
	if d.fn == nil {
		return nil
	}
	return d.fn(ctx, deltaTime)
}
