package bevi

import "github.com/oriumgames/bevi/internal/pipeline"

// Phase identifies a position in the system pipeline. Systems in the same
// phase run in the same execution group unless a component access forces a
// merge between them; phases themselves never force one.
type Phase = pipeline.Phase

// Built-in phases, in execution order. NewApp registers exactly these ten,
// in exactly this order, so their rank is identical across every App
// instance: PreFrame is always rank 0, PostFrame always the last.
const (
	PreFrame Phase = iota
	OnLoad
	PostLoad
	PreUpdate
	OnUpdate
	OnValidate
	PostUpdate
	PreStore
	OnStore
	PostFrame
)

// RegisterPhase declares a new custom phase, ranked after every phase
// registered so far on this App (including other custom phases). Built-in
// phases are always registered first, so a custom phase never sorts ahead
// of one unless it is itself registered before further built-ins would be
// added — which NewApp never does after construction.
func (a *App) RegisterPhase(name string) Phase {
	return a.mgr.Registry.Register(name)
}
