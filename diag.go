package bevi

import (
	"time"

	"github.com/oriumgames/bevi/internal/pipeline"
)

// Diagnostics is the interface for system execution and merge diagnostics.
type Diagnostics interface {
	SystemStart(name string, phase Phase)
	SystemEnd(name string, phase Phase, err error, duration time.Duration)
	MergeBegin(groupIndex int)
	MergeEnd(groupIndex int)
	EventEmit(name string, count int)
}

// NopDiagnostics is a no-op diagnostics implementation.
type NopDiagnostics struct{}

func (NopDiagnostics) SystemStart(string, Phase)                     {}
func (NopDiagnostics) SystemEnd(string, Phase, error, time.Duration) {}
func (NopDiagnostics) MergeBegin(int)                                {}
func (NopDiagnostics) MergeEnd(int)                                  {}
func (NopDiagnostics) EventEmit(string, int)                         {}

// LogDiagnostics logs diagnostics to a logger interface.
type LogDiagnostics struct {
	log interface{ Printf(string, ...any) }
}

// NewLogDiagnostics creates a diagnostics handler that logs to the given logger.
func NewLogDiagnostics(log interface{ Printf(string, ...any) }) *LogDiagnostics {
	return &LogDiagnostics{log: log}
}

func (d *LogDiagnostics) SystemStart(name string, phase Phase) {
	d.log.Printf("[phase %d] system %s started", phase, name)
}

func (d *LogDiagnostics) SystemEnd(name string, phase Phase, err error, duration time.Duration) {
	if err != nil {
		d.log.Printf("[phase %d] system %s finished with error in %v: %v", phase, name, duration, err)
	} else {
		d.log.Printf("[phase %d] system %s finished in %v", phase, name, duration)
	}
}

func (d *LogDiagnostics) MergeBegin(groupIndex int) {
	d.log.Printf("merge begin after group %d", groupIndex)
}

func (d *LogDiagnostics) MergeEnd(groupIndex int) {
	d.log.Printf("merge end after group %d", groupIndex)
}

func (d *LogDiagnostics) EventEmit(name string, count int) {
	d.log.Printf("event %s emitted: %d", name, count)
}

// internalDiagnostics adapts bevi.Diagnostics to pipeline.Diagnostics.
type internalDiagnostics struct {
	d Diagnostics
}

func (da *internalDiagnostics) SystemStart(name string, phase pipeline.Phase) {
	if da.d != nil {
		da.d.SystemStart(name, phase)
	}
}

func (da *internalDiagnostics) SystemEnd(name string, phase pipeline.Phase, err error, duration time.Duration) {
	if da.d != nil {
		da.d.SystemEnd(name, phase, err, duration)
	}
}

func (da *internalDiagnostics) MergeBegin(groupIndex int) {
	if da.d != nil {
		da.d.MergeBegin(groupIndex)
	}
}

func (da *internalDiagnostics) MergeEnd(groupIndex int) {
	if da.d != nil {
		da.d.MergeEnd(groupIndex)
	}
}

func (da *internalDiagnostics) EventEmit(name string, count int) {
	if da.d != nil {
		da.d.EventEmit(name, count)
	}
}
