package nvmelite

import (
	"sync/atomic"

	"github.com/dutsim/nvmelite/internal/driver"
	"github.com/dutsim/nvmelite/internal/model"
	"github.com/dutsim/nvmelite/internal/runconfig"
)

// Observer is an optional, trace-inert hook for operator-facing progress
// during a run. It is never consulted for scheduling or fault decisions;
// wiring one cannot change a run's trace.
type Observer = driver.Observer

// NoOpObserver implements Observer with no-ops. It is the default.
type NoOpObserver = driver.NoOpObserver

// CountingObserver implements Observer using atomic counters, for
// operator-facing progress reporting during run-matrix. Unlike the trace
// emitter it aggregates across the whole run (or an entire matrix, if
// shared across cells) rather than recording individual events.
type CountingObserver struct {
	Submits   atomic.Uint64
	Completes atomic.Uint64
	OKs       atomic.Uint64
	Errs      atomic.Uint64
	Timeouts  atomic.Uint64
	Faults    atomic.Uint64
	Resets    atomic.Uint64
}

// NewCountingObserver returns a zeroed CountingObserver.
func NewCountingObserver() *CountingObserver {
	return &CountingObserver{}
}

func (o *CountingObserver) OnSubmit(uint32, model.CommandKind) {
	o.Submits.Add(1)
}

func (o *CountingObserver) OnComplete(_ uint32, status model.Status) {
	o.Completes.Add(1)
	switch status {
	case model.StatusOK:
		o.OKs.Add(1)
	case model.StatusErr:
		o.Errs.Add(1)
	case model.StatusTimeout:
		o.Timeouts.Add(1)
	}
}

func (o *CountingObserver) OnFault(runconfig.FaultMode) {
	o.Faults.Add(1)
}

func (o *CountingObserver) OnReset(uint32) {
	o.Resets.Add(1)
}

// Snapshot is a point-in-time copy of a CountingObserver's counters.
type Snapshot struct {
	Submits, Completes, OKs, Errs, Timeouts, Faults, Resets uint64
}

// Snapshot returns the current counter values.
func (o *CountingObserver) Snapshot() Snapshot {
	return Snapshot{
		Submits:   o.Submits.Load(),
		Completes: o.Completes.Load(),
		OKs:       o.OKs.Load(),
		Errs:      o.Errs.Load(),
		Timeouts:  o.Timeouts.Load(),
		Faults:    o.Faults.Load(),
		Resets:    o.Resets.Load(),
	}
}

var _ Observer = (*CountingObserver)(nil)
var _ Observer = NoOpObserver{}
