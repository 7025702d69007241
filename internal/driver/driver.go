// Package driver implements the run driver: the state machine that
// composes the storage model and scheduler with a fault-injection gate and
// produces the deterministic trace for one run.
package driver

import (
	"fmt"

	"github.com/dutsim/nvmelite/internal/model"
	"github.com/dutsim/nvmelite/internal/runconfig"
	"github.com/dutsim/nvmelite/internal/scheduler"
	"github.com/dutsim/nvmelite/internal/trace"
)

// Observer is an optional, trace-inert hook for operator-facing progress.
// It is never consulted for scheduling or fault decisions; wiring one
// cannot change a run's trace. All methods must be safe to call from the
// single goroutine driving a run (no concurrency guarantee beyond that).
type Observer interface {
	OnSubmit(cmdID uint32, kind model.CommandKind)
	OnComplete(cmdID uint32, status model.Status)
	OnFault(mode runconfig.FaultMode)
	OnReset(pendingBefore uint32)
}

// NoOpObserver implements Observer with no-ops. It is the default.
type NoOpObserver struct{}

func (NoOpObserver) OnSubmit(uint32, model.CommandKind) {}
func (NoOpObserver) OnComplete(uint32, model.Status)    {}
func (NoOpObserver) OnFault(runconfig.FaultMode)        {}
func (NoOpObserver) OnReset(uint32)                     {}

// Run owns the state for a single, self-contained deterministic run. It is
// exclusively owned by its caller; it must never be shared across
// goroutines mid-run.
type Run struct {
	cfg      runconfig.Config
	commands []model.Command
	observer Observer

	model     *model.Model
	scheduler *scheduler.Scheduler
	emitter   *trace.Emitter

	nextCmdIdx     int
	stepCount      uint32
	faultStep      uint32
	faultNever     bool
	faultInjected  bool
	stopSubmits    bool
	batchRemaining uint32
	observedPeak   uint32
}

// New constructs a Run ready to execute cfg's workload over commands.
// observer may be nil, in which case NoOpObserver is used.
func New(cfg runconfig.Config, commands []model.Command, observer Observer) *Run {
	if observer == nil {
		observer = NoOpObserver{}
	}
	r := &Run{
		cfg:       cfg,
		commands:  commands,
		observer:  observer,
		model:     model.New(),
		scheduler: scheduler.New(cfg.Policy, cfg.BoundK, cfg.ScheduleSeed),
		emitter:   trace.NewEmitter(),
	}
	if cfg.FaultMode != runconfig.FaultNone {
		r.faultStep = uint32(len(commands) / 2)
	} else {
		r.faultNever = true
	}
	return r
}

// Execute runs the full state machine to completion and flushes the trace
// to sink. It returns the run's final pending-left and pending-peak
// counts.
func (r *Run) Execute(sink trace.Sink) (pendingLeft, pendingPeak uint32, err error) {
	runID := r.cfg.RunID()
	r.emitter.Header(runID, r.cfg, len(r.commands))

	for {
		pendingCount := r.model.PendingCount()
		submitOK := !r.stopSubmits && r.nextCmdIdx < len(r.commands) && r.cfg.SubmitWindow.Allows(pendingCount)
		completeOK := pendingCount > 0
		if !submitOK && !completeOK {
			break
		}

		doComplete := r.decideComplete(submitOK, completeOK)
		if doComplete {
			if r.completeStep() == actionHalt {
				break
			}
		} else {
			r.submitStep()
		}
	}

	left := uint32(r.model.PendingCount())
	peak := r.observedPeak
	if p := r.model.PendingPeak(); p > peak {
		peak = p
	}
	r.emitter.RunEnd(left, peak)

	if err := r.emitter.Flush(sink); err != nil {
		return left, peak, fmt.Errorf("driver: run %s: %w", runID, err)
	}
	return left, peak, nil
}

func (r *Run) decideComplete(submitOK, completeOK bool) bool {
	if r.cfg.Policy == scheduler.PolicyBatched && r.batchRemaining > 0 {
		return true
	}
	if submitOK && completeOK {
		return r.scheduler.NextBit() == 1
	}
	if completeOK {
		return true
	}
	return false
}

type loopAction int

const (
	actionContinue loopAction = iota
	actionHalt
)

func (r *Run) completeStep() loopAction {
	if !r.faultInjected && !r.faultNever && r.stepCount >= r.faultStep {
		switch r.cfg.FaultMode {
		case runconfig.FaultTimeout:
			r.injectTimeout()
			return actionContinue
		case runconfig.FaultReset:
			r.injectReset()
			return actionHalt
		}
	}

	if r.cfg.Policy == scheduler.PolicyBatched && r.batchRemaining == 0 {
		pending := r.model.PendingCount()
		if pending > scheduler.BatchSize {
			r.batchRemaining = scheduler.BatchSize
		} else {
			r.batchRemaining = uint32(pending)
		}
	}

	pendingSorted := r.model.PendingCanonical()
	decision := r.scheduler.PickNext(pendingSorted)
	res, ok := r.model.Complete(decision.CmdID, nil)
	if !ok {
		// The driver only ever targets ids it just read from the pending
		// set; this would indicate internal misuse, not a real run state.
		return actionContinue
	}
	r.emitter.Complete(res.CmdID, res.Status, res.Out)
	r.observer.OnComplete(res.CmdID, res.Status)

	if r.cfg.Policy == scheduler.PolicyBatched && r.batchRemaining > 0 {
		r.batchRemaining--
	}
	r.stepCount++
	return actionContinue
}

func (r *Run) injectTimeout() {
	pendingSorted := r.model.PendingCanonical()
	firstID := pendingSorted[0]
	timeout := model.StatusTimeout
	res, _ := r.model.Complete(firstID, &timeout)
	r.emitter.Complete(res.CmdID, res.Status, res.Out)
	r.observer.OnComplete(res.CmdID, res.Status)
	r.faultInjected = true
	r.stopSubmits = true
	r.observer.OnFault(runconfig.FaultTimeout)
	r.stepCount++
}

func (r *Run) injectReset() {
	pendingBefore := r.model.Reset()
	r.emitter.Reset("INJECTED", pendingBefore)
	r.faultInjected = true
	r.observer.OnReset(pendingBefore)
	r.observer.OnFault(runconfig.FaultReset)
}

func (r *Run) submitStep() {
	cmd := r.commands[r.nextCmdIdx]
	pc := r.model.Submit(cmd)
	r.emitter.Submit(pc.CmdID, cmd.Kind)
	r.observer.OnSubmit(pc.CmdID, cmd.Kind)
	if pc.HasFence {
		r.emitter.Fence(pc.FenceID)
	}
	r.nextCmdIdx++
	if p := uint32(r.model.PendingCount()); p > r.observedPeak {
		r.observedPeak = p
	}
}
