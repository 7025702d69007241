// Package trace formats the canonical run trace grammar and buffers it for
// atomic delivery to a Sink. Line order is the semantics: the emitter must
// never reorder or drop a line, and a Sink must never receive a partial
// run's lines.
package trace

import (
	"fmt"

	"github.com/dutsim/nvmelite/internal/model"
	"github.com/dutsim/nvmelite/internal/runconfig"
)

// Sink accepts the complete, ordered set of lines for one run. A Sink must
// not partially persist a run: either all lines land or none do.
type Sink interface {
	WriteAll(lines []string) error
}

// Emitter buffers one run's trace lines in emission order.
type Emitter struct {
	lines []string
}

// NewEmitter returns an empty Emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Lines returns the buffered lines so far, in emission order.
func (e *Emitter) Lines() []string {
	return e.lines
}

func (e *Emitter) append(line string) {
	e.lines = append(e.lines, line)
}

// Header emits the RUN_HEADER line.
func (e *Emitter) Header(runID string, cfg runconfig.Config, nCmds int) {
	e.append(fmt.Sprintf(
		"RUN_HEADER(run_id=%s, seed_id=%s, schedule_seed=%d, policy=%s, bound_k=%s, fault_mode=%s, n_cmds=%d, submit_window=%s, scheduler_version=%s, git_commit=%s)",
		runID, cfg.SeedID, cfg.ScheduleSeed, cfg.Policy, cfg.BoundK, cfg.FaultMode,
		nCmds, cfg.SubmitWindow, cfg.SchedulerVersion, cfg.GitCommit,
	))
}

// Submit emits the SUBMIT line for a newly submitted command.
func (e *Emitter) Submit(cmdID uint32, kind model.CommandKind) {
	e.append(fmt.Sprintf("SUBMIT(cmd_id=%d, cmd_type=%s)", cmdID, kind))
}

// Fence emits the FENCE line, always immediately following a Fence's
// SUBMIT line.
func (e *Emitter) Fence(fenceID uint32) {
	e.append(fmt.Sprintf("FENCE(fence_id=%d)", fenceID))
}

// Complete emits the COMPLETE line for a finished command.
func (e *Emitter) Complete(cmdID uint32, status model.Status, out uint32) {
	e.append(fmt.Sprintf("COMPLETE(cmd_id=%d, status=%s, out=%d)", cmdID, status, out))
}

// Reset emits the RESET line.
func (e *Emitter) Reset(reason string, pendingBefore uint32) {
	e.append(fmt.Sprintf("RESET(reason=%s, pending_before=%d)", reason, pendingBefore))
}

// RunEnd emits the terminal RUN_END line.
func (e *Emitter) RunEnd(pendingLeft, pendingPeak uint32) {
	e.append(fmt.Sprintf("RUN_END(pending_left=%d, pending_peak=%d)", pendingLeft, pendingPeak))
}

// Flush delivers the buffered lines to sink as a single atomic write and
// clears the buffer. A write failure is a fatal run error.
func (e *Emitter) Flush(sink Sink) error {
	if err := sink.WriteAll(e.lines); err != nil {
		return fmt.Errorf("trace: flush: %w", err)
	}
	e.lines = nil
	return nil
}
