// Package model implements the storage/command model: the dual host/device
// visibility buffers, the pending-command set, and command execution
// semantics. It is owned exclusively by a single run; nothing here is safe
// to share across goroutines.
package model

import "fmt"

// StorageSize is the fixed word count of both storage buffers.
const StorageSize = 1024

// CommandKind discriminates the four Command variants.
type CommandKind uint8

const (
	KindWrite CommandKind = iota
	KindRead
	KindFence
	KindWriteVisible
)

func (k CommandKind) String() string {
	switch k {
	case KindWrite:
		return "WRITE"
	case KindRead:
		return "READ"
	case KindFence:
		return "FENCE"
	case KindWriteVisible:
		return "WRITE_VISIBLE"
	default:
		return fmt.Sprintf("CommandKind(%d)", uint8(k))
	}
}

// Command is a tagged variant over the four command kinds. Len and LBA are
// meaningful for all kinds except Fence; Pattern is meaningful only for
// Write.
type Command struct {
	Kind    CommandKind
	LBA     uint64
	Len     uint32
	Pattern uint32
}

// Status is the outcome of a completed command.
type Status uint8

const (
	StatusOK Status = iota
	StatusErr
	StatusTimeout
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusErr:
		return "ERR"
	case StatusTimeout:
		return "TIMEOUT"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// PendingCommand is a command that has been submitted but not yet
// completed. FenceID is only meaningful when Command.Kind == KindFence.
type PendingCommand struct {
	CmdID   uint32
	Command Command
	FenceID uint32
	HasFence bool
}

// Result is the outcome of completing a pending command.
type Result struct {
	CmdID  uint32
	Status Status
	Out    uint32
}

// Model is the storage/command model for a single run. The zero value is
// not usable; construct one with New.
type Model struct {
	hostStorage [StorageSize]uint32
	devStorage  [StorageSize]uint32

	pending    map[uint32]PendingCommand
	nextCmdID  uint32
	nextFenceID uint32
	pendingPeak uint32

	hadReset            bool
	commandsLostToReset uint32
}

// New returns a Model with zeroed storage and an empty pending set.
func New() *Model {
	return &Model{
		pending: make(map[uint32]PendingCommand),
	}
}

// PendingCount returns the number of commands currently pending.
func (m *Model) PendingCount() int {
	return len(m.pending)
}

// PendingPeak returns the maximum pending count ever observed.
func (m *Model) PendingPeak() uint32 {
	return m.pendingPeak
}

// HadReset reports whether Reset has ever been called on this Model.
func (m *Model) HadReset() bool {
	return m.hadReset
}

// CommandsLostToReset returns the pending count discarded by the most
// recent Reset (0 if Reset was never called).
func (m *Model) CommandsLostToReset() uint32 {
	return m.commandsLostToReset
}

// Submit assigns a new cmd_id, inserts the command into pending, and
// allocates a fence_id if the command is a Fence. It never fails.
func (m *Model) Submit(cmd Command) PendingCommand {
	id := m.nextCmdID
	m.nextCmdID++

	pc := PendingCommand{CmdID: id, Command: cmd}
	if cmd.Kind == KindFence {
		pc.FenceID = m.nextFenceID
		pc.HasFence = true
		m.nextFenceID++
	}

	m.pending[id] = pc
	if uint32(len(m.pending)) > m.pendingPeak {
		m.pendingPeak = uint32(len(m.pending))
	}
	return pc
}

// PendingCanonical returns the cmd_ids currently pending, sorted ascending.
// This is the canonical iteration order the scheduler depends on.
func (m *Model) PendingCanonical() []uint32 {
	ids := make([]uint32, 0, len(m.pending))
	for id := range m.pending {
		ids = append(ids, id)
	}
	insertionSortUint32(ids)
	return ids
}

func insertionSortUint32(ids []uint32) {
	for i := 1; i < len(ids); i++ {
		v := ids[i]
		j := i - 1
		for j >= 0 && ids[j] > v {
			ids[j+1] = ids[j]
			j--
		}
		ids[j+1] = v
	}
}

// Complete removes cmd_id from pending and either force-reports forceStatus
// or executes the command against storage. It reports ok=false if cmd_id
// was not pending.
func (m *Model) Complete(cmdID uint32, forceStatus *Status) (Result, bool) {
	pc, ok := m.pending[cmdID]
	if !ok {
		return Result{}, false
	}
	delete(m.pending, cmdID)

	if forceStatus != nil {
		return Result{CmdID: cmdID, Status: *forceStatus, Out: 0}, true
	}
	return m.execute(pc), true
}

func (m *Model) execute(pc PendingCommand) Result {
	cmd := pc.Command
	switch cmd.Kind {
	case KindWrite:
		if !inRange(cmd.LBA, cmd.Len) {
			return Result{CmdID: pc.CmdID, Status: StatusErr, Out: 0}
		}
		lo := cmd.LBA
		for i := uint32(0); i < cmd.Len; i++ {
			m.hostStorage[lo+uint64(i)] = cmd.Pattern
		}
		return Result{CmdID: pc.CmdID, Status: StatusOK, Out: 0}

	case KindRead:
		if !inRange(cmd.LBA, cmd.Len) {
			return Result{CmdID: pc.CmdID, Status: StatusErr, Out: 0}
		}
		var hash uint32
		lo := cmd.LBA
		for i := uint32(0); i < cmd.Len; i++ {
			hash = hash*31 + m.devStorage[lo+uint64(i)]
		}
		return Result{CmdID: pc.CmdID, Status: StatusOK, Out: hash}

	case KindFence:
		return Result{CmdID: pc.CmdID, Status: StatusOK, Out: 0}

	case KindWriteVisible:
		if !inRange(cmd.LBA, cmd.Len) {
			return Result{CmdID: pc.CmdID, Status: StatusErr, Out: 0}
		}
		lo := cmd.LBA
		for i := uint32(0); i < cmd.Len; i++ {
			m.devStorage[lo+uint64(i)] = m.hostStorage[lo+uint64(i)]
		}
		return Result{CmdID: pc.CmdID, Status: StatusOK, Out: 0}

	default:
		return Result{CmdID: pc.CmdID, Status: StatusErr, Out: 0}
	}
}

func inRange(lba uint64, length uint32) bool {
	end := lba + uint64(length)
	return end <= StorageSize
}

// Reset discards all pending commands, recording how many were lost.
// Storage buffers and the cmd_id/fence_id counters are left untouched.
func (m *Model) Reset() (pendingBefore uint32) {
	pendingBefore = uint32(len(m.pending))
	m.pending = make(map[uint32]PendingCommand)
	m.hadReset = true
	m.commandsLostToReset = pendingBefore
	return pendingBefore
}

// Stats returns a diagnostic snapshot. It is never consulted by the driver
// or folded into the trace; it exists purely for operator tooling.
func (m *Model) Stats() map[string]any {
	return map[string]any{
		"pending_count":          len(m.pending),
		"pending_peak":           m.pendingPeak,
		"next_cmd_id":            m.nextCmdID,
		"next_fence_id":          m.nextFenceID,
		"had_reset":              m.hadReset,
		"commands_lost_to_reset": m.commandsLostToReset,
	}
}
