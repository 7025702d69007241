// Package runconfig holds the small value types that describe a single run
// and its stable identity. It is a leaf package so both the driver and the
// public API can depend on it without a cycle.
package runconfig

import (
	"fmt"
	"strings"

	"github.com/dutsim/nvmelite/internal/scheduler"
)

// FaultMode selects the fault-injection behavior partway through a run.
type FaultMode uint8

const (
	FaultNone FaultMode = iota
	FaultTimeout
	FaultReset
)

func (f FaultMode) String() string {
	switch f {
	case FaultNone:
		return "NONE"
	case FaultTimeout:
		return "TIMEOUT"
	case FaultReset:
		return "RESET"
	default:
		return fmt.Sprintf("FaultMode(%d)", uint8(f))
	}
}

// ParseFaultMode parses the trace/CLI spelling of a fault mode.
func ParseFaultMode(s string) (FaultMode, error) {
	switch s {
	case "NONE":
		return FaultNone, nil
	case "TIMEOUT":
		return FaultTimeout, nil
	case "RESET":
		return FaultReset, nil
	default:
		return 0, fmt.Errorf("runconfig: unknown fault_mode %q", s)
	}
}

// SubmitWindow bounds how many commands may be pending at once. Infinite
// disables the bound; a finite window of 0 forbids submission entirely.
type SubmitWindow struct {
	infinite bool
	value    uint32
}

// InfiniteWindow returns the unbounded SubmitWindow.
func InfiniteWindow() SubmitWindow { return SubmitWindow{infinite: true} }

// FiniteWindow returns a SubmitWindow of n.
func FiniteWindow(n uint32) SubmitWindow { return SubmitWindow{value: n} }

// Infinite reports whether the window is unbounded.
func (w SubmitWindow) Infinite() bool { return w.infinite }

// Value returns the finite window size. Meaningless if Infinite() is true.
func (w SubmitWindow) Value() uint32 { return w.value }

func (w SubmitWindow) String() string {
	if w.infinite {
		return "inf"
	}
	return fmt.Sprintf("%d", w.value)
}

// ParseSubmitWindow parses "inf" or a decimal unsigned integer.
func ParseSubmitWindow(s string) (SubmitWindow, error) {
	if s == "inf" {
		return InfiniteWindow(), nil
	}
	var v uint32
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return SubmitWindow{}, fmt.Errorf("runconfig: invalid submit_window %q: %w", s, err)
	}
	return FiniteWindow(v), nil
}

// Allows reports whether a new command may be submitted given pendingCount
// currently pending. The bound is strict-less-than by design: a finite
// window of 0 forbids submission entirely.
func (w SubmitWindow) Allows(pendingCount int) bool {
	if w.infinite {
		return true
	}
	return uint32(pendingCount) < w.value
}

// Config fully describes one run: its workload identity, scheduling
// configuration, and fault behavior.
type Config struct {
	SeedID            string
	ScheduleSeed      uint64
	Policy            scheduler.Policy
	BoundK            scheduler.BoundK
	FaultMode         FaultMode
	SubmitWindow      SubmitWindow
	SchedulerVersion  string
	GitCommit         string
}

// RunID derives the stable run identity string from the config.
func (c Config) RunID() string {
	var b strings.Builder
	b.WriteString(c.SeedID)
	b.WriteByte('_')
	b.WriteString(c.Policy.String())
	b.WriteByte('_')
	b.WriteString(c.BoundK.String())
	b.WriteByte('_')
	fmt.Fprintf(&b, "%d", c.ScheduleSeed)
	b.WriteByte('_')
	b.WriteString(c.FaultMode.String())
	return b.String()
}
