// Package nvmelite provides a deterministic DUT simulator for an NVMe-lite
// storage command protocol: a storage/command model, a scheduler with
// reorder and fault-injection controls, and a canonical trace of the
// resulting run.
package nvmelite

import (
	"fmt"

	"github.com/dutsim/nvmelite/internal/config"
	"github.com/dutsim/nvmelite/internal/driver"
	"github.com/dutsim/nvmelite/internal/model"
	"github.com/dutsim/nvmelite/internal/runconfig"
	"github.com/dutsim/nvmelite/internal/scheduler"
	"github.com/dutsim/nvmelite/internal/seed"
	"github.com/dutsim/nvmelite/internal/trace"
)

// RunConfig fully describes one run: its workload identity, scheduling
// configuration, and fault behavior.
type RunConfig = runconfig.Config

// Policy selects how the scheduler chooses among pending candidates.
type Policy = scheduler.Policy

const (
	PolicyFIFO        = scheduler.PolicyFIFO
	PolicyRandom      = scheduler.PolicyRandom
	PolicyAdversarial = scheduler.PolicyAdversarial
	PolicyBatched     = scheduler.PolicyBatched
)

// BoundK is the reorder bound: either infinite or a finite value.
type BoundK = scheduler.BoundK

// FaultMode selects the fault-injection behavior partway through a run.
type FaultMode = runconfig.FaultMode

const (
	FaultNone    = runconfig.FaultNone
	FaultTimeout = runconfig.FaultTimeout
	FaultReset   = runconfig.FaultReset
)

// SubmitWindow bounds how many commands may be pending at once.
type SubmitWindow = runconfig.SubmitWindow

// Command is a single storage command in a workload.
type Command = model.Command

// CommandKind discriminates the four command variants.
type CommandKind = model.CommandKind

const (
	KindWrite        = model.KindWrite
	KindRead         = model.KindRead
	KindFence        = model.KindFence
	KindWriteVisible = model.KindWriteVisible
)

// Status is the outcome of a completed command.
type Status = model.Status

const (
	StatusOK      = model.StatusOK
	StatusErr     = model.StatusErr
	StatusTimeout = model.StatusTimeout
)

// Seed is a loaded workload: its identifier and ordered commands.
type Seed = seed.Seed

// Sink accepts the complete, ordered set of lines for one run.
type Sink = trace.Sink

// Matrix is a fully parsed experiment configuration for run-matrix.
type Matrix = config.Matrix

// InfiniteBound returns the unbounded BoundK.
func InfiniteBound() BoundK { return scheduler.InfiniteBound() }

// FiniteBound returns a BoundK of k.
func FiniteBound(k uint32) BoundK { return scheduler.FiniteBound(k) }

// InfiniteWindow returns the unbounded SubmitWindow.
func InfiniteWindow() SubmitWindow { return runconfig.InfiniteWindow() }

// FiniteWindow returns a SubmitWindow of n.
func FiniteWindow(n uint32) SubmitWindow { return runconfig.FiniteWindow(n) }

// ParsePolicy parses the trace/CLI spelling of a policy.
func ParsePolicy(s string) (Policy, error) { return scheduler.ParsePolicy(s) }

// ParseBoundK parses "inf" or a decimal unsigned integer.
func ParseBoundK(s string) (BoundK, error) { return scheduler.ParseBoundK(s) }

// ParseFaultMode parses the trace/CLI spelling of a fault mode.
func ParseFaultMode(s string) (FaultMode, error) { return runconfig.ParseFaultMode(s) }

// ParseSubmitWindow parses "inf" or a decimal unsigned integer.
func ParseSubmitWindow(s string) (SubmitWindow, error) { return runconfig.ParseSubmitWindow(s) }

// LoadSeed reads and parses a seed file at path.
func LoadSeed(path string) (*Seed, error) {
	s, err := seed.Load(path)
	if err != nil {
		return nil, WrapError("load-seed", ErrCodeSeedUnreadable, err)
	}
	return s, nil
}

// ParseScheduleSeedRange accepts either "start-end" or a single value, as
// used by run-matrix's --schedule-seeds override.
func ParseScheduleSeedRange(s string) (start, end uint64, err error) {
	return config.ParseScheduleSeedRange(s)
}

// LoadMatrix reads and parses a matrix config file at path.
func LoadMatrix(path string) (*Matrix, error) {
	m, err := config.Load(path)
	if err != nil {
		return nil, WrapError("load-matrix", ErrCodeConfigUnreadable, err)
	}
	return m, nil
}

// RunResult summarizes the outcome of one completed run.
type RunResult struct {
	RunID       string
	PendingLeft uint32
	PendingPeak uint32
}

// RunOne executes a single run of cfg's workload and flushes its trace to
// sink. observer may be nil, in which case progress reporting is skipped.
func RunOne(cfg RunConfig, workload *Seed, sink Sink, observer Observer) (RunResult, error) {
	runID := cfg.RunID()
	r := driver.New(cfg, workload.Commands, observer)
	left, peak, err := r.Execute(sink)
	if err != nil {
		return RunResult{RunID: runID}, WrapError("run-one", ErrCodeSinkWrite, err)
	}
	return RunResult{RunID: runID, PendingLeft: left, PendingPeak: peak}, nil
}

// Cell is one fully-resolved run configuration expanded from a Matrix.
type Cell struct {
	Config   RunConfig
	SeedPath string
}

// ExpandCells enumerates every (seed, policy, bound, fault, schedule_seed)
// cell of m, attaching m's SchedulerVersion and gitCommit (resolved by the
// caller, since git_commit=auto resolution belongs outside the core) to each.
func ExpandCells(m *Matrix, seedIDs map[string]string, submitWindow SubmitWindow, gitCommit string) ([]Cell, error) {
	if len(seedIDs) != len(m.SeedPaths) {
		return nil, fmt.Errorf("nvmelite: ExpandCells: need a seed_id for every seed path")
	}
	var cells []Cell
	for _, seedPath := range m.SeedPaths {
		seedID, ok := seedIDs[seedPath]
		if !ok {
			return nil, fmt.Errorf("nvmelite: ExpandCells: missing seed_id for %s", seedPath)
		}
		for _, pol := range m.Policies {
			for _, bound := range m.Bounds {
				for _, fault := range m.Faults {
					for s := m.ScheduleSeedStart; s <= m.ScheduleSeedEnd; s++ {
						cells = append(cells, Cell{
							SeedPath: seedPath,
							Config: RunConfig{
								SeedID:           seedID,
								ScheduleSeed:     s,
								Policy:           pol,
								BoundK:           bound,
								FaultMode:        fault,
								SubmitWindow:     submitWindow,
								SchedulerVersion: m.SchedulerVersion,
								GitCommit:        gitCommit,
							},
						})
					}
				}
			}
		}
	}
	return cells, nil
}
