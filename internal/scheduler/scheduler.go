// Package scheduler implements the policy+bound-driven candidate selection
// and submit/complete coin flip that together control interleaving of a
// run. The scheduler owns the run's RNG; NextBit and every Random or
// Batched pick advance the stream (FIFO and Adversarial picks do not), so
// two schedulers seeded identically make identical decisions.
package scheduler

import (
	"fmt"

	"github.com/dutsim/nvmelite/internal/rng"
)

// Policy selects how pick_next chooses among pending candidates.
type Policy uint8

const (
	PolicyFIFO Policy = iota
	PolicyRandom
	PolicyAdversarial
	PolicyBatched
)

func (p Policy) String() string {
	switch p {
	case PolicyFIFO:
		return "FIFO"
	case PolicyRandom:
		return "RANDOM"
	case PolicyAdversarial:
		return "ADVERSARIAL"
	case PolicyBatched:
		return "BATCHED"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

// ParsePolicy parses the trace/CLI spelling of a policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "FIFO":
		return PolicyFIFO, nil
	case "RANDOM":
		return PolicyRandom, nil
	case "ADVERSARIAL":
		return PolicyAdversarial, nil
	case "BATCHED":
		return PolicyBatched, nil
	default:
		return 0, fmt.Errorf("scheduler: unknown policy %q", s)
	}
}

// BatchSize is the fixed burst length enforced by the driver under the
// Batched policy.
const BatchSize = 4

// BoundK is the reorder bound: either infinite or a finite value. The zero
// value is the finite bound 0, not infinite -- always construct explicitly.
type BoundK struct {
	infinite bool
	value    uint32
}

// InfiniteBound returns the unbounded BoundK.
func InfiniteBound() BoundK { return BoundK{infinite: true} }

// FiniteBound returns a BoundK of k.
func FiniteBound(k uint32) BoundK { return BoundK{value: k} }

// Infinite reports whether the bound is unbounded.
func (b BoundK) Infinite() bool { return b.infinite }

// Value returns the finite bound. It is meaningless if Infinite() is true.
func (b BoundK) Value() uint32 { return b.value }

func (b BoundK) String() string {
	if b.infinite {
		return "inf"
	}
	return fmt.Sprintf("%d", b.value)
}

// ParseBoundK parses "inf" or a decimal unsigned integer.
func ParseBoundK(s string) (BoundK, error) {
	if s == "inf" {
		return InfiniteBound(), nil
	}
	var v uint32
	if _, err := fmt.Sscanf(s, "%d", &v); err != nil {
		return BoundK{}, fmt.Errorf("scheduler: invalid bound_k %q: %w", s, err)
	}
	return FiniteBound(v), nil
}

// Decision is the outcome of PickNext.
type Decision struct {
	PickIndex int
	CmdID     uint32
}

// Scheduler picks submit/complete interleaving and, on complete, which
// pending command to finish. It is owned exclusively by one run.
type Scheduler struct {
	Policy Policy
	Bound  BoundK
	rng    *rng.Source
}

// New returns a Scheduler seeded with scheduleSeed.
func New(policy Policy, bound BoundK, scheduleSeed uint64) *Scheduler {
	return &Scheduler{
		Policy: policy,
		Bound:  bound,
		rng:    rng.New(scheduleSeed),
	}
}

// NextBit advances the RNG and returns its low bit, used by the driver to
// decide submit vs complete.
func (s *Scheduler) NextBit() uint8 {
	return s.rng.NextBit()
}

// CandidatesCount returns the size of the head window of candidates the
// scheduler is allowed to choose from, given pendingCount commands pending.
func (s *Scheduler) CandidatesCount(pendingCount int) int {
	if s.Bound.Infinite() {
		return pendingCount
	}
	k := int(s.Bound.Value())
	if k+1 < pendingCount {
		return k + 1
	}
	return pendingCount
}

// PickNext chooses which pending command to complete. pendingSorted must be
// in ascending cmd_id order.
func (s *Scheduler) PickNext(pendingSorted []uint32) Decision {
	n := s.CandidatesCount(len(pendingSorted))
	var idx int
	switch s.Policy {
	case PolicyFIFO:
		idx = 0
	case PolicyAdversarial:
		idx = n - 1
	case PolicyRandom, PolicyBatched:
		idx = int(s.rng.Range(uint32(n)))
	default:
		idx = 0
	}
	return Decision{PickIndex: idx, CmdID: pendingSorted[idx]}
}
