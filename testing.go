package nvmelite

import "github.com/dutsim/nvmelite/internal/trace"

// MemorySink records a run's trace lines in memory. It is exported for
// downstream oracle and test harnesses that want a run's trace without
// touching a filesystem.
type MemorySink = trace.MemorySink

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink {
	return trace.NewMemorySink()
}

// NewSeed builds a Seed directly from in-memory commands, for tests that
// want to drive a run without a seed file on disk.
func NewSeed(seedID string, commands []Command) *Seed {
	return &Seed{SeedID: seedID, Commands: commands}
}

var _ Sink = (*MemorySink)(nil)
