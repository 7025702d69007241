// Package constants holds the simulator's fixed sizing parameters.
package constants

const (
	// StorageSize is the word count of both storage buffers.
	StorageSize = 1024

	// MaxPending is the reference cap on simultaneously pending commands.
	// Submission beyond the cap is undefined by the spec; it is the
	// caller's responsibility to keep submit_window within this bound.
	MaxPending = 4096

	// BatchSize is the fixed burst length enforced under the Batched
	// scheduler policy.
	BatchSize = 4

	// DefaultSchedulerVersion is frozen for trace compatibility regardless
	// of the tool's own build version.
	DefaultSchedulerVersion = "v1.0"
)
