package nvmelite

import "github.com/dutsim/nvmelite/internal/constants"

// Re-export constants for public API.
const (
	StorageSize             = constants.StorageSize
	MaxPending              = constants.MaxPending
	BatchSize               = constants.BatchSize
	DefaultSchedulerVersion = constants.DefaultSchedulerVersion
)
