// Package config loads the matrix configuration: the Cartesian product of
// seed files, policies, reorder bounds, fault modes, and a schedule-seed
// range that run-matrix expands into individual run configs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dutsim/nvmelite/internal/runconfig"
	"github.com/dutsim/nvmelite/internal/scheduler"
)

// defaultSchedulerVersion is frozen for trace compatibility regardless of
// the tool's own build version.
const defaultSchedulerVersion = "v1.0"

// rawMatrix mirrors the on-disk YAML schema.
type rawMatrix struct {
	Seeds            []string `yaml:"seeds"`
	Policies         []string `yaml:"policies"`
	Bounds           []string `yaml:"bounds"`
	Faults           []string `yaml:"faults"`
	ScheduleSeeds    string   `yaml:"schedule_seeds"`
	SchedulerVersion string   `yaml:"scheduler_version"`
	GitCommit        string   `yaml:"git_commit"`
}

// Matrix is a fully parsed experiment configuration.
type Matrix struct {
	SeedPaths           []string
	Policies            []scheduler.Policy
	Bounds              []scheduler.BoundK
	Faults              []runconfig.FaultMode
	ScheduleSeedStart   uint64
	ScheduleSeedEnd     uint64
	SchedulerVersion    string
	GitCommit           string
}

// Load reads and parses a matrix config file at path.
func Load(path string) (*Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var raw rawMatrix
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	m := &Matrix{
		SeedPaths:        raw.Seeds,
		SchedulerVersion: defaultSchedulerVersion,
		GitCommit:        raw.GitCommit,
	}
	if raw.SchedulerVersion != "" {
		m.SchedulerVersion = raw.SchedulerVersion
	}
	if len(m.SeedPaths) == 0 {
		return nil, fmt.Errorf("config: %s: seeds list must not be empty", path)
	}

	for _, p := range raw.Policies {
		pol, err := scheduler.ParsePolicy(p)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
		m.Policies = append(m.Policies, pol)
	}
	if len(m.Policies) == 0 {
		return nil, fmt.Errorf("config: %s: policies list must not be empty", path)
	}

	for _, b := range raw.Bounds {
		bk, err := scheduler.ParseBoundK(b)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
		m.Bounds = append(m.Bounds, bk)
	}
	if len(m.Bounds) == 0 {
		return nil, fmt.Errorf("config: %s: bounds list must not be empty", path)
	}

	for _, f := range raw.Faults {
		fm, err := runconfig.ParseFaultMode(f)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
		m.Faults = append(m.Faults, fm)
	}
	if len(m.Faults) == 0 {
		return nil, fmt.Errorf("config: %s: faults list must not be empty", path)
	}

	start, end, err := ParseScheduleSeedRange(raw.ScheduleSeeds)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	m.ScheduleSeedStart, m.ScheduleSeedEnd = start, end

	return m, nil
}

// ParseScheduleSeedRange accepts either "start-end" or a single value.
func ParseScheduleSeedRange(s string) (start, end uint64, err error) {
	if s == "" {
		return 0, 0, fmt.Errorf("schedule_seeds must not be empty")
	}
	if idx := strings.IndexByte(s, '-'); idx >= 0 {
		start, err = strconv.ParseUint(s[:idx], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid schedule_seeds range %q: %w", s, err)
		}
		end, err = strconv.ParseUint(s[idx+1:], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid schedule_seeds range %q: %w", s, err)
		}
		if end < start {
			return 0, 0, fmt.Errorf("invalid schedule_seeds range %q: end before start", s)
		}
		return start, end, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid schedule_seeds value %q: %w", s, err)
	}
	return v, v, nil
}

// TotalRuns returns the size of the Cartesian product, excluding the
// per-seed-file command count (known only after loading each seed).
func (m *Matrix) TotalRuns() int {
	scheduleSeeds := int(m.ScheduleSeedEnd-m.ScheduleSeedStart) + 1
	return len(m.SeedPaths) * len(m.Policies) * len(m.Bounds) * len(m.Faults) * scheduleSeeds
}
