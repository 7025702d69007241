package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dutsim/nvmelite/internal/runconfig"
	"github.com/dutsim/nvmelite/internal/scheduler"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "matrix.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadParsesFullMatrix(t *testing.T) {
	path := writeConfigFile(t, `
seeds:
  - seeds/a.json
  - seeds/b.json
policies:
  - FIFO
  - ADVERSARIAL
bounds:
  - inf
  - "2"
faults:
  - NONE
  - TIMEOUT
schedule_seeds: "10-12"
git_commit: deadbeef
`)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(m.SeedPaths) != 2 || len(m.Policies) != 2 || len(m.Bounds) != 2 || len(m.Faults) != 2 {
		t.Fatalf("unexpected matrix dimensions: %+v", m)
	}
	if m.ScheduleSeedStart != 10 || m.ScheduleSeedEnd != 12 {
		t.Fatalf("unexpected schedule seed range: %d-%d", m.ScheduleSeedStart, m.ScheduleSeedEnd)
	}
	if m.SchedulerVersion != "v1.0" {
		t.Fatalf("want default scheduler_version v1.0, got %q", m.SchedulerVersion)
	}
	if m.GitCommit != "deadbeef" {
		t.Fatalf("want git_commit=deadbeef, got %q", m.GitCommit)
	}
	if got := m.TotalRuns(); got != 2*2*2*2*3 {
		t.Fatalf("want %d total runs, got %d", 2*2*2*2*3, got)
	}
	if m.Policies[1] != scheduler.PolicyAdversarial {
		t.Fatalf("unexpected policy parse: %v", m.Policies[1])
	}
	if m.Faults[1] != runconfig.FaultTimeout {
		t.Fatalf("unexpected fault parse: %v", m.Faults[1])
	}
}

func TestLoadSingleScheduleSeed(t *testing.T) {
	path := writeConfigFile(t, `
seeds: [seeds/a.json]
policies: [FIFO]
bounds: [inf]
faults: [NONE]
schedule_seeds: "5"
`)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if m.ScheduleSeedStart != 5 || m.ScheduleSeedEnd != 5 {
		t.Fatalf("unexpected single schedule seed: %+v", m)
	}
}

func TestLoadRejectsEmptyLists(t *testing.T) {
	path := writeConfigFile(t, `
seeds: []
policies: [FIFO]
bounds: [inf]
faults: [NONE]
schedule_seeds: "0"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty seeds list")
	}
}

func TestLoadRejectsBadRange(t *testing.T) {
	path := writeConfigFile(t, `
seeds: [a.json]
policies: [FIFO]
bounds: [inf]
faults: [NONE]
schedule_seeds: "9-3"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for inverted schedule_seeds range")
	}
}
