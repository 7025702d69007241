package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dutsim/nvmelite/internal/model"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadParsesCommands(t *testing.T) {
	path := writeSeedFile(t, `{
		"seed_id": "s1",
		"commands": [
			{"type": "WRITE", "lba": 0, "len": 2, "pattern": 170},
			{"type": "WRITE_VISIBLE", "lba": 0, "len": 2},
			{"type": "READ", "lba": 0, "len": 2},
			{"type": "FENCE"},
		],
	}`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.SeedID != "s1" {
		t.Fatalf("want seed_id=s1 got %q", s.SeedID)
	}
	if len(s.Commands) != 4 {
		t.Fatalf("want 4 commands got %d", len(s.Commands))
	}
	if s.Commands[0].Kind != model.KindWrite || s.Commands[0].Pattern != 170 {
		t.Fatalf("unexpected first command: %+v", s.Commands[0])
	}
	if s.Commands[3].Kind != model.KindFence {
		t.Fatalf("unexpected fourth command: %+v", s.Commands[3])
	}
}

func TestLoadToleratesCommentsAndTrailingCommas(t *testing.T) {
	path := writeSeedFile(t, `{
		// a hand-edited fixture
		"seed_id": "s2",
		"commands": [
			{"type": "FENCE"}, // trailing comment
		],
	}`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.SeedID != "s2" || len(s.Commands) != 1 {
		t.Fatalf("unexpected result: %+v", s)
	}
}

func TestLoadRejectsUnknownCommandType(t *testing.T) {
	path := writeSeedFile(t, `{"seed_id": "s3", "commands": [{"type": "BOGUS"}]}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown command type")
	}
}

func TestLoadRejectsMissingSeedID(t *testing.T) {
	path := writeSeedFile(t, `{"commands": []}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing seed_id")
	}
}

func TestLoadRejectsUnreadableFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
