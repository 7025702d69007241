// Package seed loads a workload: an identifier plus an ordered sequence of
// commands. Seed files are hand-edited fixtures in practice, so parsing
// tolerates the JSON-with-comments/trailing-commas style hujson exists for
// before handing off to strict encoding/json.
package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"

	"github.com/dutsim/nvmelite/internal/model"
)

// Seed is a loaded workload: its identifier and ordered commands.
type Seed struct {
	SeedID   string
	Commands []model.Command
}

type rawCommand struct {
	Type    string `json:"type"`
	LBA     uint64 `json:"lba"`
	Len     uint32 `json:"len"`
	Pattern uint32 `json:"pattern"`
}

type rawSeed struct {
	SeedID   string       `json:"seed_id"`
	Commands []rawCommand `json:"commands"`
}

// Load reads and parses a seed file at path. A malformed or unreadable
// seed is an input error, fatal to the run it was meant to drive.
func Load(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("seed: parse %s: %w", path, err)
	}

	var raw rawSeed
	if err := json.Unmarshal(std, &raw); err != nil {
		return nil, fmt.Errorf("seed: decode %s: %w", path, err)
	}
	if raw.SeedID == "" {
		return nil, fmt.Errorf("seed: %s: missing seed_id", path)
	}

	commands := make([]model.Command, 0, len(raw.Commands))
	for i, rc := range raw.Commands {
		kind, err := parseCommandType(rc.Type)
		if err != nil {
			return nil, fmt.Errorf("seed: %s: command %d: %w", path, i, err)
		}
		commands = append(commands, model.Command{
			Kind:    kind,
			LBA:     rc.LBA,
			Len:     rc.Len,
			Pattern: rc.Pattern,
		})
	}

	return &Seed{SeedID: raw.SeedID, Commands: commands}, nil
}

func parseCommandType(s string) (model.CommandKind, error) {
	switch s {
	case "WRITE":
		return model.KindWrite, nil
	case "READ":
		return model.KindRead, nil
	case "FENCE":
		return model.KindFence, nil
	case "WRITE_VISIBLE":
		return model.KindWriteVisible, nil
	default:
		return 0, fmt.Errorf("unknown command type %q", s)
	}
}
