package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	flag "github.com/spf13/pflag"

	"github.com/dutsim/nvmelite"
	"github.com/dutsim/nvmelite/internal/logging"
	"github.com/dutsim/nvmelite/internal/queue"
)

// RunMatrixCmd builds the run-matrix command.
func RunMatrixCmd() *Command {
	fs := flag.NewFlagSet("run-matrix", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to the matrix config file (required)")
	outDir := fs.String("out-dir", "", "directory to write one trace file per cell into (required)")
	scheduleSeedsOverride := fs.String("schedule-seeds", "", "override the config's schedule_seeds range, e.g. \"0-9\"")
	windowStr := fs.String("submit-window", "inf", "max pending commands applied to every cell: inf or a decimal integer")
	gitCommit := fs.String("git-commit", "unknown", `git_commit recorded in every trace header (overrides the config's git_commit), or "auto" to resolve via git`)
	workers := fs.Int("workers", 0, "worker goroutines running cells concurrently (default: GOMAXPROCS)")

	return &Command{
		Flags: fs,
		Usage: "run-matrix --config <path> --out-dir <dir> [flags]",
		Short: "execute every cell of a config's run matrix",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if *configPath == "" || *outDir == "" {
				return fmt.Errorf("--config and --out-dir are required")
			}

			matrix, err := nvmelite.LoadMatrix(*configPath)
			if err != nil {
				return err
			}
			if *scheduleSeedsOverride != "" {
				if err := applyScheduleSeedsOverride(matrix, *scheduleSeedsOverride); err != nil {
					return err
				}
			}

			window, err := nvmelite.ParseSubmitWindow(*windowStr)
			if err != nil {
				return err
			}
			commit := *gitCommit
			if !fs.Changed("git-commit") && matrix.GitCommit != "" {
				commit = matrix.GitCommit
			}
			resolvedCommit, err := nvmelite.ResolveGitCommit(commit)
			if err != nil {
				return err
			}

			seedIDs := make(map[string]string, len(matrix.SeedPaths))
			workloads := make(map[string]*nvmelite.Seed, len(matrix.SeedPaths))
			for _, p := range matrix.SeedPaths {
				s, err := nvmelite.LoadSeed(p)
				if err != nil {
					return err
				}
				seedIDs[p] = s.SeedID
				workloads[p] = s
			}

			cells, err := nvmelite.ExpandCells(matrix, seedIDs, window, resolvedCommit)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(*outDir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}

			logging.Infof("expanded matrix into %d cells, writing traces to %s", len(cells), *outDir)

			total := len(cells)
			var done int64
			cellErrs := queue.Run(ctx, total, *workers, func(_ context.Context, i int) error {
				cell := cells[i]
				sink := nvmelite.NewFileSink(filepath.Join(*outDir, cell.Config.RunID()+".log"))
				_, err := nvmelite.RunOne(cell.Config, workloads[cell.SeedPath], sink, nil)
				if err != nil {
					logging.Errorf("cell %s failed: %v", cell.Config.RunID(), err)
					return err
				}
				if n := atomic.AddInt64(&done, 1); n%100 == 0 {
					logging.Infof("progress %d/%d", n, total)
				}
				return nil
			})

			completed, errored := 0, 0
			for i, err := range cellErrs {
				if err != nil {
					o.ErrPrintln("error:", cells[i].Config.RunID()+":", err)
					errored++
					continue
				}
				completed++
			}

			o.Printf("completed=%d errors=%d total=%d\n", completed, errored, total)
			if errored > 0 {
				return fmt.Errorf("%d of %d cells failed", errored, total)
			}
			return nil
		},
	}
}

func applyScheduleSeedsOverride(m *nvmelite.Matrix, spec string) error {
	start, end, err := nvmelite.ParseScheduleSeedRange(spec)
	if err != nil {
		return err
	}
	m.ScheduleSeedStart, m.ScheduleSeedEnd = start, end
	return nil
}
