package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/dutsim/nvmelite"
)

// RunOneCmd builds the run-one command.
func RunOneCmd() *Command {
	fs := flag.NewFlagSet("run-one", flag.ContinueOnError)
	seedFile := fs.String("seed-file", "", "path to the seed workload file (required)")
	scheduleSeed := fs.Uint64("schedule-seed", 0, "64-bit PRNG seed driving interleaving (required)")
	policyStr := fs.String("policy", "", "FIFO|RANDOM|ADVERSARIAL|BATCHED (required)")
	boundStr := fs.String("bound-k", "", "reorder bound: inf or a decimal integer (required)")
	outLog := fs.String("out-log", "", "path to write the trace file (required)")
	faultStr := fs.String("fault-mode", "NONE", "NONE|TIMEOUT|RESET")
	windowStr := fs.String("submit-window", "inf", "max pending commands: inf or a decimal integer")
	schedVersion := fs.String("scheduler-version", nvmelite.DefaultSchedulerVersion, "scheduler_version recorded in the trace header")
	gitCommit := fs.String("git-commit", "unknown", `git_commit recorded in the trace header, or "auto" to resolve via git`)

	return &Command{
		Flags: fs,
		Usage: "run-one --seed-file <path> --schedule-seed <u64> --policy <p> --bound-k <bk> --out-log <path> [flags]",
		Short: "execute a single deterministic run and write its trace",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if *seedFile == "" || !fs.Changed("schedule-seed") || *policyStr == "" || *boundStr == "" || *outLog == "" {
				return fmt.Errorf("--seed-file, --schedule-seed, --policy, --bound-k, and --out-log are required")
			}

			cfg, err := buildRunConfig(*policyStr, *boundStr, *faultStr, *windowStr, *schedVersion, *gitCommit, *scheduleSeed)
			if err != nil {
				return err
			}

			workload, err := nvmelite.LoadSeed(*seedFile)
			if err != nil {
				return err
			}
			cfg.SeedID = workload.SeedID

			if err := os.MkdirAll(filepath.Dir(*outLog), 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}

			sink := nvmelite.NewFileSink(*outLog)
			result, err := nvmelite.RunOne(cfg, workload, sink, nil)
			if err != nil {
				return err
			}

			o.Printf("run_id=%s pending_left=%d pending_peak=%d\n", result.RunID, result.PendingLeft, result.PendingPeak)
			return nil
		},
	}
}

func buildRunConfig(policyStr, boundStr, faultStr, windowStr, schedVersion, gitCommit string, scheduleSeed uint64) (nvmelite.RunConfig, error) {
	policy, err := nvmelite.ParsePolicy(policyStr)
	if err != nil {
		return nvmelite.RunConfig{}, err
	}
	bound, err := nvmelite.ParseBoundK(boundStr)
	if err != nil {
		return nvmelite.RunConfig{}, err
	}
	fault, err := nvmelite.ParseFaultMode(faultStr)
	if err != nil {
		return nvmelite.RunConfig{}, err
	}
	window, err := nvmelite.ParseSubmitWindow(windowStr)
	if err != nil {
		return nvmelite.RunConfig{}, err
	}
	resolvedCommit, err := nvmelite.ResolveGitCommit(gitCommit)
	if err != nil {
		return nvmelite.RunConfig{}, err
	}

	return nvmelite.RunConfig{
		ScheduleSeed:     scheduleSeed,
		Policy:           policy,
		BoundK:           bound,
		FaultMode:        fault,
		SubmitWindow:     window,
		SchedulerVersion: schedVersion,
		GitCommit:        resolvedCommit,
	}, nil
}
