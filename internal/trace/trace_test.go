package trace

import (
	"os"
	"strings"
	"testing"

	"github.com/dutsim/nvmelite/internal/model"
	"github.com/dutsim/nvmelite/internal/runconfig"
	"github.com/dutsim/nvmelite/internal/scheduler"
)

func TestEmitterGrammar(t *testing.T) {
	e := NewEmitter()
	cfg := runconfig.Config{
		SeedID:           "s1",
		ScheduleSeed:     7,
		Policy:           scheduler.PolicyFIFO,
		BoundK:           scheduler.InfiniteBound(),
		FaultMode:        runconfig.FaultNone,
		SubmitWindow:     runconfig.InfiniteWindow(),
		SchedulerVersion: "v1.0",
		GitCommit:        "deadbeef",
	}
	e.Header(cfg.RunID(), cfg, 1)
	e.Submit(0, model.KindFence)
	e.Fence(0)
	e.Complete(0, model.StatusOK, 0)
	e.RunEnd(0, 1)

	want := []string{
		"RUN_HEADER(run_id=s1_FIFO_inf_7_NONE, seed_id=s1, schedule_seed=7, policy=FIFO, bound_k=inf, fault_mode=NONE, n_cmds=1, submit_window=inf, scheduler_version=v1.0, git_commit=deadbeef)",
		"SUBMIT(cmd_id=0, cmd_type=FENCE)",
		"FENCE(fence_id=0)",
		"COMPLETE(cmd_id=0, status=OK, out=0)",
		"RUN_END(pending_left=0, pending_peak=1)",
	}
	got := e.Lines()
	if len(got) != len(want) {
		t.Fatalf("got %d lines want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestMemorySinkFlush(t *testing.T) {
	e := NewEmitter()
	e.Submit(0, model.KindWrite)
	sink := NewMemorySink()
	if err := e.Flush(sink); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if len(sink.Written) != 1 || sink.Written[0] != "SUBMIT(cmd_id=0, cmd_type=WRITE)" {
		t.Fatalf("unexpected sink contents: %v", sink.Written)
	}
	if len(e.Lines()) != 0 {
		t.Fatal("emitter must clear its buffer after flush")
	}
}

func TestFileSinkWritesTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(dir + "/trace.log")
	if err := sink.WriteAll([]string{"A", "B"}); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	raw, err := os.ReadFile(sink.Path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	data := string(raw)
	if data != "A\nB\n" {
		t.Fatalf("got %q", data)
	}
	if !strings.HasSuffix(data, "\n") {
		t.Fatal("trace file must end with a newline")
	}
}
