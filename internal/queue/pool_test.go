package queue

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestRunExecutesEveryIndexExactlyOnce(t *testing.T) {
	const n = 200
	var seen [n]int32
	errs := Run(context.Background(), n, 8, func(_ context.Context, i int) error {
		atomic.AddInt32(&seen[i], 1)
		return nil
	})
	for i, e := range errs {
		if e != nil {
			t.Fatalf("index %d: unexpected error %v", i, e)
		}
	}
	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d ran %d times, want 1", i, c)
		}
	}
}

func TestRunCollectsPerIndexErrors(t *testing.T) {
	boom := errors.New("boom")
	errs := Run(context.Background(), 5, 2, func(_ context.Context, i int) error {
		if i == 3 {
			return boom
		}
		return nil
	})
	for i, e := range errs {
		if i == 3 {
			if !errors.Is(e, boom) {
				t.Fatalf("index 3: want boom, got %v", e)
			}
			continue
		}
		if e != nil {
			t.Fatalf("index %d: want nil, got %v", i, e)
		}
	}
}

func TestRunZeroItems(t *testing.T) {
	called := false
	errs := Run(context.Background(), 0, 4, func(_ context.Context, _ int) error {
		called = true
		return nil
	})
	if called {
		t.Fatal("task should never run for n=0")
	}
	if len(errs) != 0 {
		t.Fatalf("want empty errs, got %d", len(errs))
	}
}

func TestRunStopsFeedingOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var ran int32
	Run(ctx, 1000, 4, func(_ context.Context, i int) error {
		n := atomic.AddInt32(&ran, 1)
		if n == 10 {
			cancel()
		}
		return nil
	})
	if ran >= 1000 {
		t.Fatalf("expected cancellation to stop the feed before all items ran, got %d", ran)
	}
}

func TestRunDefaultsWorkersToAvailableParallelism(t *testing.T) {
	errs := Run(context.Background(), 3, 0, func(_ context.Context, _ int) error { return nil })
	if len(errs) != 3 {
		t.Fatalf("want 3 results, got %d", len(errs))
	}
}
