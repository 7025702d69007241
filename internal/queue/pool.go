// Package queue runs a bounded pool of goroutines over an independent unit
// of work. It is generalized from the teacher's one-goroutine-per-io_uring-
// queue pattern to one-goroutine-per-matrix-cell: each worker pulls the
// next index off a shared channel and runs it to completion with no
// shared mutable state other than the caller-supplied result slot.
package queue

import (
	"context"
	"runtime"
	"sync"
)

// Task is the unit of work Run executes: execute the item at index i and
// report any error. Implementations own everything they touch; Run
// guarantees no two workers ever run the same index concurrently.
type Task func(ctx context.Context, i int) error

// Run executes task(ctx, i) for every i in [0, n) across workers
// concurrently-bounded goroutines, stopping early if ctx is cancelled.
// workers <= 0 defaults to min(n, GOMAXPROCS). It returns a slice of
// length n holding each index's error (nil entries mean success).
func Run(ctx context.Context, n, workers int, task Task) []error {
	errs := make([]error, n)
	if n == 0 {
		return errs
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indices {
				errs[i] = task(ctx, i)
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case indices <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(indices)
	wg.Wait()
	return errs
}
