package pool

import (
	"context"
	"fmt"
	"runtime"

	"github.com/utkarsh5026/taskbench/internal/cpu"
	"github.com/utkarsh5026/taskbench/internal/queue"
)

// worker pops from the shared queue until it is empty, processing each item
// outside the queue's critical section. It returns early only when a sibling
// has aborted the run.
func (wp *WorkerPool[T]) worker(
	ctx context.Context,
	id int,
	src queue.Source[T],
	r *run,
	processFn ProcessFunc[T],
) error {
	if wp.pinCPU {
		defer cpu.SetupWorkerAffinity(id)()
	}

	for !r.aborted.Load() {
		item, ok := src.Pop()
		if !ok {
			return nil
		}
		if err := wp.execute(ctx, id, item, r, processFn); err != nil {
			r.aborted.Store(true)
			return err
		}
	}
	return nil
}

// execute runs the per-item steps shared by both runners: rate limiting,
// simulated load, hooks and processing. The returned error is fatal to the
// run; item errors are only counted.
func (wp *WorkerPool[T]) execute(
	ctx context.Context,
	worker int,
	item T,
	r *run,
	processFn ProcessFunc[T],
) error {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
	}

	if wp.loadDelay > 0 {
		wp.simulateLoad()
	}

	if wp.beforeTaskStart != nil {
		wp.beforeTaskStart(item)
	}

	itemErr, fatal := processWithRecovery(ctx, worker, item, processFn)
	if fatal != nil {
		return fatal
	}

	r.processed.Add(1)
	if itemErr != nil {
		r.failed.Add(1)
	}

	if wp.onTaskEnd != nil {
		wp.onTaskEnd(item, itemErr)
	}
	return nil
}

// simulateLoad blocks for the configured delay on the pool clock.
func (wp *WorkerPool[T]) simulateLoad() {
	t := wp.clock.NewTimer(wp.loadDelay, "pool", "simulateLoad")
	<-t.C
}

// processWithRecovery calls processFn and converts a panic into a
// *PanicError carrying the stack trace.
func processWithRecovery[T any](
	ctx context.Context,
	worker int,
	item T,
	processFn ProcessFunc[T],
) (itemErr error, fatal error) {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			fatal = &PanicError{Worker: worker, Value: r, Stack: buf[:n]}
		}
	}()

	return processFn(ctx, item), nil
}
