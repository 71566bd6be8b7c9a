// Package pool provides a small generic worker pool that drains a fixed
// batch of items through a shared queue, plus a sequential runner that
// processes the same batch in order for baseline timing.
//
// The primary type is WorkerPool[T]. Drain loads a fresh queue from the
// batch, starts exactly WorkerCount goroutines that pop until the queue is
// empty, joins them and reports the elapsed wall time. Sequential runs the
// same per-item steps on the calling goroutine.
//
// # Basic Usage
//
//	ctx := context.Background()
//	items := []int{1, 2, 3, 4}
//	wp := pool.NewWorkerPool[int](pool.WithWorkerCount(4))
//	stats, err := wp.Drain(ctx, items, func(ctx context.Context, n int) error {
//	    return nil
//	})
//
// # Item Errors and Panics
//
// An error returned by the process function is counted in Stats.Failed and
// handed to the OnTaskEnd hook; the worker keeps draining. A panic is not
// tolerated: it stops the run, and Drain or Sequential returns a
// *PanicError with no stats.
//
// # Configuration Options
//
//   - WithWorkerCount(n): number of workers (default: GOMAXPROCS)
//   - WithQueueStrategy(s): shared queue implementation (default: mutex deque)
//   - WithSimulatedLoad(d): fixed delay before every item, in both runners
//   - WithRateLimit(perSecond, burst): token bucket applied before every item
//   - WithCPUPinning(): pin each worker to its own CPU
//   - WithClock(c): clock used for timing and simulated load
//   - WithBeforeTaskStart(fn), WithOnTaskEnd(fn): per-item hooks
//
// Workers do not observe context cancellation between items; once started,
// a run processes the whole batch. The context only bounds rate limiter waits.
package pool
