package pool

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
	"github.com/utkarsh5026/taskbench/internal/cpu"
	"github.com/utkarsh5026/taskbench/internal/queue"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ProcessFunc processes a single item. A returned error marks the item as
// failed; it does not stop the run.
type ProcessFunc[T any] func(ctx context.Context, item T) error

// Stats summarises one run.
type Stats struct {
	Elapsed   time.Duration
	Processed int64
	Failed    int64
	Workers   int
}

// Throughput returns processed items per second.
func (s Stats) Throughput() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Processed) / s.Elapsed.Seconds()
}

// WorkerPool drains batches of T with a fixed number of workers.
//
// Type parameters:
//   - T: The item type
type WorkerPool[T any] struct {
	workerCount int
	strategy    queue.Strategy
	loadDelay   time.Duration
	rateLimit   rate.Limit
	burst       int
	pinCPU      bool
	clock       quartz.Clock

	beforeTaskStart func(T)
	onTaskEnd       func(T, error)
}

// NewWorkerPool creates a new worker pool with the given options.
// Default configuration: workers = GOMAXPROCS, mutex queue, real clock.
func NewWorkerPool[T any](opts ...WorkerPoolOption) *WorkerPool[T] {
	cfg := &workerPoolConfig{
		workerCount: runtime.GOMAXPROCS(0),
		strategy:    queue.StrategyMutex,
		clock:       quartz.NewReal(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	beforeTaskStart, onTaskEnd := checkHooks[T](cfg)

	return &WorkerPool[T]{
		workerCount:     cfg.workerCount,
		strategy:        cfg.strategy,
		loadDelay:       cfg.loadDelay,
		rateLimit:       cfg.rateLimit,
		burst:           cfg.burst,
		pinCPU:          cfg.pinCPU,
		clock:           cfg.clock,
		beforeTaskStart: beforeTaskStart,
		onTaskEnd:       onTaskEnd,
	}
}

// WorkerCount returns the number of workers Drain starts.
func (wp *WorkerPool[T]) WorkerCount() int {
	return wp.workerCount
}

// Strategy returns the shared queue implementation Drain uses.
func (wp *WorkerPool[T]) Strategy() queue.Strategy {
	return wp.strategy
}

// Drain processes items concurrently. It loads a fresh queue from items,
// starts the timer, runs exactly WorkerCount workers until the queue is
// empty, joins them and stops the timer.
//
// Items are processed in no particular order, but every item is processed
// exactly once. Item errors are counted, not returned. If any worker panics
// the remaining workers stop after their current item and Drain returns a
// *PanicError with zero Stats.
func (wp *WorkerPool[T]) Drain(ctx context.Context, items []T, processFn ProcessFunc[T]) (Stats, error) {
	src := queue.New(wp.strategy, items)
	r := wp.newRun()

	g, gctx := errgroup.WithContext(ctx)

	start := wp.clock.Now()
	for id := range wp.workerCount {
		g.Go(func() error {
			return wp.worker(gctx, id, src, r, processFn)
		})
	}

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	elapsed := wp.clock.Since(start)

	return Stats{
		Elapsed:   elapsed,
		Processed: r.processed.Load(),
		Failed:    r.failed.Load(),
		Workers:   wp.workerCount,
	}, nil
}

// Sequential processes items in order on the calling goroutine, applying
// the same rate limit, simulated load and hooks as Drain. It returns a
// *PanicError with zero Stats if processing panics.
func (wp *WorkerPool[T]) Sequential(ctx context.Context, items []T, processFn ProcessFunc[T]) (Stats, error) {
	if wp.pinCPU {
		defer cpu.SetupWorkerAffinity(0)()
	}

	r := wp.newRun()

	start := wp.clock.Now()
	for _, item := range items {
		if err := wp.execute(ctx, sequentialWorker, item, r, processFn); err != nil {
			return Stats{}, err
		}
	}
	elapsed := wp.clock.Since(start)

	return Stats{
		Elapsed:   elapsed,
		Processed: r.processed.Load(),
		Failed:    r.failed.Load(),
		Workers:   1,
	}, nil
}

// run holds the state of a single Drain or Sequential call.
type run struct {
	limiter   *rate.Limiter
	processed atomic.Int64
	failed    atomic.Int64
	aborted   atomic.Bool
}

// newRun builds per-run state. Each run gets its own limiter with a full
// bucket.
func (wp *WorkerPool[T]) newRun() *run {
	r := &run{}
	if wp.rateLimit > 0 {
		r.limiter = rate.NewLimiter(wp.rateLimit, wp.burst)
	}
	return r
}
