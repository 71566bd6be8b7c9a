package pool

import (
	"time"

	"github.com/coder/quartz"
	"github.com/utkarsh5026/taskbench/internal/queue"
	"golang.org/x/time/rate"
)

// WorkerPoolOption is a functional option for configuring the worker pool.
type WorkerPoolOption func(*workerPoolConfig)

type workerPoolConfig struct {
	workerCount int
	strategy    queue.Strategy
	loadDelay   time.Duration
	rateLimit   rate.Limit
	burst       int
	pinCPU      bool
	clock       quartz.Clock

	// Hooks are stored untyped and checked against the pool's item type
	// when the pool is built.
	beforeTaskStart any
	onTaskEnd       any
}

// WithWorkerCount sets the number of concurrent workers.
// If not specified, defaults to runtime.GOMAXPROCS(0).
func WithWorkerCount(count int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if count > 0 {
			cfg.workerCount = count
		}
	}
}

// WithQueueStrategy selects the shared queue implementation Drain uses.
func WithQueueStrategy(s queue.Strategy) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		cfg.strategy = s
	}
}

// WithSimulatedLoad inserts a fixed delay before every item is processed.
// The delay applies identically in Drain and Sequential.
func WithSimulatedLoad(d time.Duration) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if d > 0 {
			cfg.loadDelay = d
		}
	}
}

// WithRateLimit caps item throughput with a token bucket.
// tasksPerSecond specifies the sustained rate and burst the bucket size.
// Every run starts from a full bucket, so Drain and Sequential are
// throttled identically.
//
// Example:
//
//	WithRateLimit(10, 5) // Allow 10 tasks/sec with burst of 5
func WithRateLimit(tasksPerSecond float64, burst int) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if tasksPerSecond > 0 && burst > 0 {
			cfg.rateLimit = rate.Limit(tasksPerSecond)
			cfg.burst = burst
		}
	}
}

// WithCPUPinning locks each worker to an OS thread pinned to its own CPU.
// The sequential runner is pinned to the first CPU.
func WithCPUPinning() WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		cfg.pinCPU = true
	}
}

// WithClock sets the clock used to time runs and to wait out simulated load.
// Defaults to the real clock.
func WithClock(c quartz.Clock) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if c != nil {
			cfg.clock = c
		}
	}
}

// WithBeforeTaskStart registers a hook called before each item is processed.
// It runs on the worker goroutine and must be safe for concurrent use.
// The hook's type parameter must match the pool's item type.
func WithBeforeTaskStart[T any](fn func(item T)) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if fn != nil {
			cfg.beforeTaskStart = fn
		}
	}
}

// WithOnTaskEnd registers a hook called after each item with the error the
// process function returned. It runs on the worker goroutine and must be
// safe for concurrent use. The hook's type parameter must match the pool's
// item type.
func WithOnTaskEnd[T any](fn func(item T, err error)) WorkerPoolOption {
	return func(cfg *workerPoolConfig) {
		if fn != nil {
			cfg.onTaskEnd = fn
		}
	}
}
