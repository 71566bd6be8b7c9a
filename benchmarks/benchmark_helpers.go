package benchmarks

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/utkarsh5026/taskbench/internal/queue"
	"github.com/utkarsh5026/taskbench/pool"
	"github.com/utkarsh5026/taskbench/task"
)

const benchSeed = 42

// strategyConfig defines a benchmark configuration for a queue strategy
type strategyConfig struct {
	name string
	opts []pool.WorkerPoolOption
}

// getAllStrategies returns every shared queue strategy at the given worker count
func getAllStrategies(workerCount int) []strategyConfig {
	configs := make([]strategyConfig, 0, len(queue.Strategies()))
	for _, s := range queue.Strategies() {
		configs = append(configs, strategyConfig{
			name: s.String(),
			opts: []pool.WorkerPoolOption{
				pool.WithWorkerCount(workerCount),
				pool.WithQueueStrategy(s),
			},
		})
	}
	return configs
}

// runStrategyBenchmark runs a benchmark function for all strategies
func runStrategyBenchmark(b *testing.B, strategies []strategyConfig, benchFunc func(b *testing.B, s strategyConfig)) {
	for _, strategy := range strategies {
		b.Run(strategy.name, func(b *testing.B) {
			benchFunc(b, strategy)
		})
	}
}

// evaluateTask is the process function used by every benchmark. Data
// failures are counted by the pool and are not benchmark errors.
func evaluateTask(_ context.Context, t task.Task) error {
	_, err := task.Evaluate(t)
	return err
}

// batchOf returns a batch of n tasks, repeating each generated task weight
// times to make per-item work heavier.
func batchOf(n, weight int) []task.Task {
	base := task.Generate(n, benchSeed)
	if weight <= 1 {
		return base
	}
	batch := make([]task.Task, 0, n*weight)
	for _, t := range base {
		for range weight {
			batch = append(batch, t)
		}
	}
	return batch
}

// drainBatch runs one concurrent drain and fails the benchmark on a fatal
// error.
func drainBatch(b *testing.B, wp *pool.WorkerPool[task.Task], batch []task.Task) pool.Stats {
	b.Helper()
	stats, err := wp.Drain(context.Background(), batch, evaluateTask)
	if err != nil {
		b.Fatal(err)
	}
	return stats
}

// reportThroughput reports tasks/sec over the whole benchmark loop.
func reportThroughput(b *testing.B, tasksPerOp int) {
	nsPerOp := float64(b.Elapsed().Nanoseconds()) / float64(b.N)
	if nsPerOp == 0 {
		return
	}
	b.ReportMetric(float64(tasksPerOp)/nsPerOp*1e9, "tasks/sec")
}

func workersName(workers int) string {
	return fmt.Sprintf("workers_%d", workers)
}

// simulatedDelay mirrors the CLI's simulated load mode.
const simulatedDelay = 100 * time.Microsecond
