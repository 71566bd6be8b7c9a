package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/utkarsh5026/taskbench/pool"
	"github.com/utkarsh5026/taskbench/task"
)

// ErrFailureMismatch is returned when the two phases of an iteration fail
// on different numbers of tasks of some kind.
var ErrFailureMismatch = errors.New("sequential and concurrent failure counts differ")

// Result is the outcome of a benchmark run.
type Result struct {
	RunID      uuid.UUID
	Config     Config
	Sequential PhaseResult
	Concurrent PhaseResult
	Comparison Comparison

	// Failures counts failed tasks per kind in one iteration. Kinds with no
	// failures are omitted.
	Failures map[task.Kind]int
}

// Runner executes a benchmark described by a Config.
type Runner struct {
	cfg      Config
	out      io.Writer
	clock    quartz.Clock
	progress bool
	batch    []task.Task
	evaluate func(task.Task) (task.Outcome, error)

	mu sync.Mutex // guards out for verbose lines
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithOutput sets where the progress bar and verbose task lines are
// written. Defaults to os.Stderr.
func WithOutput(w io.Writer) RunnerOption {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithClock sets the clock both phases are timed with.
func WithClock(c quartz.Clock) RunnerOption {
	return func(r *Runner) {
		if c != nil {
			r.clock = c
		}
	}
}

// WithProgress enables or disables the iteration progress bar.
func WithProgress(enabled bool) RunnerOption {
	return func(r *Runner) {
		r.progress = enabled
	}
}

// WithBatch runs a fixed batch instead of generating one from the
// configured size and seed.
func WithBatch(batch []task.Task) RunnerOption {
	return func(r *Runner) {
		r.batch = batch
	}
}

// NewRunner creates a runner for cfg. cfg is expected to be validated.
func NewRunner(cfg Config, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:      cfg,
		out:      os.Stderr,
		clock:    quartz.NewReal(),
		progress: true,
		evaluate: task.Evaluate,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run generates the batch once, runs the warmup rounds, then measures the
// configured number of iterations. Each iteration runs the sequential phase
// followed by the concurrent phase over the same batch.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	batch := r.batch
	if batch == nil {
		batch = task.Generate(r.cfg.BatchSize, r.cfg.Seed)
	}

	wp := pool.NewWorkerPool[task.Task](r.poolOptions()...)

	for w := range r.cfg.Warmup {
		if _, err := r.iterate(ctx, wp, batch); err != nil {
			return nil, fmt.Errorf("warmup %d: %w", w+1, err)
		}
		runtime.GC()
	}

	iterations := max(r.cfg.Iterations, 1)
	bar := r.makeProgressBar(iterations)

	seqRuns := make([]pool.Stats, 0, iterations)
	conRuns := make([]pool.Stats, 0, iterations)
	var failures [task.NumKinds]int64

	for i := range iterations {
		if bar != nil {
			bar.Describe(fmt.Sprintf("Iteration %d/%d", i+1, iterations))
		}

		it, err := r.iterate(ctx, wp, batch)
		if err != nil {
			return nil, fmt.Errorf("iteration %d: %w", i+1, err)
		}
		seqRuns = append(seqRuns, it.sequential)
		conRuns = append(conRuns, it.concurrent)
		failures = it.failures

		if bar != nil {
			_ = bar.Add(1)
		}
		if i < iterations-1 {
			runtime.GC()
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}

	seq := summarize("Sequential", seqRuns)
	con := summarize("Concurrent", conRuns)

	return &Result{
		RunID:      uuid.New(),
		Config:     r.cfg,
		Sequential: seq,
		Concurrent: con,
		Comparison: Compare(seq.Elapsed, con.Elapsed),
		Failures:   failureMap(failures),
	}, nil
}

type iteration struct {
	sequential pool.Stats
	concurrent pool.Stats
	failures   [task.NumKinds]int64
}

// iterate runs both phases once and checks that they failed on the same
// kinds of task.
func (r *Runner) iterate(ctx context.Context, wp *pool.WorkerPool[task.Task], batch []task.Task) (iteration, error) {
	seqTally := &tally{evaluate: r.evaluate}
	seq, err := wp.Sequential(ctx, batch, seqTally.process)
	if err != nil {
		return iteration{}, fmt.Errorf("sequential run: %w", err)
	}

	conTally := &tally{evaluate: r.evaluate}
	con, err := wp.Drain(ctx, batch, conTally.process)
	if err != nil {
		return iteration{}, fmt.Errorf("concurrent run: %w", err)
	}

	seqFailures, conFailures := seqTally.snapshot(), conTally.snapshot()
	if seqFailures != conFailures {
		return iteration{}, fmt.Errorf("%w: sequential %v, concurrent %v",
			ErrFailureMismatch, failureMap(seqFailures), failureMap(conFailures))
	}

	return iteration{sequential: seq, concurrent: con, failures: seqFailures}, nil
}

// tally evaluates tasks and counts failures per kind.
type tally struct {
	evaluate func(task.Task) (task.Outcome, error)
	failed   [task.NumKinds]atomic.Int64
}

func (t *tally) process(_ context.Context, item task.Task) error {
	_, err := t.evaluate(item)
	if err != nil {
		t.failed[item.Kind()].Add(1)
	}
	return err
}

func (t *tally) snapshot() [task.NumKinds]int64 {
	var counts [task.NumKinds]int64
	for k := range t.failed {
		counts[k] = t.failed[k].Load()
	}
	return counts
}

func failureMap(counts [task.NumKinds]int64) map[task.Kind]int {
	m := make(map[task.Kind]int)
	for k, n := range counts {
		if n > 0 {
			m[task.Kind(k)] = int(n)
		}
	}
	return m
}

func (r *Runner) poolOptions() []pool.WorkerPoolOption {
	opts := []pool.WorkerPoolOption{
		pool.WithWorkerCount(r.cfg.Workers),
		pool.WithQueueStrategy(r.cfg.Strategy),
		pool.WithClock(r.clock),
	}
	if d := r.cfg.simulatedDelay(); d > 0 {
		opts = append(opts, pool.WithSimulatedLoad(d))
	}
	if r.cfg.RateLimit > 0 {
		opts = append(opts, pool.WithRateLimit(r.cfg.RateLimit, max(r.cfg.Burst, 1)))
	}
	if r.cfg.PinCPU {
		opts = append(opts, pool.WithCPUPinning())
	}
	if r.cfg.Verbose {
		opts = append(opts, pool.WithOnTaskEnd(r.printResult))
	}
	return opts
}

// printResult writes one line per finished task. Successful tasks are
// evaluated again to render their value, so verbose runs are not meant to
// be timed.
func (r *Runner) printResult(item task.Task, err error) {
	var out task.Outcome
	if err == nil {
		out, err = r.evaluate(item)
	}
	line := out.String()
	if err != nil {
		line = err.Error()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.out, line)
}

func (r *Runner) makeProgressBar(iterations int) *progressbar.ProgressBar {
	if !r.progress {
		return nil
	}
	return progressbar.NewOptions(iterations,
		progressbar.OptionSetDescription("Running iterations"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
