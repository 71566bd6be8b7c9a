package bench

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/utkarsh5026/taskbench/pool"
)

// PhaseResult aggregates the measured iterations of one phase. Elapsed is
// the median iteration; Processed, Failed and Throughput come from that
// same iteration.
type PhaseResult struct {
	Name       string
	Elapsed    time.Duration
	Min        time.Duration
	Mean       time.Duration
	Max        time.Duration
	StdDev     time.Duration
	Processed  int64
	Failed     int64
	Throughput float64
	Workers    int
	Iterations []time.Duration
}

// summarize picks the median run by elapsed time and computes the spread
// across all runs.
func summarize(name string, runs []pool.Stats) PhaseResult {
	if len(runs) == 0 {
		return PhaseResult{Name: name}
	}

	sorted := slices.Clone(runs)
	slices.SortStableFunc(sorted, func(a, b pool.Stats) int {
		return cmp.Compare(a.Elapsed, b.Elapsed)
	})
	median := sorted[len(sorted)/2]

	times := make([]time.Duration, len(runs))
	for i, r := range runs {
		times[i] = r.Elapsed
	}

	var sum time.Duration
	for _, t := range times {
		sum += t
	}
	mean := sum / time.Duration(len(times))

	var variance float64
	for _, t := range times {
		diff := float64(t - mean)
		variance += diff * diff
	}

	return PhaseResult{
		Name:       name,
		Elapsed:    median.Elapsed,
		Min:        sorted[0].Elapsed,
		Mean:       mean,
		Max:        sorted[len(sorted)-1].Elapsed,
		StdDev:     time.Duration(math.Sqrt(variance / float64(len(times)))),
		Processed:  median.Processed,
		Failed:     median.Failed,
		Throughput: median.Throughput(),
		Workers:    median.Workers,
		Iterations: times,
	}
}
