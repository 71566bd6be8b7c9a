package bench

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/utkarsh5026/taskbench/task"
)

// Render writes a human-readable report of res to w.
func Render(w io.Writer, res *Result) error {
	printHeader(w, "TASK BENCHMARK")
	printConfiguration(w, res)

	printSectionHeader(w, "RESULTS",
		"Median of measured iterations; failed tasks count as processed")

	fastest := min(res.Sequential.Elapsed, res.Concurrent.Elapsed)

	table := tablewriter.NewWriter(w)
	table.Header("Phase", "Time", "Tasks/sec", "Failed", "vs Fastest")

	for _, phase := range []PhaseResult{res.Sequential, res.Concurrent} {
		_ = table.Append(
			phase.Name,
			FormatLatency(phase.Elapsed),
			FormatNumber(int(phase.Throughput)),
			FormatNumber(int(phase.Failed)),
			vsFastest(phase.Elapsed, fastest),
		)
	}

	if err := table.Render(); err != nil {
		colorFprintln(w, Red, "Error in rendering results table")
		return fmt.Errorf("render table: %w", err)
	}

	if res.Config.Iterations > 1 {
		fmt.Fprintln(w)
		for _, phase := range []PhaseResult{res.Sequential, res.Concurrent} {
			printIterationStats(w, phase)
		}
	}

	printFailures(w, res.Failures)

	fmt.Fprintln(w)
	switch res.Comparison.Winner {
	case Concurrent:
		colorFprintf(w, Green, "✅ %s\n", res.Comparison)
	case Sequential:
		colorFprintf(w, Yellow, "⚠️  %s\n", res.Comparison)
	default:
		colorFprintf(w, Blue, "%s\n", res.Comparison)
	}
	fmt.Fprintln(w)
	return nil
}

// vsFastest formats a phase time relative to the fastest phase.
func vsFastest(elapsed, fastest time.Duration) string {
	if elapsed == fastest {
		return "baseline"
	}
	if fastest <= 0 {
		return formatRatio(ratio(elapsed, fastest))
	}
	return fmt.Sprintf("%.2fx", float64(elapsed)/float64(fastest))
}

func printHeader(w io.Writer, title string) {
	colorFprintln(w, Bold, "╔════════════════════════════════════════════════════════════╗")
	colorFprintf(w, Bold, "║       %-52s ║\n", title)
	colorFprintln(w, Bold, "╚════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w)
}

func printSectionHeader(w io.Writer, title string, descriptions ...string) {
	fmt.Fprintln(w)
	colorFprintln(w, Bold, "═══════════════════════════════════════════════════════════")
	colorFprintln(w, Bold, title)
	colorFprintln(w, Bold, "═══════════════════════════════════════════════════════════")
	for _, desc := range descriptions {
		fmt.Fprintln(w, desc)
	}
	fmt.Fprintln(w)
}

func printConfiguration(w io.Writer, res *Result) {
	cfg := res.Config

	colorFprintln(w, Bold, "Configuration:")
	fmt.Fprintf(w, "  Run ID:     %s\n", res.RunID)
	fmt.Fprintf(w, "  Tasks:      %s\n", FormatNumber(cfg.BatchSize))
	fmt.Fprintf(w, "  Workers:    %d\n", cfg.Workers)
	fmt.Fprintf(w, "  Seed:       %d\n", cfg.Seed)
	if cfg.Mode == ModeSimulated {
		fmt.Fprintf(w, "  Mode:       %s (%s per task)\n", cfg.Mode, FormatLatency(cfg.simulatedDelay()))
	} else {
		fmt.Fprintf(w, "  Mode:       %s\n", cfg.Mode)
	}
	fmt.Fprintf(w, "  Queue:      %s\n", cfg.Strategy)
	if cfg.RateLimit > 0 {
		fmt.Fprintf(w, "  Rate limit: %.0f tasks/sec (burst %d)\n", cfg.RateLimit, cfg.Burst)
	}
	if cfg.PinCPU {
		fmt.Fprintln(w, "  CPU pinning enabled")
	}
	if cfg.Iterations > 1 || cfg.Warmup > 0 {
		fmt.Fprintf(w, "  Iterations: %d (warmup %d)\n", cfg.Iterations, cfg.Warmup)
	}
}

// printIterationStats prints the spread across measured iterations.
func printIterationStats(w io.Writer, phase PhaseResult) {
	fmt.Fprintf(w, "  %-10s Min: %s | Median: %s | Mean: %s | Max: %s | StdDev: %s\n",
		phase.Name,
		FormatLatency(phase.Min),
		FormatLatency(phase.Elapsed),
		FormatLatency(phase.Mean),
		FormatLatency(phase.Max),
		FormatLatency(phase.StdDev))
}

func printFailures(w io.Writer, failures map[task.Kind]int) {
	if len(failures) == 0 {
		return
	}

	fmt.Fprintln(w)
	colorFprintln(w, Red, "Failed tasks per kind:")
	for _, k := range task.Kinds() {
		if n := failures[k]; n > 0 {
			colorFprintf(w, Red, "  • %s: %s\n", k, FormatNumber(n))
		}
	}
}
