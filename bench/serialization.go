package bench

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/utkarsh5026/taskbench/task"
)

// jsonPhase is PhaseResult with human-readable duration strings.
type jsonPhase struct {
	Name       string   `json:"name"`
	Time       string   `json:"time"`
	TimeNanos  int64    `json:"time_ns"`
	Min        string   `json:"min"`
	Mean       string   `json:"mean"`
	Max        string   `json:"max"`
	StdDev     string   `json:"stddev"`
	Processed  int64    `json:"processed"`
	Failed     int64    `json:"failed"`
	Throughput float64  `json:"tasks_per_sec"`
	Workers    int      `json:"workers"`
	Iterations []string `json:"iterations"`
}

// JSONBenchmarkOutput is the document RenderJSON writes.
type JSONBenchmarkOutput struct {
	RunID      uuid.UUID         `json:"run_id"`
	Config     Config            `json:"config"`
	Delay      string            `json:"delay,omitempty"`
	Sequential jsonPhase         `json:"sequential"`
	Concurrent jsonPhase         `json:"concurrent"`
	Winner     Winner            `json:"winner"`
	Ratio      string            `json:"ratio"`
	Summary    string            `json:"summary"`
	Failures   map[task.Kind]int `json:"failures"`
}

func newJSONPhase(p PhaseResult) jsonPhase {
	iterations := make([]string, len(p.Iterations))
	for i, d := range p.Iterations {
		iterations[i] = FormatLatency(d)
	}
	return jsonPhase{
		Name:       p.Name,
		Time:       FormatLatency(p.Elapsed),
		TimeNanos:  p.Elapsed.Nanoseconds(),
		Min:        FormatLatency(p.Min),
		Mean:       FormatLatency(p.Mean),
		Max:        FormatLatency(p.Max),
		StdDev:     FormatLatency(p.StdDev),
		Processed:  p.Processed,
		Failed:     p.Failed,
		Throughput: p.Throughput,
		Workers:    p.Workers,
		Iterations: iterations,
	}
}

// SerializeToJSON converts a result to indented JSON bytes
func SerializeToJSON(res *Result) ([]byte, error) {
	output := JSONBenchmarkOutput{
		RunID:      res.RunID,
		Config:     res.Config,
		Sequential: newJSONPhase(res.Sequential),
		Concurrent: newJSONPhase(res.Concurrent),
		Winner:     res.Comparison.Winner,
		Ratio:      formatRatio(res.Comparison.Ratio),
		Summary:    res.Comparison.String(),
		Failures:   res.Failures,
	}
	if d := res.Config.simulatedDelay(); d > 0 {
		output.Delay = FormatLatency(d)
	}

	return json.MarshalIndent(output, "", "  ")
}

// RenderJSON writes res to w as indented JSON.
func RenderJSON(w io.Writer, res *Result) error {
	data, err := SerializeToJSON(res)
	if err != nil {
		return fmt.Errorf("failed to serialize to JSON: %w", err)
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
