package bench

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/utkarsh5026/taskbench/task"
)

func sampleResult() *Result {
	cfg := DefaultConfig()
	cfg.BatchSize = 10_000
	cfg.Workers = 4
	cfg.Iterations = 3

	seq := PhaseResult{
		Name:       "Sequential",
		Elapsed:    100 * time.Millisecond,
		Min:        90 * time.Millisecond,
		Mean:       100 * time.Millisecond,
		Max:        110 * time.Millisecond,
		StdDev:     8 * time.Millisecond,
		Processed:  10_000,
		Failed:     2,
		Throughput: 100_000,
		Workers:    1,
		Iterations: []time.Duration{90 * time.Millisecond, 100 * time.Millisecond, 110 * time.Millisecond},
	}
	con := seq
	con.Name = "Concurrent"
	con.Elapsed = 50 * time.Millisecond
	con.Throughput = 200_000
	con.Workers = 4

	return &Result{
		RunID:      uuid.New(),
		Config:     cfg,
		Sequential: seq,
		Concurrent: con,
		Comparison: Compare(seq.Elapsed, con.Elapsed),
		Failures:   map[task.Kind]int{task.KindDivide: 2},
	}
}

func TestRender(t *testing.T) {
	res := sampleResult()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, res))
	out := buf.String()

	for _, want := range []string{
		res.RunID.String(),
		"10,000",
		"Sequential",
		"Concurrent",
		"100,000",
		"200,000",
		"baseline",
		"2.00x",
		"Median: 100ms",
		"Divide: 2",
		"concurrent faster by 2.00x",
	} {
		assert.Contains(t, out, want)
	}
}

func TestRender_SingleIterationOmitsStats(t *testing.T) {
	res := sampleResult()
	res.Config.Iterations = 1
	res.Failures = map[task.Kind]int{}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, res))

	assert.NotContains(t, buf.String(), "StdDev")
	assert.NotContains(t, buf.String(), "Failed tasks per kind")
}

func TestRenderJSON(t *testing.T) {
	res := sampleResult()

	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, res))

	var doc struct {
		RunID      string `json:"run_id"`
		Winner     string `json:"winner"`
		Ratio      string `json:"ratio"`
		Summary    string `json:"summary"`
		Sequential struct {
			Time       string   `json:"time"`
			TimeNanos  int64    `json:"time_ns"`
			Failed     int64    `json:"failed"`
			Iterations []string `json:"iterations"`
		} `json:"sequential"`
		Config struct {
			Tasks    int    `json:"tasks"`
			Mode     string `json:"mode"`
			Strategy string `json:"strategy"`
		} `json:"config"`
		Failures map[string]int `json:"failures"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, res.RunID.String(), doc.RunID)
	assert.Equal(t, "concurrent", doc.Winner)
	assert.Equal(t, "2.00x", doc.Ratio)
	assert.Equal(t, "concurrent faster by 2.00x", doc.Summary)
	assert.Equal(t, "100ms", doc.Sequential.Time)
	assert.Equal(t, int64(100*time.Millisecond), doc.Sequential.TimeNanos)
	assert.EqualValues(t, 2, doc.Sequential.Failed)
	assert.Equal(t, []string{"90ms", "100ms", "110ms"}, doc.Sequential.Iterations)
	assert.Equal(t, 10_000, doc.Config.Tasks)
	assert.Equal(t, "plain", doc.Config.Mode)
	assert.Equal(t, "mutex", doc.Config.Strategy)
	assert.Equal(t, map[string]int{"Divide": 2}, doc.Failures)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.n))
	}
}

func TestFormatLatency(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0"},
		{500 * time.Nanosecond, "500ns"},
		{100 * time.Microsecond, "100µs"},
		{1500 * time.Nanosecond, "1.5µs"},
		{25 * time.Millisecond, "25ms"},
		{1250 * time.Microsecond, "1.25ms"},
		{2500 * time.Millisecond, "2.50s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatLatency(tt.d))
	}
}
