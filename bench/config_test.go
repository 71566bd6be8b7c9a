package bench

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/utkarsh5026/taskbench/internal/queue"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taskbench.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate(cfg.Workers))
	assert.Equal(t, ModePlain, cfg.Mode)
	assert.Equal(t, queue.StrategyMutex, cfg.Strategy)
	assert.Equal(t, OutputTable, cfg.Output)
	assert.Equal(t, time.Duration(0), cfg.simulatedDelay())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"zero batch", func(c *Config) { c.BatchSize = 0 }, ErrInvalidBatchSize},
		{"negative batch", func(c *Config) { c.BatchSize = -5 }, ErrInvalidBatchSize},
		{"zero workers", func(c *Config) { c.Workers = 0 }, ErrInvalidWorkers},
		{"too many workers", func(c *Config) { c.Workers = 5 }, ErrInvalidWorkers},
		{"no iterations", func(c *Config) { c.Iterations = 0 }, ErrInvalidIterations},
		{"negative warmup", func(c *Config) { c.Warmup = -1 }, ErrInvalidWarmup},
		{"unknown mode", func(c *Config) { c.Mode = 3 }, ErrUnknownMode},
		{"unknown strategy", func(c *Config) { c.Strategy = queue.Strategy(9) }, queue.ErrUnknownStrategy},
		{"unknown output", func(c *Config) { c.Output = "xml" }, ErrUnknownOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Workers = 4
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(4), tt.wantErr)
		})
	}
}

func TestConfig_ValidateWorkerBounds(t *testing.T) {
	cfg := DefaultConfig()
	for _, workers := range []int{1, 4} {
		cfg.Workers = workers
		assert.NoError(t, cfg.Validate(4), "workers=%d", workers)
	}
}

func TestParseMode(t *testing.T) {
	for _, s := range []string{"1", "plain", " PLAIN "} {
		m, err := ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, ModePlain, m)
	}
	for _, s := range []string{"2", "simulated"} {
		m, err := ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, ModeSimulated, m)
	}
	for _, s := range []string{"", "0", "3", "fast"} {
		_, err := ParseMode(s)
		assert.ErrorIs(t, err, ErrUnknownMode)
	}
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
tasks: 500
workers: 3
mode: simulated
delay: 50us
strategy: ring
iterations: 5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.BatchSize)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, ModeSimulated, cfg.Mode)
	assert.Equal(t, 50*time.Microsecond, cfg.Delay)
	assert.Equal(t, queue.StrategyRing, cfg.Strategy)
	assert.Equal(t, 5, cfg.Iterations)

	defaults := DefaultConfig()
	assert.Equal(t, defaults.Seed, cfg.Seed)
	assert.Equal(t, defaults.Warmup, cfg.Warmup)
	assert.Equal(t, defaults.Output, cfg.Output)
	assert.Equal(t, 50*time.Microsecond, cfg.simulatedDelay())
}

func TestLoadConfig_NumericMode(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "mode: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, ModeSimulated, cfg.Mode)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadConfig(writeConfig(t, "mode: turbo\n"))
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = LoadConfig(writeConfig(t, "strategy: stack\n"))
	assert.ErrorIs(t, err, queue.ErrUnknownStrategy)
}

func TestConfig_BindFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BatchSize = 123

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"-workers", "2",
		"-mode", "2",
		"-strategy", "channel",
		"-delay", "1ms",
		"-rate", "500",
		"-pin",
		"-output", "json",
	}))

	assert.Equal(t, 123, cfg.BatchSize, "unset flags keep prior values")
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, ModeSimulated, cfg.Mode)
	assert.Equal(t, queue.StrategyChannel, cfg.Strategy)
	assert.Equal(t, time.Millisecond, cfg.Delay)
	assert.InDelta(t, 500.0, cfg.RateLimit, 1e-9)
	assert.True(t, cfg.PinCPU)
	assert.Equal(t, OutputJSON, cfg.Output)
}

func TestConfig_BindFlagsRejectsUnknownMode(t *testing.T) {
	cfg := DefaultConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.BindFlags(fs)

	assert.Error(t, fs.Parse([]string{"-mode", "9"}))
}
