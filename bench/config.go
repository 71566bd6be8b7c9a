package bench

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/utkarsh5026/taskbench/internal/cpu"
	"github.com/utkarsh5026/taskbench/internal/queue"
	"gopkg.in/yaml.v3"
)

// DefaultSimulatedDelay is the per-task delay used in ModeSimulated.
const DefaultSimulatedDelay = 100 * time.Microsecond

// Mode selects whether tasks run as-is or behind an artificial delay.
type Mode int

const (
	ModePlain     Mode = 1
	ModeSimulated Mode = 2
)

var ErrUnknownMode = errors.New("unknown mode")

func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeSimulated:
		return "simulated"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMode accepts the menu numbers "1" and "2" as well as the names
// "plain" and "simulated".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "plain":
		return ModePlain, nil
	case "2", "simulated":
		return ModeSimulated, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

var (
	ErrInvalidBatchSize  = errors.New("batch size must be positive")
	ErrInvalidWorkers    = errors.New("worker count out of range")
	ErrInvalidIterations = errors.New("iterations must be at least 1")
	ErrInvalidWarmup     = errors.New("warmup must not be negative")
	ErrUnknownOutput     = errors.New("unknown output format")
)

// Config describes one benchmark run.
type Config struct {
	BatchSize  int            `yaml:"tasks" json:"tasks"`
	Workers    int            `yaml:"workers" json:"workers"`
	Seed       uint64         `yaml:"seed" json:"seed"`
	Mode       Mode           `yaml:"mode" json:"mode"`
	Delay      time.Duration  `yaml:"delay" json:"-"`
	Strategy   queue.Strategy `yaml:"strategy" json:"strategy"`
	Iterations int            `yaml:"iterations" json:"iterations"`
	Warmup     int            `yaml:"warmup" json:"warmup"`
	RateLimit  float64        `yaml:"rate" json:"rate,omitempty"`
	Burst      int            `yaml:"burst" json:"burst,omitempty"`
	PinCPU     bool           `yaml:"pin" json:"pin_cpu"`
	Output     string         `yaml:"output" json:"-"`
	Verbose    bool           `yaml:"verbose" json:"-"`
}

// DefaultConfig returns a plain-mode run of 10,000 tasks on every available
// CPU with a single measured iteration.
func DefaultConfig() Config {
	return Config{
		BatchSize:  10_000,
		Workers:    cpu.Available(),
		Seed:       42,
		Mode:       ModePlain,
		Delay:      DefaultSimulatedDelay,
		Strategy:   queue.StrategyMutex,
		Iterations: 1,
		Burst:      1,
		Output:     OutputTable,
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Keys missing from the
// file keep their default values.
//
// Example file:
//
//	tasks: 50000
//	workers: 4
//	mode: simulated
//	delay: 50us
//	strategy: ring
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// BindFlags registers the run flags on fs, using the current field values
// as defaults. Parse fs after loading any config file so flags win.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.BatchSize, "tasks", c.BatchSize, "Number of tasks in the batch")
	fs.IntVar(&c.Workers, "workers", c.Workers, "Number of concurrent workers")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "Seed for task generation")
	fs.TextVar(&c.Mode, "mode", c.Mode, "Execution mode: 1/plain or 2/simulated")
	fs.DurationVar(&c.Delay, "delay", c.Delay, "Per-task delay in simulated mode")
	fs.TextVar(&c.Strategy, "strategy", c.Strategy, "Shared queue: mutex, channel or ring")
	fs.IntVar(&c.Iterations, "iterations", c.Iterations, "Number of measured iterations")
	fs.IntVar(&c.Warmup, "warmup", c.Warmup, "Number of warmup runs")
	fs.Float64Var(&c.RateLimit, "rate", c.RateLimit, "Task rate limit per second (0 = unlimited)")
	fs.IntVar(&c.Burst, "burst", c.Burst, "Rate limiter burst size")
	fs.BoolVar(&c.PinCPU, "pin", c.PinCPU, "Pin each worker to its own CPU")
	fs.StringVar(&c.Output, "output", c.Output, "Output format: 'table' or 'json'")
	fs.BoolVar(&c.Verbose, "verbose", c.Verbose, "Print the result of every task")
}

// Validate checks the configuration against the number of usable CPUs.
func (c *Config) Validate(maxWorkers int) error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBatchSize, c.BatchSize)
	}
	if c.Workers < 1 || c.Workers > maxWorkers {
		return fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidWorkers, c.Workers, maxWorkers)
	}
	if c.Iterations < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidIterations, c.Iterations)
	}
	if c.Warmup < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWarmup, c.Warmup)
	}
	if c.Mode != ModePlain && c.Mode != ModeSimulated {
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(c.Mode))
	}
	if _, err := queue.ParseStrategy(c.Strategy.String()); err != nil {
		return err
	}
	if c.Output != OutputTable && c.Output != OutputJSON {
		return fmt.Errorf("%w: %q", ErrUnknownOutput, c.Output)
	}
	return nil
}

// simulatedDelay returns the per-task delay this config applies.
func (c *Config) simulatedDelay() time.Duration {
	if c.Mode != ModeSimulated {
		return 0
	}
	if c.Delay <= 0 {
		return DefaultSimulatedDelay
	}
	return c.Delay
}
