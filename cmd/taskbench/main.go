// Command taskbench generates a batch of arithmetic tasks, runs it
// sequentially and through a worker pool, and reports which was faster.
//
// Usage:
//
//	taskbench -tasks 100000 -workers 8 -mode 1
//	taskbench -config bench.yml -iterations 5 -warmup 1 -output json
//
// Any of -tasks, -workers and -mode left unset is asked for when stdin is
// a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/utkarsh5026/taskbench/bench"
	"github.com/utkarsh5026/taskbench/internal/cpu"
	"github.com/utkarsh5026/taskbench/internal/prompt"
)

type cliOptions struct {
	cfg        bench.Config
	configPath string
	cpuProfile string
	memProfile string

	// provided records settings given by a flag or a config file.
	provided map[string]bool
}

func (o *cliOptions) flagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("taskbench", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", o.configPath, "YAML config file (flags override it)")
	fs.StringVar(&o.cpuProfile, "cpuprofile", o.cpuProfile, "Write CPU profile to file")
	fs.StringVar(&o.memProfile, "memprofile", o.memProfile, "Write memory profile to file")
	o.cfg.BindFlags(fs)
	return fs
}

// parseArgs layers flags over the config file over the defaults. The
// arguments are parsed twice when a config file is named so that explicit
// flags win over the file.
func parseArgs(args []string) (*cliOptions, error) {
	o := &cliOptions{cfg: bench.DefaultConfig(), provided: make(map[string]bool)}

	fs := o.flagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if o.configPath != "" {
		loaded, err := bench.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		o.cfg = *loaded
		for _, name := range []string{"tasks", "workers", "mode"} {
			o.provided[name] = true
		}

		fs = o.flagSet()
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fs.Visit(func(f *flag.Flag) {
		o.provided[f.Name] = true
	})
	return o, nil
}

// askMissing prompts for the batch size, worker count and mode when
// neither a flag nor the config file set them.
func askMissing(o *cliOptions, p *prompt.Prompter, maxWorkers int) error {
	if !o.provided["tasks"] {
		n, err := p.PositiveInt("Enter number of tasks to generate")
		if err != nil {
			return err
		}
		o.cfg.BatchSize = n
	}

	if !o.provided["workers"] {
		n, err := p.IntInRange(fmt.Sprintf("Enter number of workers (1-%d)", maxWorkers), 1, maxWorkers)
		if err != nil {
			return err
		}
		o.cfg.Workers = n
	}

	if !o.provided["mode"] {
		m, err := p.Mode("Select execution mode")
		if err != nil {
			return err
		}
		o.cfg.Mode = bench.Mode(m)
	}
	return nil
}

func run(ctx context.Context, o *cliOptions, stdout, stderr io.Writer) error {
	cleanup, err := bench.SetupProfiling(stderr, o.cpuProfile, o.memProfile)
	if err != nil {
		return err
	}
	defer cleanup()

	table := o.cfg.Output == bench.OutputTable
	if table {
		fmt.Fprintf(stdout, "Generating %s tasks...\n", bench.FormatNumber(o.cfg.BatchSize))
		fmt.Fprintf(stdout, "Using %d workers for concurrent execution.\n", o.cfg.Workers)
	}

	runner := bench.NewRunner(o.cfg,
		bench.WithOutput(stderr),
		bench.WithProgress(table),
	)

	res, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if !table {
		return bench.RenderJSON(stdout, res)
	}
	return bench.Render(stdout, res)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("taskbench: ")

	o, err := parseArgs(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("%v", err)
	}

	maxWorkers := cpu.Available()

	if prompt.IsInteractive(os.Stdin) {
		p := &prompt.Prompter{In: os.Stdin, Out: os.Stdout}
		if err := askMissing(o, p, maxWorkers); err != nil {
			log.Fatalf("%v", err)
		}
	}

	if err := o.cfg.Validate(maxWorkers); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, os.Stdout, os.Stderr); err != nil {
		stop()
		log.Fatalf("benchmark failed: %v", err)
	}
}
