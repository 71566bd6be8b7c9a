// Package prompt reads validated answers from an interactive terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrNoInput is returned when input ends before a valid answer is read.
var ErrNoInput = errors.New("no input")

// Prompter asks questions on Out and reads answers from In. Invalid answers
// are reported and the question is asked again.
type Prompter struct {
	In  io.Reader
	Out io.Writer

	reader *bufio.Reader
}

// IsInteractive reports whether f is a terminal rather than a pipe or file.
func IsInteractive(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode()&os.ModeCharDevice != 0
}

// PositiveInt asks until the answer is an integer greater than zero.
func (p *Prompter) PositiveInt(label string) (int, error) {
	return p.ask(label, func(input string) (int, error) {
		n, err := strconv.Atoi(input)
		if err != nil {
			return 0, fmt.Errorf("%q is not a whole number", input)
		}
		if n <= 0 {
			return 0, fmt.Errorf("%d is not positive", n)
		}
		return n, nil
	})
}

// IntInRange asks until the answer is an integer in [lo, hi].
func (p *Prompter) IntInRange(label string, lo, hi int) (int, error) {
	return p.ask(label, func(input string) (int, error) {
		n, err := strconv.Atoi(input)
		if err != nil {
			return 0, fmt.Errorf("%q is not a whole number", input)
		}
		if n < lo || n > hi {
			return 0, fmt.Errorf("%d is not between %d and %d", n, lo, hi)
		}
		return n, nil
	})
}

// Mode asks for the execution mode: 1 for plain, 2 for simulated load.
func (p *Prompter) Mode(label string) (int, error) {
	return p.IntInRange(label+" (1 = plain, 2 = simulated load)", 1, 2)
}

func (p *Prompter) ask(label string, parse func(string) (int, error)) (int, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}

	for {
		fmt.Fprintf(p.Out, "%s: ", label)

		line, err := p.reader.ReadString('\n')
		input := strings.TrimSpace(line)

		if input != "" {
			n, perr := parse(input)
			if perr == nil {
				return n, nil
			}
			fmt.Fprintf(p.Out, "Invalid input: %v. Please try again.\n", perr)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, ErrNoInput
			}
			return 0, fmt.Errorf("read answer: %w", err)
		}
	}
}
