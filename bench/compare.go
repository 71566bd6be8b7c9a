// Package bench runs a task batch sequentially and through the worker pool,
// times both phases and reports which was faster.
package bench

import (
	"fmt"
	"math"
	"time"
)

// Winner names the faster phase of a comparison.
type Winner int

const (
	Tie Winner = iota
	Sequential
	Concurrent
)

func (w Winner) String() string {
	switch w {
	case Sequential:
		return "sequential"
	case Concurrent:
		return "concurrent"
	default:
		return "tie"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (w Winner) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// Comparison is the outcome of comparing two phase durations.
type Comparison struct {
	Serial     time.Duration
	Concurrent time.Duration
	Winner     Winner

	// Ratio is the larger duration divided by the smaller. It is 1 for a tie
	// and +Inf when only the faster phase took zero time.
	Ratio float64
}

// Compare decides which phase was faster and by how much.
func Compare(serial, concurrent time.Duration) Comparison {
	c := Comparison{Serial: serial, Concurrent: concurrent, Ratio: 1}

	switch {
	case concurrent < serial:
		c.Winner = Concurrent
		c.Ratio = ratio(serial, concurrent)
	case serial < concurrent:
		c.Winner = Sequential
		c.Ratio = ratio(concurrent, serial)
	}
	return c
}

func ratio(larger, smaller time.Duration) float64 {
	if smaller <= 0 {
		return math.Inf(1)
	}
	return float64(larger) / float64(smaller)
}

func (c Comparison) String() string {
	switch c.Winner {
	case Concurrent:
		return fmt.Sprintf("concurrent faster by %.2fx", c.Ratio)
	case Sequential:
		return fmt.Sprintf("sequential faster by %.2fx", c.Ratio)
	default:
		return "sequential and concurrent took the same time"
	}
}
