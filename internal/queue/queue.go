// Package queue provides the shared work queues drained by the worker pool.
//
// Every implementation is loaded once up front and then only popped from.
// Pop never blocks waiting for new items and never hands the same item to
// two callers, so the union of all pops across any number of goroutines is
// exactly the loaded batch.
package queue

import (
	"errors"
	"fmt"
	"strings"
)

// Source is a pre-loaded queue that concurrent workers drain.
type Source[T any] interface {
	// Pop removes and returns the next item, or reports false once the
	// queue is empty.
	Pop() (T, bool)

	// Len returns the number of items not yet popped.
	Len() int
}

// Strategy selects the queue implementation.
type Strategy int

const (
	// StrategyMutex is a mutex-guarded deque. It is the default.
	StrategyMutex Strategy = iota

	// StrategyChannel is a buffered channel filled and closed before draining.
	StrategyChannel

	// StrategyRing is a bounded lock-free multi-consumer ring buffer.
	StrategyRing
)

var ErrUnknownStrategy = errors.New("unknown queue strategy")

var strategyNames = map[Strategy]string{
	StrategyMutex:   "mutex",
	StrategyChannel: "channel",
	StrategyRing:    "ring",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStrategy maps "mutex", "channel" or "ring" (case-insensitive) to a
// Strategy. An empty name selects StrategyMutex.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return StrategyMutex, nil
	}
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Strategies lists every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{StrategyMutex, StrategyChannel, StrategyRing}
}

// New builds a Source of the given strategy loaded with items in order.
// Unknown strategies fall back to StrategyMutex.
func New[T any](s Strategy, items []T) Source[T] {
	switch s {
	case StrategyChannel:
		return NewChannel(items)
	case StrategyRing:
		return NewRing(items)
	default:
		return NewLocked(items)
	}
}
