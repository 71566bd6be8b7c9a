package pool

import (
	"errors"
	"fmt"
)

// ErrWorkerPanic matches any *PanicError with errors.Is.
var ErrWorkerPanic = errors.New("worker panicked")

// sequentialWorker is the worker id reported for panics in Sequential.
const sequentialWorker = -1

// PanicError reports a panic raised while processing an item. A panic is
// fatal to the run that raised it.
type PanicError struct {
	Worker int
	Value  any
	Stack  []byte
}

func (e *PanicError) Error() string {
	if e.Worker == sequentialWorker {
		return fmt.Sprintf("sequential runner panic: %v\nstack trace:\n%s", e.Value, e.Stack)
	}
	return fmt.Sprintf("worker %d panic: %v\nstack trace:\n%s", e.Worker, e.Value, e.Stack)
}

// Is reports whether target is ErrWorkerPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrWorkerPanic
}

// Unwrap returns the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
