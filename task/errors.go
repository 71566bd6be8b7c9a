package task

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero is returned when a Divide task has a zero denominator.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrZeroModulus is returned when a ModExp task has a zero modulus.
	ErrZeroModulus = errors.New("zero modulus")
)

// EvalError records which task failed and why.
type EvalError struct {
	Task Task
	Err  error
}

// Error implements the error interface
func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluate %v: %v", e.Task, e.Err)
}

// Unwrap returns the underlying sentinel error
func (e *EvalError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the task that produced err, if err came from
// Evaluate.
func KindOf(err error) (Kind, bool) {
	var ee *EvalError
	if errors.As(err, &ee) && ee.Task != nil {
		return ee.Task.Kind(), true
	}
	return 0, false
}
