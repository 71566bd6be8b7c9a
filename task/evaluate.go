package task

import "fmt"

// Outcome is the value produced by evaluating a task. Compute, Divide and
// Multiply set Int; Fibonacci, Factorial and ModExp set Uint; PrimeCheck sets
// Prime.
type Outcome struct {
	Task  Task
	Int   int64
	Uint  uint64
	Prime bool
}

// String renders the outcome as a single result line.
func (o Outcome) String() string {
	if o.Task == nil {
		return "<none>"
	}
	switch o.Task.Kind() {
	case KindCompute, KindDivide, KindMultiply:
		return fmt.Sprintf("%v = %d", o.Task, o.Int)
	case KindPrimeCheck:
		if o.Prime {
			return fmt.Sprintf("%v = prime", o.Task)
		}
		return fmt.Sprintf("%v = not prime", o.Task)
	default:
		return fmt.Sprintf("%v = %d", o.Task, o.Uint)
	}
}

// Evaluate runs the computation t describes. The only failures are data
// driven: a Divide with a zero denominator and a ModExp with a zero modulus.
// Both come back as *EvalError wrapping ErrDivisionByZero or ErrZeroModulus.
//
// Evaluate panics on a nil task or a task passed by pointer; both are
// programming errors rather than bad data.
func Evaluate(t Task) (Outcome, error) {
	if t == nil {
		panic("task: Evaluate called with nil task")
	}
	k := t.Kind()
	if k >= NumKinds {
		panic(fmt.Sprintf("task: unknown kind %d", uint8(k)))
	}
	return kinds[k].evaluate(t)
}
