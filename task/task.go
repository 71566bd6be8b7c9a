// Package task defines the closed set of benchmark work items.
//
// A Task is one of seven value types (Compute, Fibonacci, Divide, Multiply,
// Factorial, PrimeCheck, ModExp). Every kind is described by a single entry
// in the kind table, which the generator, the evaluator and Kind.String all
// read from, so adding a kind means adding one type and one table entry.
//
// Tasks are immutable values: they are safe to copy and share between
// goroutines, and Evaluate never mutates them.
//
// # Basic Usage
//
//	batch := task.Generate(1000, 42)
//	for _, t := range batch {
//	    out, err := task.Evaluate(t)
//	    if errors.Is(err, task.ErrDivisionByZero) {
//	        // handle
//	    }
//	    fmt.Println(out)
//	}
package task

import "fmt"

// Kind identifies which variant a Task is.
type Kind uint8

const (
	KindCompute Kind = iota
	KindFibonacci
	KindDivide
	KindMultiply
	KindFactorial
	KindPrimeCheck
	KindModExp

	// NumKinds is the number of task kinds. It must stay last.
	NumKinds
)

// String returns the kind name from the kind table.
func (k Kind) String() string {
	if k >= NumKinds {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kinds[k].name
}

// MarshalText lets kinds act as readable JSON map keys.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	all := make([]Kind, NumKinds)
	for i := range all {
		all[i] = Kind(i)
	}
	return all
}

// Task is a single unit of benchmark work. The set of implementations is
// closed; only types in this package satisfy it.
type Task interface {
	Kind() Kind
	fmt.Stringer
	sealed()
}

// Compute adds two integers.
type Compute struct{ A, B int32 }

// Fibonacci computes the Nth Fibonacci number.
type Fibonacci struct{ N uint32 }

// Divide divides Numerator by Denominator. A zero denominator fails with
// ErrDivisionByZero.
type Divide struct{ Numerator, Denominator int32 }

// Multiply multiplies two integers.
type Multiply struct{ A, B int32 }

// Factorial computes N!.
type Factorial struct{ N uint32 }

// PrimeCheck tests N for primality.
type PrimeCheck struct{ N uint32 }

// ModExp computes Base^Exponent mod Modulus. A zero modulus fails with
// ErrZeroModulus.
type ModExp struct{ Base, Exponent, Modulus uint64 }

func (Compute) Kind() Kind    { return KindCompute }
func (Fibonacci) Kind() Kind  { return KindFibonacci }
func (Divide) Kind() Kind     { return KindDivide }
func (Multiply) Kind() Kind   { return KindMultiply }
func (Factorial) Kind() Kind  { return KindFactorial }
func (PrimeCheck) Kind() Kind { return KindPrimeCheck }
func (ModExp) Kind() Kind     { return KindModExp }

func (Compute) sealed()    {}
func (Fibonacci) sealed()  {}
func (Divide) sealed()     {}
func (Multiply) sealed()   {}
func (Factorial) sealed()  {}
func (PrimeCheck) sealed() {}
func (ModExp) sealed()     {}

func (t Compute) String() string    { return fmt.Sprintf("Compute(%d+%d)", t.A, t.B) }
func (t Fibonacci) String() string  { return fmt.Sprintf("Fibonacci(%d)", t.N) }
func (t Divide) String() string     { return fmt.Sprintf("Divide(%d/%d)", t.Numerator, t.Denominator) }
func (t Multiply) String() string   { return fmt.Sprintf("Multiply(%d*%d)", t.A, t.B) }
func (t Factorial) String() string  { return fmt.Sprintf("Factorial(%d)", t.N) }
func (t PrimeCheck) String() string { return fmt.Sprintf("PrimeCheck(%d)", t.N) }
func (t ModExp) String() string {
	return fmt.Sprintf("ModExp(%d^%d mod %d)", t.Base, t.Exponent, t.Modulus)
}
