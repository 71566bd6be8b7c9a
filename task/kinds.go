package task

import (
	"fmt"
	"math/rand/v2"

	"github.com/utkarsh5026/taskbench/internal/arith"
)

// kindSpec is the single description of a task kind: its name, how the
// generator draws one, and how the evaluator runs one.
type kindSpec struct {
	name     string
	generate func(r *rand.Rand) Task
	evaluate func(t Task) (Outcome, error)
}

// kinds is indexed by Kind. Generation ranges are half-open unless the
// comment says otherwise.
var kinds = [NumKinds]kindSpec{
	KindCompute: {
		name: "Compute",
		// a, b in [1, 100)
		generate: func(r *rand.Rand) Task {
			return Compute{A: 1 + r.Int32N(99), B: 1 + r.Int32N(99)}
		},
		evaluate: evalAs(func(t Compute) (Outcome, error) {
			return Outcome{Task: t, Int: arith.Add(t.A, t.B)}, nil
		}),
	},
	KindFibonacci: {
		name: "Fibonacci",
		// n in [1, 30)
		generate: func(r *rand.Rand) Task {
			return Fibonacci{N: 1 + r.Uint32N(29)}
		},
		evaluate: evalAs(func(t Fibonacci) (Outcome, error) {
			return Outcome{Task: t, Uint: arith.Fibonacci(t.N)}, nil
		}),
	},
	KindDivide: {
		name: "Divide",
		// numerator in [1, 100), denominator in [2, 99]; never zero when generated
		generate: func(r *rand.Rand) Task {
			return Divide{Numerator: 1 + r.Int32N(99), Denominator: 1 + r.Int32N(98) + 1}
		},
		evaluate: evalAs(func(t Divide) (Outcome, error) {
			if t.Denominator == 0 {
				return Outcome{Task: t}, &EvalError{Task: t, Err: ErrDivisionByZero}
			}
			return Outcome{Task: t, Int: arith.Divide(t.Numerator, t.Denominator)}, nil
		}),
	},
	KindMultiply: {
		name: "Multiply",
		// a, b in [1, 100)
		generate: func(r *rand.Rand) Task {
			return Multiply{A: 1 + r.Int32N(99), B: 1 + r.Int32N(99)}
		},
		evaluate: evalAs(func(t Multiply) (Outcome, error) {
			return Outcome{Task: t, Int: arith.Multiply(t.A, t.B)}, nil
		}),
	},
	KindFactorial: {
		name: "Factorial",
		// n in [0, 20)
		generate: func(r *rand.Rand) Task {
			return Factorial{N: r.Uint32N(20)}
		},
		evaluate: evalAs(func(t Factorial) (Outcome, error) {
			return Outcome{Task: t, Uint: arith.Factorial(t.N)}, nil
		}),
	},
	KindPrimeCheck: {
		name: "PrimeCheck",
		// n in [1, 100)
		generate: func(r *rand.Rand) Task {
			return PrimeCheck{N: 1 + r.Uint32N(99)}
		},
		evaluate: evalAs(func(t PrimeCheck) (Outcome, error) {
			return Outcome{Task: t, Prime: arith.IsPrime(t.N)}, nil
		}),
	},
	KindModExp: {
		name: "ModExp",
		// base in [2, 20), exponent in [2, 10), modulus in [2, 50]; never zero when generated
		generate: func(r *rand.Rand) Task {
			return ModExp{
				Base:     2 + r.Uint64N(18),
				Exponent: 2 + r.Uint64N(8),
				Modulus:  1 + r.Uint64N(49) + 1,
			}
		},
		evaluate: evalAs(func(t ModExp) (Outcome, error) {
			if t.Modulus == 0 {
				return Outcome{Task: t}, &EvalError{Task: t, Err: ErrZeroModulus}
			}
			return Outcome{Task: t, Uint: arith.ModPow(t.Base, t.Exponent, t.Modulus)}, nil
		}),
	},
}

// evalAs adapts a typed evaluator to the table signature.
func evalAs[T Task](fn func(T) (Outcome, error)) func(Task) (Outcome, error) {
	return func(t Task) (Outcome, error) {
		v, ok := t.(T)
		if !ok {
			panic(fmt.Sprintf("task: %T dispatched as %s", t, t.Kind()))
		}
		return fn(v)
	}
}
