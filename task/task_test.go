package task

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindTable_Complete(t *testing.T) {
	for _, k := range Kinds() {
		spec := kinds[k]
		assert.NotEmpty(t, spec.name, "kind %d has no name", k)
		require.NotNil(t, spec.generate, "kind %s has no generator", k)
		require.NotNil(t, spec.evaluate, "kind %s has no evaluator", k)
	}
}

func TestKindTable_GeneratorMatchesTag(t *testing.T) {
	g := NewGenerator(7)
	for _, k := range Kinds() {
		for range 50 {
			got := kinds[k].generate(g.r)
			assert.Equal(t, k, got.Kind(), "generator for %s produced %T", k, got)
		}
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "Compute", KindCompute.String())
	assert.Equal(t, "ModExp", KindModExp.String())
	assert.Equal(t, "Kind(200)", Kind(200).String())

	text, err := KindDivide.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Divide", string(text))
}

func TestEvaluate_Divide(t *testing.T) {
	out, err := Evaluate(Divide{Numerator: 10, Denominator: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.Int)

	for _, x := range []int32{0, 1, -1, 10, math.MaxInt32, math.MinInt32} {
		_, err := Evaluate(Divide{Numerator: x, Denominator: 0})
		require.Error(t, err, "numerator %d", x)
		assert.True(t, errors.Is(err, ErrDivisionByZero), "numerator %d: got %v", x, err)
	}
}

func TestEvaluate_ModExp(t *testing.T) {
	out, err := Evaluate(ModExp{Base: 2, Exponent: 3, Modulus: 5})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), out.Uint)

	_, err = Evaluate(ModExp{Base: 2, Exponent: 3, Modulus: 0})
	assert.ErrorIs(t, err, ErrZeroModulus)

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindModExp, kind)
}

func TestEvaluate_Factorial(t *testing.T) {
	out, err := Evaluate(Factorial{N: 0})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), out.Uint)

	out, err = Evaluate(Factorial{N: 5})
	require.NoError(t, err)
	assert.Equal(t, uint64(120), out.Uint)
}

func TestEvaluate_PrimeCheck(t *testing.T) {
	out, err := Evaluate(PrimeCheck{N: 7})
	require.NoError(t, err)
	assert.True(t, out.Prime)
	assert.Equal(t, "PrimeCheck(7) = prime", out.String())

	out, err = Evaluate(PrimeCheck{N: 9})
	require.NoError(t, err)
	assert.False(t, out.Prime)
	assert.Equal(t, "PrimeCheck(9) = not prime", out.String())
}

func TestEvaluate_AllKindsSucceedOnValidInput(t *testing.T) {
	cases := []struct {
		task Task
		want string
	}{
		{Compute{A: 3, B: 4}, "Compute(3+4) = 7"},
		{Fibonacci{N: 10}, "Fibonacci(10) = 55"},
		{Divide{Numerator: 9, Denominator: 4}, "Divide(9/4) = 2"},
		{Multiply{A: 6, B: 7}, "Multiply(6*7) = 42"},
		{Factorial{N: 6}, "Factorial(6) = 720"},
		{PrimeCheck{N: 97}, "PrimeCheck(97) = prime"},
		{ModExp{Base: 10, Exponent: 5, Modulus: 13}, "ModExp(10^5 mod 13) = 4"},
	}

	for _, tc := range cases {
		t.Run(tc.task.Kind().String(), func(t *testing.T) {
			out, err := Evaluate(tc.task)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.String())
		})
	}
}

func TestEvaluate_DoesNotMutate(t *testing.T) {
	d := Divide{Numerator: 8, Denominator: 0}
	_, _ = Evaluate(d)
	assert.Equal(t, Divide{Numerator: 8, Denominator: 0}, d)
}

func TestEvaluate_PanicsOnMisuse(t *testing.T) {
	assert.Panics(t, func() { _, _ = Evaluate(nil) })
	assert.Panics(t, func() { _, _ = Evaluate(&Compute{A: 1, B: 2}) })
}

func TestEvalError(t *testing.T) {
	_, err := Evaluate(Divide{Numerator: 3, Denominator: 0})

	var ee *EvalError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, Divide{Numerator: 3, Denominator: 0}, ee.Task)
	assert.Equal(t, "evaluate Divide(3/0): division by zero", err.Error())

	_, ok := KindOf(errors.New("other"))
	assert.False(t, ok)
}
