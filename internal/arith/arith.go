// Package arith holds the pure integer helpers evaluated by benchmark tasks.
//
// None of the helpers validate their divisor or modulus; callers reject zero
// before invoking Divide or ModPow.
package arith

import "math/bits"

// Add returns a + b widened to 64 bits so it cannot overflow.
func Add(a, b int32) int64 {
	return int64(a) + int64(b)
}

// Multiply returns a * b widened to 64 bits so it cannot overflow.
func Multiply(a, b int32) int64 {
	return int64(a) * int64(b)
}

// Divide returns a / b truncated toward zero. b must not be zero.
func Divide(a, b int32) int64 {
	return int64(a) / int64(b)
}

// Fibonacci returns F(n) with F(0) = 0 and F(1) = 1.
// Values past F(93) wrap modulo 2^64.
func Fibonacci(n uint32) uint64 {
	var prev, cur uint64 = 0, 1
	if n == 0 {
		return 0
	}
	for i := uint32(1); i < n; i++ {
		prev, cur = cur, prev+cur
	}
	return cur
}

// Factorial returns n! with 0! = 1. Results past 20! wrap modulo 2^64.
func Factorial(n uint32) uint64 {
	result := uint64(1)
	for i := uint64(2); i <= uint64(n); i++ {
		result *= i
	}
	return result
}

// IsPrime reports whether n is prime using trial division.
func IsPrime(n uint32) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for i := uint64(3); i*i <= uint64(n); i += 2 {
		if uint64(n)%i == 0 {
			return false
		}
	}
	return true
}

// ModPow returns base^exp mod m by square-and-multiply.
// Intermediate products are 128 bits wide, so any uint64 operands are safe.
// m must not be zero.
func ModPow(base, exp, m uint64) uint64 {
	if m == 1 {
		return 0
	}

	result := uint64(1)
	base %= m
	for exp > 0 {
		if exp&1 == 1 {
			result = mulMod(result, base, m)
		}
		exp >>= 1
		base = mulMod(base, base, m)
	}
	return result
}

func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}
