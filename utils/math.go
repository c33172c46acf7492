package utils

import (
	"math"
	"math/rand"
)

// MaxInt returns the larger of a and b.
func MaxInt(a, b int) int {
	if a < b {
		return b
	}
	return a
}

// SaturatingPowInt returns base**exp for non-negative arguments, clamped to math.MaxInt instead
// of overflowing. Negative arguments return 0.
func SaturatingPowInt(base, exp int) int {
	if base < 0 || exp < 0 {
		return 0
	}
	result := 1
	for i := 0; i < exp; i++ {
		if base != 0 && result > math.MaxInt/base {
			return math.MaxInt
		}
		result *= base
	}
	return result
}

// SampleRandomIntRange samples a random integer within a range given by [min, max]
// using the given rand.Rand.
func SampleRandomIntRange(min, max int, r *rand.Rand) int {
	return r.Intn(max-min+1) + min
}
