package core

import (
	"math"
	"math/bits"
)

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// FloorPowerOfTwo returns the largest power of two not exceeding n,
// or 0 when n < 1.
func FloorPowerOfTwo(n int) int {
	if n < 1 {
		return 0
	}

	return 1 << (bits.Len(uint(n)) - 1)
}
