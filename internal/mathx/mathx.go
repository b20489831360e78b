// Package mathx has the small numeric helpers shared by the generators:
// clamping, interpolation and the integer hashes that stand in for
// per-particle random state.
package mathx

import (
	"math"

	"golang.org/x/exp/constraints"
)

func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return Clamp(v, 0, 1)
}

func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Fract returns the fractional part of x in [0, 1).
func Fract(x float64) float64 {
	return x - math.Floor(x)
}

// Hash maps an integer to a uniformly distributed value in [0, 1).
// It is a 32-bit integer avalanche hash, so results are identical on every
// platform and run.
func Hash(n uint32) float64 {
	n = (n << 13) ^ n
	n = n*(n*n*15731+789221) + 1376312589
	n ^= n >> 16
	n *= 0x7feb352d
	n ^= n >> 15
	n *= 0x846ca68b
	n ^= n >> 16
	return float64(n&0x00ffffff) / float64(0x01000000)
}

// Hash2 combines two integers into a value in [0, 1).
func Hash2(a, b uint32) float64 {
	return Hash(a*0x9e3779b9 ^ (b + 0x632be5ab + (a << 6) + (a >> 2)))
}

// Hash3 combines three integers into a value in [0, 1).
func Hash3(a, b, c uint32) float64 {
	return Hash2(a, b*0x85ebca6b^c*0xc2b2ae35)
}
