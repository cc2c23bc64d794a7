package utils

import (
	"math"
)

// Square returns n*n; math.Pow(n, 2) is slower.
func Square(n float64) float64 {
	return n * n
}

// Clamp limits v to [lo, hi]. If lo > hi, lo wins.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
