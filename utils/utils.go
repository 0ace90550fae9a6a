// File: utils/utils.go
package utils

import "math"

func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func ClampInt(x, lo, hi int) int {
	return MaxInt(lo, MinInt(hi, x))
}

func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// ApproxEqual reports whether a and b differ by at most tolerance.
func ApproxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// Lerp interpolates linearly between a and b, t in [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ClosestPointOnRect clamps p into the rectangle [min, max].
func ClosestPointOnRect(p, min, max Vector2) Vector2 {
	return Vector2{
		X: Clamp(p.X, min.X, max.X),
		Y: Clamp(p.Y, min.Y, max.Y),
	}
}
