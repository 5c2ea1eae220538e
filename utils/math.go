// Package utils contains small numeric helpers shared by the attitude packages.
package utils

import (
	"math"

	"golang.org/x/exp/constraints"
)

// DegToRad converts degrees to radians.
func DegToRad[T constraints.Float](degrees T) T {
	return degrees * T(math.Pi) / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg[T constraints.Float](radians T) T {
	return radians * 180 / T(math.Pi)
}

// WrapAngle maps an angle in radians into (-pi, pi].
func WrapAngle(radians float64) float64 {
	wrapped := math.Mod(radians, 2*math.Pi)
	if wrapped > math.Pi {
		wrapped -= 2 * math.Pi
	} else if wrapped <= -math.Pi {
		wrapped += 2 * math.Pi
	}
	return wrapped
}

// AngleDiff returns the magnitude of the smallest rotation taking angle a1 to a2, in radians.
// The arguments are commutative.
func AngleDiff(a1, a2 float64) float64 {
	return math.Abs(WrapAngle(a1 - a2))
}

// Float32AlmostEqual reports whether a and b differ by no more than tol.
func Float32AlmostEqual(a, b float32, tol float64) bool {
	return math.Abs(float64(a)-float64(b)) <= tol
}
