// Package utils contains small math helpers shared across the module.
package utils

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Float64AlmostEqual compares two floats within the given tolerance, applied
// both absolutely and relative to the larger magnitude.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, epsilon, epsilon)
}
