// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package lin provides the linear math kernels used by the ray tracer:
// vectors, a 3x3 matrix, a quaternion, axis-aligned bounding boxes, and
// integer screen rectangles. Everything in this package operates on f32
// (float32) since that is the scalar size the tracer's hot loops use.
//
// Package lin is provided as part of the slimtrace CPU ray tracer.
package lin

import "github.com/chewxy/math32"

// Various linear math constants.
const (
	PI     = math32.Pi
	PIx2   = PI * 2
	HalfPi = PIx2 * 0.25
	DegRad = PIx2 / 360.0 // X degrees * DegRad = Y radians
	RadDeg = 360.0 / PIx2 // Y radians * RadDeg = X degrees

	Sqrt2 float32 = 1.41421356
	Sqrt3 float32 = 1.73205081

	// Epsilon is used to distinguish when a float is close enough to a number.
	Epsilon float32 = 0.000001

	// Large is a finite stand-in for "very large" where +Inf would otherwise
	// propagate through comparisons undesirably.
	Large float32 = math32.MaxFloat32
)

// Rad converts degrees to radians.
func Rad(deg float32) float32 { return deg * DegRad }

// Deg converts radians to degrees.
func Deg(rad float32) float32 { return rad * RadDeg }

// AeqZ (~=) almost-equals returns true if x is close enough to zero that
// it doesn't matter.
func AeqZ(x float32) bool { return math32.Abs(x) < Epsilon }

// Aeq (~=) almost-equals returns true if a and b are close enough that the
// difference doesn't matter.
func Aeq(a, b float32) bool { return math32.Abs(a-b) < Epsilon }

// Lerp returns the linear interpolation of a to b by the given ratio.
func Lerp(a, b, ratio float32) float32 { return (b-a)*ratio + a }

// Clamp returns s restricted to the range [lb, ub].
func Clamp(s, lb, ub float32) float32 {
	switch {
	case s < lb:
		return lb
	case s > ub:
		return ub
	}
	return s
}

// Clamp01 restricts s to the range [0, 1]. Used constantly by the shader
// for NdotL/NdotV/NdotH terms which must never go negative.
func Clamp01(s float32) float32 { return Clamp(s, 0, 1) }

// Max returns the larger of a and b.
func Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
