// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "github.com/chewxy/math32"

// Quat is a unit quaternion used to track object and ray-local orientation.
// Axis carries the imaginary (x, y, z) part and W the real part, matching
// the source engine's axis/w split rather than a flat (x, y, z, w) tuple.
type Quat struct {
	Axis Vec3
	W    float32
}

// QI is the identity quaternion: no rotation.
var QI = Quat{Axis: Vec3{}, W: 1}

// AxisAngle builds a quaternion rotating by angle radians around axis.
// axis is normalized first; the zero vector returns the identity.
func AxisAngle(axis Vec3, angle float32) Quat {
	axis = axis.Normalized()
	if axis.Eq(Vec3{}) {
		return QI
	}
	half := angle * 0.5
	s := math32.Sin(half)
	return Quat{Axis: axis.Scale(s), W: math32.Cos(half)}
}

// Length returns the magnitude of q. A unit quaternion (the only kind this
// package produces) has length 1.
func (q Quat) Length() float32 { return math32.Sqrt(q.Axis.SquaredLength() + q.W*q.W) }

// Normalized returns q scaled to unit length.
func (q Quat) Normalized() Quat {
	length := q.Length()
	if length == 0 {
		return QI
	}
	inv := 1 / length
	return Quat{Axis: q.Axis.Scale(inv), W: q.W * inv}
}

// Conjugate returns the conjugate of q, which is also its inverse for a
// unit quaternion: negate the imaginary part, keep the real part.
func (q Quat) Conjugate() Quat { return Quat{Axis: q.Axis.Neg(), W: q.W} }

// Mul (*) returns the Hamilton product q*r, applying rotation r first then q.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		Axis: q.Axis.Scale(r.W).Add(r.Axis.Scale(q.W)).Add(q.Axis.Cross(r.Axis)),
		W:    q.W*r.W - q.Axis.Dot(r.Axis),
	}
}

// RotateVec3 rotates v by q: q * v * q^-1, expanded without constructing an
// intermediate quaternion (standard optimized form).
func (q Quat) RotateVec3(v Vec3) Vec3 {
	t := q.Axis.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(q.Axis.Cross(t))
}
