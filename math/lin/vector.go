// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "github.com/chewxy/math32"

// Vec2 is a 2 element vector, used for texture coordinates (u, v).
type Vec2 struct {
	X, Y float32
}

// Aeq (~=) returns true if v and a are equal within Epsilon.
func (v Vec2) Aeq(a Vec2) bool { return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) }

// Add (+) returns the sum of v and a.
func (v Vec2) Add(a Vec2) Vec2 { return Vec2{v.X + a.X, v.Y + a.Y} }

// Scale (*) returns v with each element multiplied by s.
func (v Vec2) Scale(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }

// ShiftToUnit maps v from [-1, 1] to [0, 1] per component, as used when
// turning a local-space hit position into a UV coordinate.
func (v Vec2) ShiftToUnit() Vec2 { return Vec2{(v.X + 1) * 0.5, (v.Y + 1) * 0.5} }

// OnCheckerboard returns true if uv falls on the "off" cell of a 2x2
// checkerboard tiling of the unit square, used by MATERIAL_HAS_TRANSPARENT_UV
// surfaces to punch alternating holes through a primitive.
func (v Vec2) OnCheckerboard() bool {
	cx := int32(math32.Floor(v.X * 2))
	cy := int32(math32.Floor(v.Y * 2))
	return (cx+cy)&1 == 0
}

// Vec3 is a 3 element vector used for points and directions.
type Vec3 struct {
	X, Y, Z float32
}

// V3 constructs a Vec3 from a single scalar broadcast to all 3 components,
// used constantly for things like uniform scale or "all-ones" normals.
func V3(s float32) Vec3 { return Vec3{s, s, s} }

// Eq (==) returns true if v and a have identical components.
func (v Vec3) Eq(a Vec3) bool { return v.X == a.X && v.Y == a.Y && v.Z == a.Z }

// Aeq (~=) returns true if v and a are equal within Epsilon.
func (v Vec3) Aeq(a Vec3) bool { return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) && Aeq(v.Z, a.Z) }

// Add (+) returns the sum of v and a.
func (v Vec3) Add(a Vec3) Vec3 { return Vec3{v.X + a.X, v.Y + a.Y, v.Z + a.Z} }

// Sub (-) returns v minus a.
func (v Vec3) Sub(a Vec3) Vec3 { return Vec3{v.X - a.X, v.Y - a.Y, v.Z - a.Z} }

// Neg (-v) returns v with every component negated.
func (v Vec3) Neg() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

// Mul (componentwise *) returns v with each component multiplied by the
// corresponding component of a.
func (v Vec3) Mul(a Vec3) Vec3 { return Vec3{v.X * a.X, v.Y * a.Y, v.Z * a.Z} }

// Div (componentwise /) returns v with each component divided by the
// corresponding component of a. Division by zero yields IEEE +/-Inf rather
// than panicking.
func (v Vec3) Div(a Vec3) Vec3 { return Vec3{v.X / a.X, v.Y / a.Y, v.Z / a.Z} }

// Scale (*s) returns v with every component multiplied by s.
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Reciprocal returns {1/x, 1/y, 1/z}. Components of v that are zero produce
// IEEE infinities rather than panicking, matching the slab test's needs.
func (v Vec3) Reciprocal() Vec3 { return Vec3{1 / v.X, 1 / v.Y, 1 / v.Z} }

// Dot (.) returns the dot product of v and a.
func (v Vec3) Dot(a Vec3) float32 { return v.X*a.X + v.Y*a.Y + v.Z*a.Z }

// Cross (x) returns the cross product of v and a.
func (v Vec3) Cross(a Vec3) Vec3 {
	return Vec3{
		v.Y*a.Z - v.Z*a.Y,
		v.Z*a.X - v.X*a.Z,
		v.X*a.Y - v.Y*a.X,
	}
}

// SquaredLength returns the squared length of v. Prefer this over Length
// when only comparing magnitudes, since it skips the square root.
func (v Vec3) SquaredLength() float32 { return v.Dot(v) }

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 { return math32.Sqrt(v.SquaredLength()) }

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged (dividing by a zero length would otherwise produce NaNs).
func (v Vec3) Normalized() Vec3 {
	length := v.Length()
	if length == 0 {
		return v
	}
	return v.Scale(1 / length)
}

// ScaleAdd returns origin + v*t. This is the fused multiply-add the ray
// tracer uses everywhere a position is derived from a ray: Ray.At calls
// direction.ScaleAdd(t, origin).
func (v Vec3) ScaleAdd(t float32, origin Vec3) Vec3 { return v.Scale(t).Add(origin) }

// Reflect returns v reflected around unit normal n: v - 2*(v.n)*n.
func (v Vec3) Reflect(n Vec3) Vec3 { return v.Sub(n.Scale(2 * v.Dot(n))) }

// Abs returns v with every component made non-negative.
func (v Vec3) Abs() Vec3 { return Vec3{math32.Abs(v.X), math32.Abs(v.Y), math32.Abs(v.Z)} }

// Min3 returns the smallest component of v.
func (v Vec3) Min3() float32 { return Min(v.X, Min(v.Y, v.Z)) }

// Max3 returns the largest component of v.
func (v Vec3) Max3() float32 { return Max(v.X, Max(v.Y, v.Z)) }

// MinVec3 returns the componentwise minimum of a and b.
func MinVec3(a, b Vec3) Vec3 { return Vec3{Min(a.X, b.X), Min(a.Y, b.Y), Min(a.Z, b.Z)} }

// MaxVec3 returns the componentwise maximum of a and b.
func MaxVec3(a, b Vec3) Vec3 { return Vec3{Max(a.X, b.X), Max(a.Y, b.Y), Max(a.Z, b.Z)} }
