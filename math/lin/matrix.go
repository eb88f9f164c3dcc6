// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "github.com/chewxy/math32"

// Mat3 is a 3x3 matrix stored as three row vectors. It is used for the
// tetrahedron face tangent bases and the mesh triangle tangent basis
// (local-space point to barycentric (u, v)), and RotationAroundY builds one
// as a rotation matrix.
type Mat3 struct {
	X, Y, Z Vec3 // rows
}

// MulVec3 applies the matrix to v: result[i] = row[i].Dot(v).
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{m.X.Dot(v), m.Y.Dot(v), m.Z.Dot(v)}
}

// RotationAroundY returns the rotation matrix for a rotation of angle
// radians around the Y axis.
func RotationAroundY(angle float32) Mat3 {
	s, c := math32.Sin(angle), math32.Cos(angle)
	return Mat3{
		X: Vec3{c, 0, s},
		Y: Vec3{0, 1, 0},
		Z: Vec3{-s, 0, c},
	}
}
