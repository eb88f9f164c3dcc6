// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package prim

import (
	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/ray"
)

// TetMax and TetMin are the extremum coordinates of the canonical
// tetrahedron's four corners in local space: {(-M,-M,-M),(M,M,-M),(M,-M,M),
// (-M,M,M)} where M = TetMax = 1/sqrt(3). TetMin = M/2 recurs in the
// per-face tangent bases below.
const (
	TetMax float32 = 0.577350259
	TetMin float32 = 0.288675159
)

// tetFace holds one of the tetrahedron's four triangular faces: the plane
// it lies in (tangentOrigin, normal) and the 3x3 basis that converts a
// local-space point on that plane into the face's (u,v) barycentric coords.
type tetFace struct {
	tangentOrigin lin.Vec3
	normal        lin.Vec3
	tangent       lin.Mat3
}

// tetFaces are the exact per-face planes and tangent bases of the source
// engine's tetrahedron; these constants are normative (§9), not derived.
var tetFaces = [4]tetFace{
	{
		tangentOrigin: lin.Vec3{X: -TetMax, Y: -TetMax, Z: -TetMax},
		normal:        lin.Vec3{X: -TetMax, Y: TetMax, Z: -TetMax},
		tangent: lin.Mat3{
			X: lin.Vec3{X: TetMax, Y: -TetMin, Z: -TetMax},
			Y: lin.Vec3{X: TetMin, Y: TetMin, Z: TetMax},
			Z: lin.Vec3{X: -TetMin, Y: TetMax, Z: -TetMax},
		},
	},
	{
		tangentOrigin: lin.Vec3{X: -TetMax, Y: -TetMax, Z: -TetMax},
		normal:        lin.Vec3{X: TetMax, Y: -TetMax, Z: -TetMax},
		tangent: lin.Mat3{
			X: lin.Vec3{X: TetMin, Y: TetMin, Z: TetMax},
			Y: lin.Vec3{X: -TetMin, Y: TetMax, Z: -TetMax},
			Z: lin.Vec3{X: TetMax, Y: -TetMin, Z: -TetMax},
		},
	},
	{
		tangentOrigin: lin.Vec3{X: -TetMax, Y: -TetMax, Z: -TetMax},
		normal:        lin.Vec3{X: -TetMax, Y: -TetMax, Z: TetMax},
		tangent: lin.Mat3{
			X: lin.Vec3{X: -TetMin, Y: TetMax, Z: -TetMax},
			Y: lin.Vec3{X: TetMax, Y: -TetMin, Z: -TetMax},
			Z: lin.Vec3{X: TetMin, Y: TetMin, Z: TetMax},
		},
	},
	{
		tangentOrigin: lin.Vec3{X: TetMax, Y: -TetMax, Z: TetMax},
		normal:        lin.Vec3{X: TetMax, Y: TetMax, Z: TetMax},
		tangent: lin.Mat3{
			X: lin.Vec3{X: -TetMax, Y: TetMin, Z: TetMax},
			Y: lin.Vec3{X: TetMin, Y: TetMin, Z: TetMax},
			Z: lin.Vec3{X: TetMin, Y: -TetMax, Z: TetMax},
		},
	},
}

// Tetrahedron intersects r against the canonical tetrahedron (vertices at
// +/-TetMax, see §10), testing all 4 faces and keeping the closest valid
// barycentric hit.
func Tetrahedron(r ray.Ray, hit *ray.Hit, transparent bool) bool {
	found := false
	current := ray.Miss()
	current.Distance = hit.Distance

	for i := range tetFaces {
		face := &tetFaces[i]
		current.Distance = hit.Distance
		if !r.HitsPlane(face.tangentOrigin, face.normal, &current) {
			continue
		}

		tangentPos := face.tangent.MulVec3(current.Position.Sub(face.tangentOrigin))
		if tangentPos.X < 0 || tangentPos.Y < 0 || tangentPos.Y+tangentPos.X > 1 {
			continue
		}

		uv := lin.Vec2{X: tangentPos.X, Y: tangentPos.Y}
		if transparent && uv.OnCheckerboard() {
			continue
		}

		if current.Distance < hit.Distance {
			*hit = current
			hit.UV = uv
			hit.UVCoverage = lin.Sqrt3 / 4
			found = true
		}
	}

	return found
}
