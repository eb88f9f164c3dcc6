// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package prim

import (
	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/ray"
)

// Triangle is the precomputed per-triangle data a mesh needs to intersect
// it: a plane (Position, Normal) and the 3x3 basis that maps a local-space
// point on that plane to barycentric (u, v), plus the two areas used for
// texture-footprint bookkeeping (§4.G).
type Triangle struct {
	Position, Normal  lin.Vec3
	LocalToTangent    lin.Mat3
	AreaParallelogram float32
	AreaUV            float32

	// V0, V1, V2 are the triangle's object-space vertices. They play no
	// part in HitTriangle (the precomputed plane/tangent basis is all an
	// intersection needs) but are kept for building the mesh's AABB/BVH.
	V0, V1, V2 lin.Vec3
}

// AABB returns the bounding box of tri's 3 vertices, used by mesh.New to
// build a mesh's BVH.
func (tri Triangle) AABB() lin.AABB {
	box := lin.EmptyAABB()
	return box.Grow(tri.V0).Grow(tri.V1).Grow(tri.V2)
}

// HitTriangle intersects r against tri: a plane test followed by a
// barycentric inside-test via the triangle's tangent basis.
func HitTriangle(r ray.Ray, hit *ray.Hit, tri Triangle) bool {
	candidate := ray.Miss()
	candidate.Distance = hit.Distance
	if !r.HitsPlane(tri.Position, tri.Normal, &candidate) {
		return false
	}

	uv := tri.LocalToTangent.MulVec3(candidate.Position.Sub(tri.Position))
	if uv.X < 0 || uv.Y < 0 || uv.X+uv.Y > 1 {
		return false
	}

	hit.Distance = candidate.Distance
	hit.Position = candidate.Position
	hit.Normal = candidate.Normal
	hit.FromBehind = candidate.FromBehind
	hit.UV = lin.Vec2{X: uv.X, Y: uv.Y}
	hit.UVCoverage = tri.AreaParallelogram
	return true
}
