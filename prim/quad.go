// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package prim implements ray intersection against the four analytic unit
// primitives (quad, box, sphere, tetrahedron) and a mesh triangle, all in
// the primitive's local space. Every test here only improves hit.Distance,
// never worsens it, so a caller can run several primitives against the
// same Hit and keep the closest.
package prim

import (
	"github.com/chewxy/math32"

	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/ray"
)

// Quad intersects r against the unit quad: the square |x|,|z| <= 1 in the
// local y=0 plane. transparent punches alternating checkerboard holes.
func Quad(r ray.Ray, hit *ray.Hit, transparent bool) bool {
	if r.Direction.Y == 0 {
		return false // ray parallel to the plane
	}
	if r.Origin.Y == 0 {
		return false // ray starts in the plane
	}

	fromBehind := r.Origin.Y < 0
	if fromBehind == (r.Direction.Y < 0) {
		return false // ray points away from the plane
	}

	t := math32.Abs(r.Origin.Y / r.Direction.Y)
	if t > hit.Distance {
		return false
	}

	position := r.At(t)
	if position.X < -1 || position.X > 1 || position.Z < -1 || position.Z > 1 {
		return false
	}

	uv := lin.Vec2{X: position.X, Y: position.Z}.ShiftToUnit()
	if transparent && uv.OnCheckerboard() {
		return false
	}

	hit.Distance = t
	hit.Position = position
	hit.Normal = lin.Vec3{Y: 1}
	hit.UV = uv
	hit.UVCoverage = 0.25
	hit.FromBehind = fromBehind
	return true
}
