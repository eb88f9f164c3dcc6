// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package prim

import (
	"testing"

	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/ray"
)

// triangle with vertices (0,0,0), (1,0,0), (0,1,0) lying in the z=0 plane.
func testTriangle() Triangle {
	return Triangle{
		Position: lin.Vec3{},
		Normal:   lin.Vec3{Z: 1},
		// local_to_tangent maps a point in the triangle's plane to (u, v)
		// such that (0,0,0)->(0,0), (1,0,0)->(1,0), (0,1,0)->(0,1).
		LocalToTangent: lin.Mat3{
			X: lin.Vec3{X: 1},
			Y: lin.Vec3{Y: 1},
			Z: lin.Vec3{},
		},
		AreaParallelogram: 1,
		AreaUV:            1,
	}
}

func TestHitTriangleInside(t *testing.T) {
	r := ray.New(lin.Vec3{X: 0.25, Y: 0.25, Z: -1}, lin.Vec3{Z: 1})
	hit := ray.Miss()
	if !HitTriangle(r, &hit, testTriangle()) {
		t.Fatal("expected a hit")
	}
	if !lin.Aeq(hit.Distance, 1) {
		t.Errorf("got distance %v want 1", hit.Distance)
	}
	want := lin.Vec2{X: 0.25, Y: 0.25}
	if !hit.UV.Aeq(want) {
		t.Errorf("got uv %v want %v", hit.UV, want)
	}
}

func TestHitTriangleOutsideBarycentric(t *testing.T) {
	r := ray.New(lin.Vec3{X: 2, Y: 2, Z: -1}, lin.Vec3{Z: 1})
	hit := ray.Miss()
	if HitTriangle(r, &hit, testTriangle()) {
		t.Error("a point outside u+v<=1 should miss")
	}
}
