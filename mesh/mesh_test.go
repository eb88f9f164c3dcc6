// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package mesh

import (
	"testing"

	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/prim"
	"github.com/gazed/slimtrace/ray"
)

// xyTriangle builds a single unit right-triangle in the z=zOffset plane,
// offset along x, with vertices (ox,0,z), (ox+1,0,z), (ox,1,z).
func xyTriangle(ox, z float32) prim.Triangle {
	v0 := lin.Vec3{X: ox, Y: 0, Z: z}
	v1 := lin.Vec3{X: ox + 1, Y: 0, Z: z}
	v2 := lin.Vec3{X: ox, Y: 1, Z: z}
	return prim.Triangle{
		Position: v0,
		Normal:   lin.Vec3{Z: 1},
		LocalToTangent: lin.Mat3{
			X: lin.Vec3{X: 1},
			Y: lin.Vec3{Y: 1},
			Z: lin.Vec3{},
		},
		AreaParallelogram: 1,
		AreaUV:            1,
		V0:                v0, V1: v1, V2: v2,
	}
}

func TestTraceHitsCorrectTriangleAmongMany(t *testing.T) {
	var tris []prim.Triangle
	for i := 0; i < 30; i++ {
		tris = append(tris, xyTriangle(float32(i)*3, 0))
	}
	m := New(tris)

	// aim at the interior of triangle index 17's footprint: x in [51, 52].
	r := ray.New(lin.Vec3{X: 51.25, Y: 0.25, Z: -10}, lin.Vec3{Z: 1})
	hit := ray.Miss()
	if !Trace(r, &hit, m, false) {
		t.Fatal("expected a hit")
	}
	if hit.ID != 17 {
		t.Errorf("got triangle id %d want 17", hit.ID)
	}
	if !lin.Aeq(hit.Distance, 10) {
		t.Errorf("got distance %v want 10", hit.Distance)
	}
}

func TestTraceMissesBetweenTriangles(t *testing.T) {
	var tris []prim.Triangle
	for i := 0; i < 10; i++ {
		tris = append(tris, xyTriangle(float32(i)*3, 0))
	}
	m := New(tris)

	// x=1.5 falls in the gap between triangle 0's footprint [0,1] and
	// triangle 1's footprint [3,4].
	r := ray.New(lin.Vec3{X: 1.5, Y: 0.25, Z: -10}, lin.Vec3{Z: 1})
	hit := ray.Miss()
	if Trace(r, &hit, m, false) {
		t.Errorf("expected a miss, got hit on triangle %d", hit.ID)
	}
}

func TestTraceAnyHitStopsEarly(t *testing.T) {
	var tris []prim.Triangle
	for i := 0; i < 5; i++ {
		tris = append(tris, xyTriangle(float32(i)*3, float32(i)))
	}
	m := New(tris)

	r := ray.New(lin.Vec3{X: 0.25, Y: 0.25, Z: -10}, lin.Vec3{Z: 1})
	hit := ray.Miss()
	if !Trace(r, &hit, m, true) {
		t.Fatal("expected a hit")
	}
}

func TestTraceEmptyMesh(t *testing.T) {
	m := New(nil)
	r := ray.New(lin.Vec3{Z: -10}, lin.Vec3{Z: 1})
	hit := ray.Miss()
	if Trace(r, &hit, m, false) {
		t.Error("an empty mesh should never report a hit")
	}
}
