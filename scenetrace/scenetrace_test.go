// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scenetrace

import (
	"testing"

	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/ray"
	"github.com/gazed/slimtrace/scene"
)

func oneSphereScene() *scene.Scene {
	geoms := []scene.Geometry{
		{
			Transform: lin.Transform{Position: lin.Vec3{Z: 5}, Rotation: lin.QI, Scale: lin.V3(1)},
			Type:      scene.TypeSphere,
			Flags:     scene.Visible | scene.Shadowing,
		},
	}
	return scene.New(geoms, nil, []scene.Material{{}}, nil, nil, nil)
}

func TestTraceHitsSphere(t *testing.T) {
	sc := oneSphereScene()
	tracer := NewTracer(sc)

	r := ray.New(lin.Vec3{}, lin.Vec3{Z: 1})
	hit, ok := tracer.Trace(r, sc, false, lin.Large, 1)
	if !ok {
		t.Fatal("expected a hit")
	}
	if !lin.Aeq(hit.Distance, 4) {
		t.Errorf("got distance %v want 4", hit.Distance)
	}
	if hit.GeometryID != 0 {
		t.Errorf("got geometry id %d want 0", hit.GeometryID)
	}
}

func TestTraceMissesWhenAimedAway(t *testing.T) {
	sc := oneSphereScene()
	tracer := NewTracer(sc)

	r := ray.New(lin.Vec3{}, lin.Vec3{Z: -1})
	if _, ok := tracer.Trace(r, sc, false, lin.Large, 1); ok {
		t.Error("expected a miss")
	}
}

func TestTraceSkipsNonShadowingGeometryForAnyHit(t *testing.T) {
	sc := oneSphereScene()
	sc.Geometries[0].Flags = scene.Visible // no Shadowing
	sc.UpdateAABBs()
	sc.UpdateBVH()
	tracer := NewTracer(sc)

	r := ray.New(lin.Vec3{}, lin.Vec3{Z: 1})
	if _, ok := tracer.Trace(r, sc, true, lin.Large, 1); ok {
		t.Error("a geometry without the Shadowing flag should not register an any-hit")
	}
}
