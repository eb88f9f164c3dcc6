// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package prim

import (
	"testing"

	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/ray"
)

func TestQuadHitCenter(t *testing.T) {
	r := ray.New(lin.Vec3{Y: 2}, lin.Vec3{Y: -1})
	hit := ray.Miss()
	if !Quad(r, &hit, false) {
		t.Fatal("expected a hit")
	}
	if !lin.Aeq(hit.Distance, 2) {
		t.Errorf("got distance %v want 2", hit.Distance)
	}
	if !hit.Normal.Eq(lin.Vec3{Y: 1}) {
		t.Errorf("got normal %v want (0,1,0)", hit.Normal)
	}
	want := lin.Vec2{X: 0.5, Y: 0.5}
	if hit.UV != want {
		t.Errorf("got uv %v want %v", hit.UV, want)
	}
}

func TestQuadMissesOutsideSquare(t *testing.T) {
	r := ray.New(lin.Vec3{X: 5, Y: 2}, lin.Vec3{Y: -1})
	hit := ray.Miss()
	if Quad(r, &hit, false) {
		t.Error("expected a miss outside |x|<=1")
	}
}

func TestQuadParallelMisses(t *testing.T) {
	r := ray.New(lin.Vec3{Y: 2}, lin.Vec3{X: 1})
	hit := ray.Miss()
	if Quad(r, &hit, false) {
		t.Error("a ray parallel to the quad plane should miss")
	}
}

func TestQuadFromBehind(t *testing.T) {
	r := ray.New(lin.Vec3{Y: -2}, lin.Vec3{Y: 1})
	hit := ray.Miss()
	if !Quad(r, &hit, false) {
		t.Fatal("expected a hit")
	}
	if !hit.FromBehind {
		t.Error("a ray approaching from -Y should be from behind")
	}
}
