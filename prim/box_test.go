// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package prim

import (
	"testing"

	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/ray"
)

func TestBoxHitFront(t *testing.T) {
	r := ray.New(lin.Vec3{Z: -5}, lin.Vec3{Z: 1})
	hit := ray.Miss()
	side := Box(r, &hit, false)
	if side != BoxSideBack {
		t.Fatalf("got side %v want Back (-Z face, since the ray travels toward +Z)", side)
	}
	if !lin.Aeq(hit.Distance, 4) {
		t.Errorf("got distance %v want 4", hit.Distance)
	}
	if !hit.Normal.Eq(lin.Vec3{Z: -1}) {
		t.Errorf("got normal %v want (0,0,-1)", hit.Normal)
	}
}

func TestBoxMiss(t *testing.T) {
	r := ray.New(lin.Vec3{X: 5, Z: -5}, lin.Vec3{Z: 1})
	hit := ray.Miss()
	if side := Box(r, &hit, false); side != BoxSideNone {
		t.Errorf("expected a miss, got side %v", side)
	}
}

func TestBoxHitFromInsideIsFromBehind(t *testing.T) {
	r := ray.New(lin.Vec3{}, lin.Vec3{Z: 1})
	hit := ray.Miss()
	side := Box(r, &hit, false)
	if side == BoxSideNone {
		t.Fatal("expected a hit")
	}
	if !hit.FromBehind {
		t.Error("a ray starting inside the box should report from-behind on exit")
	}
}
