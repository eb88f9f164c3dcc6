// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "testing"

// Test combinations of rotations, translations, and scales. The standard
// order, when there is more than one, is scale, then rotate, then translate.

func TestExternPos(t *testing.T) {
	tr := Transform{Position: Vec3{5, 0, 0}, Rotation: AxisAngle(Vec3{0, 1, 0}, Rad(90)), Scale: V3(1)}
	v, want := Vec3{2, 0, 0}, Vec3{5, 0, -2}
	if got := tr.ExternPos(v); !got.Aeq(want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestInternPosInverse(t *testing.T) {
	tr := Transform{Position: Vec3{10, 0, 0}, Rotation: AxisAngle(Vec3{0, 1, 0}, Rad(90)), Scale: V3(1)}
	v := Vec3{1, 0, 0}
	got := tr.InternPos(tr.ExternPos(v))
	if !got.Aeq(v) {
		t.Errorf("extern then intern should return original, got %v want %v", got, v)
	}
}

func TestExternPosWithScale(t *testing.T) {
	tr := Transform{Position: Vec3{}, Rotation: QI, Scale: Vec3{2, 3, 4}}
	v, want := Vec3{1, 1, 1}, Vec3{2, 3, 4}
	if got := tr.ExternPos(v); !got.Eq(want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestExternDirNormalizes(t *testing.T) {
	tr := Transform{Rotation: QI, Scale: Vec3{2, 1, 1}}
	got := tr.ExternDir(Vec3{1, 0, 0})
	if !Aeq(got.Length(), 1) {
		t.Errorf("ExternDir should return a unit vector, got length %v", got.Length())
	}
}

func TestIdentTransform(t *testing.T) {
	tr := Ident()
	v := Vec3{3, -5, 7}
	if got := tr.ExternPos(v); !got.Eq(v) {
		t.Errorf("identity transform should not move v, got %v want %v", got, v)
	}
}

func TestExternInternAABB(t *testing.T) {
	tr := Transform{Position: Vec3{5, 0, 0}, Rotation: QI, Scale: V3(2)}
	box := AABB{Min: V3(-1), Max: V3(1)}
	world := tr.ExternAABB(box)
	want := AABB{Min: Vec3{3, -2, -2}, Max: Vec3{7, 2, 2}}
	if !world.Min.Aeq(want.Min) || !world.Max.Aeq(want.Max) {
		t.Errorf("got %v want %v", world, want)
	}
	back := tr.InternAABB(world)
	if !back.Min.Aeq(box.Min) || !back.Max.Aeq(box.Max) {
		t.Errorf("round trip got %v want %v", back, box)
	}
}
