// SPDX-FileCopyrightText : © 2014-2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package lin

import "testing"

// While the functions below are not complicated, they are foundational such
// that it is better to test each one of them then have the bugs discovered
// later from other code.

func TestAddV3(t *testing.T) {
	v, want := Vec3{1, 2, 3}, Vec3{2, 4, 6}
	if got := v.Add(v); !got.Eq(want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestSubV3(t *testing.T) {
	v, want := Vec3{1, 2, 3}, Vec3{}
	if got := v.Sub(v); !got.Eq(want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestMulV3(t *testing.T) {
	v, want := Vec3{1, 2, 3}, Vec3{1, 4, 9}
	if got := v.Mul(v); !got.Eq(want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestDivV3(t *testing.T) {
	v, a, want := Vec3{1, 2, 3}, Vec3{2, 2, 2}, Vec3{0.5, 1, 1.5}
	if got := v.Div(a); !got.Eq(want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestScaleV3(t *testing.T) {
	v, want := Vec3{1, 2, 3}, Vec3{2, 4, 6}
	if got := v.Scale(2); !got.Eq(want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestDotV3(t *testing.T) {
	v, a := Vec3{1, 2, 3}, Vec3{2, 4, 8}
	if v.Dot(a) != 34 || v.Dot(v) != 14 {
		t.Error("invalid dot product")
	}
}

func TestCrossV3(t *testing.T) {
	v, b, want := Vec3{3, -3, 1}, Vec3{4, 9, 2}, Vec3{-15, -2, 39}
	if got := v.Cross(b); !got.Eq(want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestLengthV3(t *testing.T) {
	v := Vec3{9, 2, 6}
	if v.Length() != 11 {
		t.Error("invalid length", v.Length())
	}
}

func TestNormalizedV3(t *testing.T) {
	v := Vec3{}
	if got := v.Normalized(); !got.Eq(v) {
		t.Errorf("zero vector should normalize to itself, got %v", got)
	}
	v = Vec3{5, 6, 7}
	if !Aeq(v.Normalized().Length(), 1) {
		t.Error("normalized vectors should have length one")
	}
}

func TestReflectV3(t *testing.T) {
	v, n, want := Vec3{1, -1, 0}, Vec3{0, 1, 0}, Vec3{1, 1, 0}
	if got := v.Reflect(n); !got.Aeq(want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestMinMaxVec3(t *testing.T) {
	a, b := Vec3{1, -2, 3}, Vec3{-1, 2, -3}
	if got, want := MinVec3(a, b), (Vec3{-1, -2, -3}); !got.Eq(want) {
		t.Errorf("got %v want %v", got, want)
	}
	if got, want := MaxVec3(a, b), (Vec3{1, 2, 3}); !got.Eq(want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestScaleAddV3(t *testing.T) {
	dir, origin, want := Vec3{1, 0, 0}, Vec3{0, 5, 0}, Vec3{2, 5, 0}
	if got := dir.ScaleAdd(2, origin); !got.Eq(want) {
		t.Errorf("got %v want %v", got, want)
	}
}

func TestShiftToUnit(t *testing.T) {
	v, want := Vec2{-1, 1}, Vec2{0, 1}
	if got := v.ShiftToUnit(); got != want {
		t.Errorf("got %v want %v", got, want)
	}
}
