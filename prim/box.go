// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package prim

import (
	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/ray"
)

// BoxSide identifies which face of the unit cube a Box hit landed on.
type BoxSide int8

const (
	BoxSideNone BoxSide = iota
	BoxSideLeft
	BoxSideRight
	BoxSideBottom
	BoxSideTop
	BoxSideBack
	BoxSideFront
)

// Box intersects r against the unit cube [-1,1]^3 using the slab method,
// choosing near/far planes per axis from the sign of the ray direction.
func Box(r ray.Ray, hit *ray.Hit, transparent bool) BoxSide {
	near := lin.Vec3{
		X: (-r.Signs.X - r.Origin.X) * r.DirectionReciprocal.X,
		Y: (-r.Signs.Y - r.Origin.Y) * r.DirectionReciprocal.Y,
		Z: (-r.Signs.Z - r.Origin.Z) * r.DirectionReciprocal.Z,
	}
	far := lin.Vec3{
		X: (r.Signs.X - r.Origin.X) * r.DirectionReciprocal.X,
		Y: (r.Signs.Y - r.Origin.Y) * r.DirectionReciprocal.Y,
		Z: (r.Signs.Z - r.Origin.Z) * r.DirectionReciprocal.Z,
	}

	nearAxis, nearT := minAxis(near)
	farAxis, farT := maxAxis(far)

	if farT < 0 {
		return BoxSideNone // further-away hit is behind the ray
	}
	if nearT > hit.Distance || farT < lin.Max(nearT, 0) {
		return BoxSideNone
	}

	t, axis, signs := nearT, nearAxis, r.Signs
	fromBehind := nearT < 0
	if fromBehind {
		// the far plane along an axis sits on the opposite face from the
		// near plane, so the axis-to-side mapping uses the flipped signs.
		t, axis, signs = farT, farAxis, r.Signs.Neg()
		if t > hit.Distance {
			return BoxSideNone
		}
	}

	side := boxSide(axis, signs)
	position := r.At(t)
	uv := boxUV(position, side)

	if transparent && uv.OnCheckerboard() {
		if fromBehind || farT > hit.Distance {
			return BoxSideNone
		}
		side = boxSide(farAxis, r.Signs.Neg())
		fromBehind = true
		t = farT
		position = r.At(t)
		uv = boxUV(position, side)
		if uv.OnCheckerboard() {
			return BoxSideNone
		}
	}

	hit.Distance = t
	hit.Position = position
	hit.UV = uv
	hit.Normal = boxNormal(side)
	if fromBehind {
		hit.Normal = hit.Normal.Neg()
	}
	hit.FromBehind = fromBehind
	hit.UVCoverage = 0.25
	return side
}

// axis indices into a Vec3 treated as an array, used by minAxis/maxAxis.
const (
	axisX = iota
	axisY
	axisZ
)

func minAxis(v lin.Vec3) (axis int, t float32) {
	axis, t = axisX, v.X
	if v.Y > t {
		axis, t = axisY, v.Y
	}
	if v.Z > t {
		axis, t = axisZ, v.Z
	}
	return axis, t
}

func maxAxis(v lin.Vec3) (axis int, t float32) {
	axis, t = axisX, v.X
	if v.Y < t {
		axis, t = axisY, v.Y
	}
	if v.Z < t {
		axis, t = axisZ, v.Z
	}
	return axis, t
}

// boxSide maps the axis that produced the extremum t, plus the sign of the
// ray direction along that axis, to the face it entered/exited through.
func boxSide(axis int, signs lin.Vec3) BoxSide {
	switch axis {
	case axisX:
		if signs.X > 0 {
			return BoxSideLeft
		}
		return BoxSideRight
	case axisY:
		if signs.Y > 0 {
			return BoxSideBottom
		}
		return BoxSideTop
	default:
		if signs.Z > 0 {
			return BoxSideBack
		}
		return BoxSideFront
	}
}

func boxNormal(side BoxSide) lin.Vec3 {
	switch side {
	case BoxSideLeft:
		return lin.Vec3{X: -1}
	case BoxSideRight:
		return lin.Vec3{X: 1}
	case BoxSideBottom:
		return lin.Vec3{Y: -1}
	case BoxSideTop:
		return lin.Vec3{Y: 1}
	case BoxSideBack:
		return lin.Vec3{Z: -1}
	case BoxSideFront:
		return lin.Vec3{Z: 1}
	}
	return lin.Vec3{}
}

// boxUV maps a hit position on the given face to the remaining two axes,
// shifted from [-1,1] to [0,1].
func boxUV(position lin.Vec3, side BoxSide) lin.Vec2 {
	switch side {
	case BoxSideLeft, BoxSideRight:
		return lin.Vec2{X: position.Z, Y: position.Y}.ShiftToUnit()
	case BoxSideBottom, BoxSideTop:
		return lin.Vec2{X: position.X, Y: position.Z}.ShiftToUnit()
	default: // Back, Front
		return lin.Vec2{X: position.X, Y: position.Y}.ShiftToUnit()
	}
}
