// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package prim

import (
	"github.com/chewxy/math32"

	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/ray"
)

// unitSphereAreaOverSix is the unit sphere's surface area (4*pi) divided by
// six, used so a sphere's uv_coverage sits on the same scale as a cube
// face's (each covering roughly 1/6 of the enclosing sphere/cube).
const unitSphereAreaOverSix = 4 * math32.Pi / 6

// Sphere intersects r against the unit sphere centered at the local origin.
func Sphere(r ray.Ray, hit *ray.Hit, transparent bool) bool {
	tToClosest := -r.Origin.Dot(r.Direction)
	if tToClosest <= 0 {
		return false // ray aims away from the sphere
	}

	directionSquaredLength := r.Direction.SquaredLength()
	deltaSquared := tToClosest*tToClosest + (1-r.Origin.SquaredLength())*directionSquaredLength
	if deltaSquared <= 0 {
		return false // ray misses the sphere
	}

	delta := math32.Sqrt(deltaSquared)
	t := (tToClosest - delta) / directionSquaredLength
	if t > hit.Distance {
		return false
	}

	normal := r.At(t)
	uv := sphereUV(normal)
	fromBehind := t <= 0 || (transparent && uv.OnCheckerboard())
	if fromBehind {
		t = (tToClosest + delta) / directionSquaredLength
		if t <= 0 || t > hit.Distance {
			return false
		}
		normal = r.At(t)
		uv = sphereUV(normal)
		if transparent && uv.OnCheckerboard() {
			return false
		}
	}

	hit.Distance = t
	hit.Position = normal
	hit.Normal = normal
	hit.UV = uv
	hit.FromBehind = fromBehind
	hit.UVCoverage = 1 / unitSphereAreaOverSix
	return true
}

// sphereUV projects a unit-sphere surface point to (u,v) by choosing the
// dominant pair of axes (an octahedral-ish projection, not the usual
// spherical (theta,phi) map) and shifting the result into [0,1].
func sphereUV(p lin.Vec3) lin.Vec2 {
	x, y, z := p.X, p.Y, p.Z

	zOverX := ratio(z, x)
	yOverX := ratio(y, x)
	var uv lin.Vec2
	if zOverX <= 1 && zOverX >= -1 && yOverX <= 1 && yOverX >= -1 {
		uv.X = zOverX
		if x > 0 {
			uv.Y = yOverX
		} else {
			uv.Y = -yOverX
		}
	} else {
		xOverZ := ratio(x, z)
		yOverZ := ratio(y, z)
		if xOverZ <= 1 && xOverZ >= -1 && yOverZ <= 1 && yOverZ >= -1 {
			uv.X = -xOverZ
			if z > 0 {
				uv.Y = yOverZ
			} else {
				uv.Y = -yOverZ
			}
		} else {
			denom := y
			if denom < 0 {
				denom = -denom
			}
			uv.X = x / denom
			uv.Y = z / y
		}
	}

	return uv.ShiftToUnit()
}

func ratio(a, b float32) float32 {
	if b == 0 {
		return 2 // forces the caller's [-1,1] range check to fail
	}
	return a / b
}
