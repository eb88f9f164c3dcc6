// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package ray provides the Ray and Hit types shared by every traversal and
// intersection routine in the tracer, plus the ray/AABB slab test used to
// cull BVH subtrees before any primitive test runs.
package ray

import "github.com/gazed/slimtrace/math/lin"

// Hit records the closest intersection found so far along a ray. Every
// primitive and traversal routine overwrites Hit fields only with an
// intersection no farther than the current Distance, so a Hit started at
// Miss() and passed through several candidate tests ends up holding the
// overall closest one. On an exact distance tie, which of the tied hits is
// kept is not defined.
type Hit struct {
	Position   lin.Vec3
	Normal     lin.Vec3
	UV         lin.Vec2
	Distance   float32
	UVCoverage float32
	ConeWidth  float32
	// ConeWidthScalingFactor is fixed per-pixel by the driver (§4.G) and
	// carried on the hit so the scene tracer can compute ConeWidth without
	// reaching back into the originating ray.
	ConeWidthScalingFactor float32
	ID                     uint32
	FromBehind             bool
}

// Miss returns a Hit primed for a closest-hit search: Distance set to the
// largest representable value so that any real intersection improves on it.
func Miss() Hit {
	return Hit{Distance: lin.Large, ConeWidthScalingFactor: 1}
}

// Hit reports whether the search ended with an actual intersection.
func (h Hit) Hit() bool { return h.Distance < lin.Large }

// Ray is a single traced ray: origin/direction plus the precomputed values
// every intersection routine needs (reciprocal direction for the slab test,
// scaled origin, and the sign of each direction component).
type Ray struct {
	Origin, Direction   lin.Vec3
	DirectionReciprocal lin.Vec3
	ScaledOrigin        lin.Vec3
	// Signs holds +1/-1 (never 0) for each direction component, used by the
	// box intersector to pick its near and far plane on each axis.
	Signs      lin.Vec3
	PixelX     int32
	PixelY     int32
	Depth      uint8
}

// New builds a Ray from an origin and (not necessarily unit) direction.
func New(origin, direction lin.Vec3) Ray {
	r := Ray{}
	r.Reset(origin, direction)
	return r
}

// Reset re-points the ray at a new origin/direction, recomputing the
// derived fields. Rays are reused across a worker's traversal (one per
// thread, see raytracer.Render), so Reset avoids an allocation per bounce.
func (r *Ray) Reset(origin, direction lin.Vec3) {
	r.Origin = origin
	r.Direction = direction
	r.DirectionReciprocal = direction.Reciprocal()
	r.ScaledOrigin = origin.Neg().Mul(r.DirectionReciprocal)
	r.Signs = lin.Vec3{X: sign(direction.X), Y: sign(direction.Y), Z: sign(direction.Z)}
}

func sign(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}

// At returns the point origin + direction*t.
func (r Ray) At(t float32) lin.Vec3 { return r.Direction.ScaleAdd(t, r.Origin) }

// Localize rewrites r in place as src expressed in the local space of
// transform: inverse-rotate and inverse-scale both origin and direction.
// Unlike Transform.InternDir, the resulting direction is NOT renormalized —
// local-space distance must equal world-space distance for the scene
// tracer's hit distance to remain valid (§4.F), which only holds if the
// direction's length is preserved consistently between local and world.
func (r *Ray) Localize(src Ray, transform lin.Transform) {
	invRotation := transform.Rotation.Conjugate()
	origin := invRotation.RotateVec3(src.Origin.Sub(transform.Position)).Div(transform.Scale)
	direction := invRotation.RotateVec3(src.Direction).Div(transform.Scale)
	r.Reset(origin, direction)
	r.PixelX, r.PixelY, r.Depth = src.PixelX, src.PixelY, src.Depth
}

// HitsAABB is the slab test: it returns the distance to the near face and
// whether the ray enters the box at all (far >= max(near, 0)). It is the
// sole gate for descending into any BVH subtree — both the mesh and scene
// tracers call this before touching a child's contents.
func (r Ray) HitsAABB(box lin.AABB) (distance float32, ok bool) {
	tMin, tMax := float32(0), lin.Large

	t1 := (box.Min.X - r.Origin.X) * r.DirectionReciprocal.X
	t2 := (box.Max.X - r.Origin.X) * r.DirectionReciprocal.X
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	tMin, tMax = lin.Max(tMin, t1), lin.Min(tMax, t2)

	t1 = (box.Min.Y - r.Origin.Y) * r.DirectionReciprocal.Y
	t2 = (box.Max.Y - r.Origin.Y) * r.DirectionReciprocal.Y
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	tMin, tMax = lin.Max(tMin, t1), lin.Min(tMax, t2)

	t1 = (box.Min.Z - r.Origin.Z) * r.DirectionReciprocal.Z
	t2 = (box.Max.Z - r.Origin.Z) * r.DirectionReciprocal.Z
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	tMin, tMax = lin.Max(tMin, t1), lin.Min(tMax, t2)

	return tMin, tMin <= tMax
}

// HitsPlane intersects the ray against the infinite plane through
// planeOrigin with unit normal planeNormal, writing into hit only if the
// result is no farther than hit.Distance. Used for the tetrahedron's four
// face planes (prim.Tetrahedron) and for mesh triangles (prim.HitTriangle);
// the quad, box and sphere have their own specialized tests.
func (r Ray) HitsPlane(planeOrigin, planeNormal lin.Vec3, hit *Hit) bool {
	nDotRd := planeNormal.Dot(r.Direction)
	if nDotRd == 0 {
		return false // ray parallel to the plane
	}

	nDotRoP := planeNormal.Dot(planeOrigin.Sub(r.Origin))
	if nDotRoP == 0 {
		return false // ray origin lies in the plane
	}

	rayFacingPlane := nDotRd < 0
	fromBehind := nDotRoP > 0
	if fromBehind == rayFacingPlane {
		return false // ray points away from the plane
	}

	t := nDotRoP / nDotRd
	if t > hit.Distance {
		return false
	}

	hit.Distance = t
	hit.Position = r.At(t)
	hit.Normal = planeNormal
	hit.FromBehind = fromBehind
	return true
}
