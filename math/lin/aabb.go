// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// AABB is an axis-aligned bounding box, grounded on the teacher's
// physics.Abox (smallest/largest corner pair used for broad-phase
// overlap tests), generalized here to also back BVH node bounds and the
// ray/box slab test.
type AABB struct {
	Min, Max Vec3
}

// EmptyAABB returns a degenerate AABB (min = +Large, max = -Large) ready to
// be grown by repeated calls to Grow.
func EmptyAABB() AABB {
	return AABB{Min: V3(Large), Max: V3(-Large)}
}

// Grow returns the AABB extended, if necessary, to contain p.
func (b AABB) Grow(p Vec3) AABB {
	return AABB{Min: MinVec3(b.Min, p), Max: MaxVec3(b.Max, p)}
}

// Union returns the smallest AABB containing both b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{Min: MinVec3(b.Min, o.Min), Max: MaxVec3(b.Max, o.Max)}
}

// Eq (==) returns true if b and o have identical bounds.
func (b AABB) Eq(o AABB) bool { return b.Min.Eq(o.Min) && b.Max.Eq(o.Max) }

// Centroid returns the midpoint of the box, used by the BVH builder to
// choose a split axis/position.
func (b AABB) Centroid() Vec3 { return b.Min.Add(b.Max).Scale(0.5) }

// Extent returns max - min.
func (b AABB) Extent() Vec3 { return b.Max.Sub(b.Min) }

// SurfaceArea returns the surface area of the box; an empty (inverted) box
// reports 0.
func (b AABB) SurfaceArea() float32 {
	e := b.Extent()
	if e.X < 0 || e.Y < 0 || e.Z < 0 {
		return 0
	}
	return 2 * (e.X*e.Y + e.Y*e.Z + e.Z*e.X)
}

// Overlaps returns true if b and o share any interior volume. Matches
// physics.Abox.Overlaps: touching along a face/edge/point is not an overlap.
func (b AABB) Overlaps(o AABB) bool {
	return b.Max.X > o.Min.X && b.Min.X < o.Max.X &&
		b.Max.Y > o.Min.Y && b.Min.Y < o.Max.Y &&
		b.Max.Z > o.Min.Z && b.Min.Z < o.Max.Z
}

// Corners returns the 8 corners of the box, used when remapping an AABB
// through a Transform (scale/rotation can tilt axes, so all 8 corners must
// be tested to find the new bounding box).
func (b AABB) Corners() [8]Vec3 {
	return [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z}, {b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z}, {b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z}, {b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z}, {b.Max.X, b.Max.Y, b.Max.Z},
	}
}

// RectI is an integer screen rectangle, used for a geometry's conservative
// screen-space bounds (an optional early-out before localizing a ray for
// that geometry).
type RectI struct {
	Left, Right, Top, Bottom int32
}

// Contains returns true if the pixel (x, y) falls within the rectangle.
func (r RectI) Contains(x, y int32) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// FullScreen returns a RectI covering the entire w x h canvas, the default
// used when a geometry has no computed screen bound yet.
func FullScreen(w, h int32) RectI {
	return RectI{Left: 0, Right: w, Top: 0, Bottom: h}
}
