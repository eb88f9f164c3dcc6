// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// Transform is an orientation quaternion plus position plus nonuniform
// scale, applied in the order scale, rotate, translate. Every Geometry in
// the scene carries one; it maps the geometry's unit primitive (§3) from
// local space into world space and back.
type Transform struct {
	Position Vec3
	Rotation Quat
	Scale    Vec3
}

// Ident returns the identity transform: no scale, rotation, or translation.
func Ident() Transform { return Transform{Scale: V3(1), Rotation: QI} }

// ExternPos maps a local-space point to world space: scale, then rotate,
// then translate.
func (t Transform) ExternPos(p Vec3) Vec3 {
	return t.Rotation.RotateVec3(p.Mul(t.Scale)).Add(t.Position)
}

// InternPos maps a world-space point to local space: the exact inverse of
// ExternPos (untranslate, unrotate, unscale).
func (t Transform) InternPos(p Vec3) Vec3 {
	return t.Rotation.Conjugate().RotateVec3(p.Sub(t.Position)).Div(t.Scale)
}

// ExternDir maps a local-space direction to world space and renormalizes,
// since nonuniform scale does not preserve length.
func (t Transform) ExternDir(d Vec3) Vec3 {
	return t.Rotation.RotateVec3(d.Mul(t.Scale)).Normalized()
}

// InternDir maps a world-space direction to local space and renormalizes.
func (t Transform) InternDir(d Vec3) Vec3 {
	return t.Rotation.Conjugate().RotateVec3(d).Div(t.Scale).Normalized()
}

// ExternAABB maps a local-space AABB into world space by transforming all
// 8 corners and taking their bounding box; used when a geometry's local
// AABB (e.g. a mesh's precomputed bounds) needs to be re-expressed in world
// space.
func (t Transform) ExternAABB(box AABB) AABB {
	out := EmptyAABB()
	corners := box.Corners()
	for _, c := range corners {
		out = out.Grow(t.ExternPos(c))
	}
	return out
}

// InternAABB is the inverse of ExternAABB.
func (t Transform) InternAABB(box AABB) AABB {
	out := EmptyAABB()
	corners := box.Corners()
	for _, c := range corners {
		out = out.Grow(t.InternPos(c))
	}
	return out
}
