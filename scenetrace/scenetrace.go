// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package scenetrace descends the scene BVH (component F): per leaf
// geometry it localizes the ray into object space, dispatches to the
// primitive or mesh tracer, and finalizes the winning hit back into world
// space.
package scenetrace

import (
	"github.com/chewxy/math32"

	"github.com/gazed/slimtrace/bvh"
	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/mesh"
	"github.com/gazed/slimtrace/prim"
	"github.com/gazed/slimtrace/ray"
	"github.com/gazed/slimtrace/scene"
	"github.com/gazed/slimtrace/texture"
)

// traceOffset nudges a localized ray's origin forward along its direction
// before testing, to avoid the hit surface re-intersecting itself.
const traceOffset = 1e-4

// Hit is a finalized scene-level hit: the underlying ray.Hit (now in world
// space) plus which geometry/material it belongs to.
type Hit struct {
	ray.Hit
	GeometryID uint32
	MaterialID uint32
}

// Tracer owns one worker's traversal scratch: the scene BVH stack. One per
// rendering goroutine (§5); never shared across threads.
type Tracer struct {
	stack []uint32
}

// NewTracer allocates a Tracer whose stack is sized for sc's current BVH
// height (§5: "Scene BVH stack = scene.bvh.height").
func NewTracer(sc *scene.Scene) *Tracer {
	height := int(sc.BVH.Height) + 2
	if height < 4 {
		height = 4
	}
	return &Tracer{stack: make([]uint32, height)}
}

// Trace descends sc's scene BVH for worldRay (whose direction must be unit
// length, so the local-space hit parameter equals world distance), stopping
// at maxDistance. anyHit=true returns the first qualifying hit (shadow
// rays) instead of the closest one. coneScale is the per-pixel ray-cone
// scaling factor (§4.G), irrelevant for shadow rays.
func (t *Tracer) Trace(worldRay ray.Ray, sc *scene.Scene, anyHit bool, maxDistance, coneScale float32) (Hit, bool) {
	best := maxDistance
	var bestHit ray.Hit
	var bestGeom, bestMat uint32
	found := false

	nodes := sc.BVH.Nodes
	if len(nodes) == 0 {
		return Hit{}, false
	}
	if _, ok := worldRay.HitsAABB(nodes[0].AABB); !ok {
		return Hit{}, false
	}

	testRange := func(firstIndex uint32, count uint16) bool {
		for i := uint32(0); i < uint32(count); i++ {
			id := sc.BVH.LeafIDs[firstIndex+i]
			geom := &sc.Geometries[id]

			if anyHit {
				if geom.Flags&scene.Shadowing == 0 {
					continue
				}
			} else if geom.Flags&scene.Visible == 0 {
				continue
			}

			if hit, ok := t.traceGeometry(worldRay, sc, geom, best, coneScale); ok {
				bestHit = hit
				best = hit.Distance
				bestGeom = id
				bestMat = geom.MaterialID
				found = true
				if anyHit {
					return true
				}
			}
		}
		return false
	}

	if nodes[0].LeafCount > 0 {
		testRange(nodes[0].FirstIndex, nodes[0].LeafCount)
	} else {
		t.walk(worldRay, nodes, nodes[0].FirstIndex, anyHit, testRange)
	}

	if !found {
		return Hit{}, false
	}
	return Hit{Hit: bestHit, GeometryID: bestGeom, MaterialID: bestMat}, true
}

// walk is the ordered, bounded-stack BVH descent shared in shape with
// mesh.Trace's: both children's AABBs are tested, leaves are scanned
// immediately, and the farther internal child is pushed while the nearer
// is descended first.
func (t *Tracer) walk(worldRay ray.Ray, nodes []bvh.Node, rootLeft uint32, anyHit bool, testRange func(uint32, uint16) bool) {
	left := rootLeft
	stackSize := 0

	for {
		right := left + 1
		leftNode, rightNode := nodes[left], nodes[right]

		leftDist, hitLeft := worldRay.HitsAABB(leftNode.AABB)
		rightDist, hitRight := worldRay.HitsAABB(rightNode.AABB)

		leftIsLeaf, rightIsLeaf := false, false
		if hitLeft && leftNode.LeafCount > 0 {
			if testRange(leftNode.FirstIndex, leftNode.LeafCount) && anyHit {
				return
			}
			leftIsLeaf = true
		}
		if hitRight && rightNode.LeafCount > 0 {
			if testRange(rightNode.FirstIndex, rightNode.LeafCount) && anyHit {
				return
			}
			rightIsLeaf = true
		}

		haveLeft := hitLeft && !leftIsLeaf
		haveRight := hitRight && !rightIsLeaf

		if haveLeft && haveRight {
			if !anyHit && leftDist > rightDist {
				left, right = right, left
			}
			if stackSize == len(t.stack) {
				return
			}
			t.stack[stackSize] = nodes[right].FirstIndex
			stackSize++
			left = nodes[left].FirstIndex
			continue
		}
		if haveLeft {
			left = nodes[left].FirstIndex
			continue
		}
		if haveRight {
			left = nodes[right].FirstIndex
			continue
		}
		if stackSize == 0 {
			return
		}
		stackSize--
		left = t.stack[stackSize]
	}
}

// traceGeometry localizes worldRay into geom's object space and dispatches
// to the matching primitive test or the mesh tracer, finalizing any hit
// back into world space (§4.F).
func (t *Tracer) traceGeometry(worldRay ray.Ray, sc *scene.Scene, geom *scene.Geometry, maxDistance, coneScale float32) (ray.Hit, bool) {
	var localRay ray.Ray
	localRay.Localize(worldRay, geom.Transform)
	localRay.Reset(localRay.Direction.ScaleAdd(traceOffset, localRay.Origin), localRay.Direction)

	candidate := ray.Miss()
	candidate.Distance = maxDistance
	candidate.ConeWidthScalingFactor = coneScale

	transparent := geom.Flags&scene.Transparent != 0
	found := false

	switch geom.Type {
	case scene.TypeQuad:
		found = prim.Quad(localRay, &candidate, transparent)
	case scene.TypeBox:
		found = prim.Box(localRay, &candidate, transparent) != prim.BoxSideNone
	case scene.TypeSphere:
		found = prim.Sphere(localRay, &candidate, transparent)
	case scene.TypeTetrahedron:
		found = prim.Tetrahedron(localRay, &candidate, transparent)
	case scene.TypeMesh:
		if int(geom.MeshID) < len(sc.Meshes) {
			if m := sc.Meshes[geom.MeshID]; m != nil {
				found = mesh.Trace(localRay, &candidate, m, false)
			}
		}
	}
	if !found {
		return ray.Hit{}, false
	}

	return t.finalize(candidate, geom, sc, worldRay), true
}

// TraceGeometryLocal intersects worldRay against a single geometry,
// returning the raw local-space hit (not finalized to world space), which
// keeps local quantities (e.g. a sphere occluder's distance-to-center, a
// quad occluder's local x/z) that finalize would otherwise discard. The
// shader's emissive-quad occlusion estimate (§4.H.4) does not call it; it
// localizes its own shadow ray against each occluder.
func (t *Tracer) TraceGeometryLocal(worldRay ray.Ray, sc *scene.Scene, geomID uint32, maxDistance float32) (ray.Hit, bool) {
	if int(geomID) >= len(sc.Geometries) {
		return ray.Hit{}, false
	}
	geom := &sc.Geometries[geomID]

	var localRay ray.Ray
	localRay.Localize(worldRay, geom.Transform)
	localRay.Reset(localRay.Direction.ScaleAdd(traceOffset, localRay.Origin), localRay.Direction)

	candidate := ray.Miss()
	candidate.Distance = maxDistance

	transparent := geom.Flags&scene.Transparent != 0
	found := false

	switch geom.Type {
	case scene.TypeQuad:
		found = prim.Quad(localRay, &candidate, transparent)
	case scene.TypeBox:
		found = prim.Box(localRay, &candidate, transparent) != prim.BoxSideNone
	case scene.TypeSphere:
		found = prim.Sphere(localRay, &candidate, transparent)
	case scene.TypeTetrahedron:
		found = prim.Tetrahedron(localRay, &candidate, transparent)
	case scene.TypeMesh:
		if int(geom.MeshID) < len(sc.Meshes) {
			if m := sc.Meshes[geom.MeshID]; m != nil {
				found = mesh.Trace(localRay, &candidate, m, false)
			}
		}
	}
	return candidate, found
}

// finalize converts a local-space primitive hit into a world-space scene
// hit: apply uv_repeat, flip the normal if struck from behind, recompute
// distance/cone_width in world units, and rotate position/normal to world
// (§4.F).
func (t *Tracer) finalize(local ray.Hit, geom *scene.Geometry, sc *scene.Scene, worldRay ray.Ray) ray.Hit {
	var mat *scene.Material
	if int(geom.MaterialID) < len(sc.Materials) {
		mat = &sc.Materials[geom.MaterialID]
	}

	normal := local.Normal
	if local.FromBehind {
		normal = normal.Neg()
	}

	worldPosition := geom.Transform.ExternPos(local.Position)
	worldNormal := geom.Transform.ExternDir(normal)
	distance := worldPosition.Sub(worldRay.Origin).Length()

	repeatU, repeatV := float32(1), float32(1)
	if mat != nil && (mat.UVRepeat.X != 0 || mat.UVRepeat.Y != 0) {
		repeatU, repeatV = mat.UVRepeat.X, mat.UVRepeat.Y
	}
	uv := lin.Vec2{X: local.UV.X * repeatU, Y: local.UV.Y * repeatV}

	coneWidth := distance * local.ConeWidthScalingFactor
	absNdotD := math32.Abs(worldNormal.Dot(worldRay.Direction))
	oneMinusNScale := math32.Abs(lin.V3(1).Sub(worldNormal).Dot(geom.Transform.Scale))
	coverage := texture.RayConeFootprint(coneWidth, repeatU, repeatV, absNdotD, oneMinusNScale)

	return ray.Hit{
		Position:               worldPosition,
		Normal:                 worldNormal,
		UV:                     uv,
		Distance:               distance,
		UVCoverage:             coverage,
		ConeWidth:              coneWidth,
		ConeWidthScalingFactor: local.ConeWidthScalingFactor,
		ID:                     local.ID,
		FromBehind:             local.FromBehind,
	}
}
