// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package mesh traces a ray against a single mesh's per-triangle BVH: the
// component E "mesh BVH traversal" referenced from scenetrace once a ray
// has been localized into a mesh geometry's object space.
package mesh

import (
	"github.com/gazed/slimtrace/bvh"
	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/prim"
	"github.com/gazed/slimtrace/ray"
)

// Mesh is a triangle soup plus the BVH built over it by bvh.Build.
type Mesh struct {
	Triangles []prim.Triangle
	BVH       bvh.BVH
}

// New builds a Mesh's BVH from its triangle positions.
func New(triangles []prim.Triangle) *Mesh {
	boxes := make([]lin.AABB, len(triangles))
	for i, t := range triangles {
		boxes[i] = t.AABB()
	}
	return &Mesh{Triangles: triangles, BVH: bvh.Build(boxes)}
}

// Trace walks m's BVH in object space, returning true if any triangle was
// struck closer than hit.Distance. anyHit stops at the first qualifying
// triangle (shadow-ray mode); otherwise the closest triangle wins.
func Trace(r ray.Ray, hit *ray.Hit, m *Mesh, anyHit bool) bool {
	nodes := m.BVH.Nodes
	if len(nodes) == 0 || len(m.BVH.LeafIDs) == 0 {
		return false
	}

	if _, ok := r.HitsAABB(nodes[0].AABB); !ok {
		return false
	}
	if nodes[0].LeafCount > 0 {
		return hitTriangles(r, hit, m, nodes[0].FirstIndex, uint32(nodes[0].LeafCount), anyHit)
	}

	var stack [64]uint32
	stackSize := 0
	found := false

	left := nodes[0].FirstIndex
	for {
		right := left + 1
		leftNode, rightNode := nodes[left], nodes[right]

		leftDist, hitLeft := r.HitsAABB(leftNode.AABB)
		rightDist, hitRight := r.HitsAABB(rightNode.AABB)
		hitLeft = hitLeft && leftDist < hit.Distance
		hitRight = hitRight && rightDist < hit.Distance

		leftIsLeaf, rightIsLeaf := false, false

		if hitLeft && leftNode.LeafCount > 0 {
			if hitTriangles(r, hit, m, leftNode.FirstIndex, uint32(leftNode.LeafCount), anyHit) {
				found = true
				if anyHit {
					break
				}
			}
			leftIsLeaf = true
		}
		if hitRight && rightNode.LeafCount > 0 {
			if hitTriangles(r, hit, m, rightNode.FirstIndex, uint32(rightNode.LeafCount), anyHit) {
				found = true
				if anyHit {
					break
				}
			}
			rightIsLeaf = true
		}

		haveLeft := hitLeft && !leftIsLeaf
		haveRight := hitRight && !rightIsLeaf

		if haveLeft && haveRight {
			if !anyHit && leftDist > rightDist {
				left, right = right, left
			}
			if stackSize == len(stack) {
				return found
			}
			stack[stackSize] = nodes[right].FirstIndex
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
			break
		}
		stackSize--
		left = stack[stackSize]
	}

	return found
}

func hitTriangles(r ray.Ray, closest *ray.Hit, m *Mesh, firstIndex uint32, count uint32, anyHit bool) bool {
	found := false
	for i := uint32(0); i < count; i++ {
		itemID := m.BVH.LeafIDs[firstIndex+i]
		tri := m.Triangles[itemID]
		current := *closest
		if !prim.HitTriangle(r, &current, tri) {
			continue
		}
		current.ID = itemID
		*closest = current
		found = true
		if anyHit {
			break
		}
	}
	return found
}
