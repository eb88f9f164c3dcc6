// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package bvh builds the two-level bounding volume hierarchies the tracer
// descends at render time: one per mesh over its triangles, and one over
// the scene's geometries. Building happens when a mesh is created
// (mesh.New) and whenever the scene rebuilds its hierarchy
// (scene.UpdateBVH); nothing here runs during traversal.
package bvh

import (
	"sort"

	"github.com/gazed/slimtrace/math/lin"
)

// maxLeafSize bounds how many items a leaf may span before the builder
// keeps splitting.
const maxLeafSize = 4

// Node is a packed BVH node (§3). A LeafCount of 0 marks an internal node
// whose children live at FirstIndex and FirstIndex+1; a nonzero LeafCount
// marks a leaf spanning LeafIDs[FirstIndex : FirstIndex+LeafCount].
type Node struct {
	AABB       lin.AABB
	FirstIndex uint32
	LeafCount  uint16
}

// BVH is a built hierarchy plus the permutation of item indices (triangles
// for a mesh BVH, geometries for the scene BVH) its leaves reference.
type BVH struct {
	Nodes   []Node
	LeafIDs []uint32
	Height  uint8
}

// Build constructs a BVH over boxes (one AABB per item, in the owning
// collection's original order) using a recursive median split on the axis
// of greatest centroid extent. Items are never reordered in the caller's
// collection — LeafIDs carries the permutation a leaf walks instead.
func Build(boxes []lin.AABB) BVH {
	n := len(boxes)
	if n == 0 {
		return BVH{Nodes: []Node{{AABB: lin.EmptyAABB()}}, LeafIDs: nil, Height: 1}
	}

	ids := make([]uint32, n)
	for i := range ids {
		ids[i] = uint32(i)
	}

	b := &builder{boxes: boxes, ids: ids, nodes: make([]Node, maxNodeCount(n))}
	b.next = 1
	b.fill(0, 0, n, 0)

	return BVH{Nodes: b.nodes[:b.next], LeafIDs: ids, Height: b.height}
}

// maxNodeCount is the worst case node count for a binary tree built down to
// single-item leaves: 2n-1. Using maxLeafSize>1 only ever needs fewer.
func maxNodeCount(n int) int {
	if n < 1 {
		n = 1
	}
	return 2*n - 1
}

type builder struct {
	boxes  []lin.AABB
	ids    []uint32
	nodes  []Node
	next   uint32
	height uint8
}

// fill writes the subtree covering ids[start:end] into nodes[idx], growing
// the node array (via b.next) for any children it needs.
func (b *builder) fill(idx uint32, start, end, depth int) {
	if depth+1 > int(b.height) {
		b.height = uint8(depth + 1)
	}

	box := lin.EmptyAABB()
	for _, id := range b.ids[start:end] {
		box = box.Union(b.boxes[id])
	}

	count := end - start
	if count <= maxLeafSize {
		b.nodes[idx] = Node{AABB: box, FirstIndex: uint32(start), LeafCount: uint16(count)}
		return
	}

	axis := widestAxis(box)
	sub := b.ids[start:end]
	sort.Slice(sub, func(i, j int) bool {
		return axisOf(b.boxes[sub[i]].Centroid(), axis) < axisOf(b.boxes[sub[j]].Centroid(), axis)
	})
	mid := start + count/2

	left := b.next
	right := b.next + 1
	b.next += 2

	b.nodes[idx] = Node{AABB: box, FirstIndex: left, LeafCount: 0}
	b.fill(left, start, mid, depth+1)
	b.fill(right, mid, end, depth+1)
}

func widestAxis(box lin.AABB) int {
	extent := box.Extent()
	axis := 0
	widest := extent.X
	if extent.Y > widest {
		axis, widest = 1, extent.Y
	}
	if extent.Z > widest {
		axis = 2
	}
	return axis
}

func axisOf(v lin.Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
