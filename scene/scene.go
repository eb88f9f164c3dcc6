// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package scene is the engine's scene container (component K): dense
// arrays of geometries/lights/materials/textures/meshes/cameras plus the
// derived per-frame state (AABBs, scene BVH) that scenetrace descends.
package scene

import (
	"github.com/chewxy/math32"

	"github.com/gazed/slimtrace/bvh"
	"github.com/gazed/slimtrace/color"
	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/mesh"
	"github.com/gazed/slimtrace/prim"
	"github.com/gazed/slimtrace/texture"
)

// GeometryType is the closed set of primitive variants a Geometry can be
// (§9: no open-ended polymorphism).
type GeometryType uint8

const (
	TypeQuad GeometryType = iota
	TypeBox
	TypeSphere
	TypeTetrahedron
	TypeMesh
)

// GeometryFlags gates visibility, shadow participation, and the
// checkerboard-punch-through behavior (§3, §4.B).
type GeometryFlags uint8

const (
	Visible GeometryFlags = 1 << iota
	Shadowing
	Transparent
)

// Geometry places one primitive instance in the scene.
type Geometry struct {
	Transform    lin.Transform
	Type         GeometryType
	MaterialID   uint32
	MeshID       uint32
	Flags        GeometryFlags
	ScreenBounds lin.RectI
}

// BRDF names the surface shading model a Material uses (§4.H).
type BRDF uint8

const (
	Lambert BRDF = iota
	Phong
	Blinn
	CookTorrance
)

// MaterialFlags select optional shading behavior.
type MaterialFlags uint8

const (
	Emissive MaterialFlags = 1 << iota
	Reflective
	Refractive
	HasAlbedoMap
	HasNormalMap
)

// MaxMaterialTextures bounds the fixed TextureIDs array (§3: "texture_ids[<=16]").
const MaxMaterialTextures = 16

// Material is a surface's shading parameters (§3).
type Material struct {
	Albedo          color.Color
	Reflectivity    color.Color
	Emission        color.Color
	UVRepeat        lin.Vec2
	Roughness       float32
	Metalness       float32
	NormalMagnitude float32
	IOR1OverIOR2    float32
	IOR2OverIOR1    float32
	BRDF            BRDF
	Flags           MaterialFlags
	TextureIDs      [MaxMaterialTextures]int32
	TextureCount    int
}

// Light is a point, directional, or (via an Emissive quad Geometry) area
// light source (§3).
type Light struct {
	Color               color.Color
	PositionOrDirection lin.Vec3
	Intensity           float32
	Directional         bool
}

// Camera projects primary rays (§4.J).
type Camera struct {
	Position     lin.Vec3
	Rotation     lin.Quat
	FocalLength  float32
}

// Scene owns every array the renderer reads during a frame, plus the
// derived per-geometry AABBs and scene BVH rebuilt from them.
type Scene struct {
	Geometries []Geometry
	Lights     []Light
	Materials  []Material
	Textures   []*texture.Texture
	Meshes     []*mesh.Mesh
	Cameras    []Camera

	AABBs            []lin.AABB
	BVH              bvh.BVH
	HasEmissiveQuads bool
}

// New allocates a Scene with the given array contents. Arrays are sized at
// construction and never grow (§3: "no dynamic insertion").
func New(geometries []Geometry, lights []Light, materials []Material, textures []*texture.Texture, meshes []*mesh.Mesh, cameras []Camera) *Scene {
	s := &Scene{
		Geometries: geometries,
		Lights:     lights,
		Materials:  materials,
		Textures:   textures,
		Meshes:     meshes,
		Cameras:    cameras,
	}
	s.UpdateAABBs()
	s.UpdateBVH()
	return s
}

var (
	quadLocalAABB = lin.AABB{Min: lin.Vec3{X: -1, Y: 0, Z: -1}, Max: lin.Vec3{X: 1, Y: 0, Z: 1}}
	boxLocalAABB  = lin.AABB{Min: lin.V3(-1), Max: lin.V3(1)}
	tetLocalAABB  = lin.AABB{Min: lin.V3(-prim.TetMax), Max: lin.V3(prim.TetMax)}
)

// sphereSampleDirections approximates the world-space extent of a
// non-uniformly scaled unit sphere: 32 directions spread over the sphere
// (a Fibonacci lattice), each transformed and grown into the AABB. The box
// is spanned by those sample points only, so it can lie slightly inside
// the sphere's true extent.
var sphereSampleDirections = fibonacciSphere(32)

func fibonacciSphere(n int) []lin.Vec3 {
	dirs := make([]lin.Vec3, n)
	goldenAngle := float32(2.399963) // ~pi*(3-sqrt(5))
	for i := 0; i < n; i++ {
		y := 1 - 2*float32(i)/float32(n-1)
		radius := math32.Sqrt(1 - y*y)
		theta := goldenAngle * float32(i)
		dirs[i] = lin.Vec3{X: math32.Cos(theta) * radius, Y: y, Z: math32.Sin(theta) * radius}
	}
	return dirs
}

// UpdateAABBs recomputes world-space AABBs for every geometry from its
// current transform (§3 invariant: aabbs[g] bounds the transformed unit
// primitive; for spheres the box is the sampled approximation described at
// sphereSampleDirections). Called whenever a transform changes.
func (s *Scene) UpdateAABBs() {
	if cap(s.AABBs) < len(s.Geometries) {
		s.AABBs = make([]lin.AABB, len(s.Geometries))
	} else {
		s.AABBs = s.AABBs[:len(s.Geometries)]
	}

	for i, g := range s.Geometries {
		switch g.Type {
		case TypeQuad:
			s.AABBs[i] = g.Transform.ExternAABB(quadLocalAABB)
		case TypeBox:
			s.AABBs[i] = g.Transform.ExternAABB(boxLocalAABB)
		case TypeTetrahedron:
			s.AABBs[i] = g.Transform.ExternAABB(tetLocalAABB)
		case TypeSphere:
			box := lin.EmptyAABB()
			for _, d := range sphereSampleDirections {
				box = box.Grow(g.Transform.ExternPos(d))
			}
			s.AABBs[i] = box
		case TypeMesh:
			var local lin.AABB
			if m := s.meshAt(g.MeshID); m != nil && len(m.BVH.Nodes) > 0 {
				local = m.BVH.Nodes[0].AABB
			} else {
				local = lin.EmptyAABB()
			}
			s.AABBs[i] = g.Transform.ExternAABB(local)
		default:
			s.AABBs[i] = lin.EmptyAABB()
		}
	}
}

func (s *Scene) meshAt(id uint32) *mesh.Mesh {
	if int(id) >= len(s.Meshes) {
		return nil
	}
	return s.Meshes[id]
}

// UpdateBVH rebuilds the scene BVH from the current AABBs and refreshes the
// HasEmissiveQuads flag the shader's emissive-quad pass gates on.
func (s *Scene) UpdateBVH() {
	s.BVH = bvh.Build(s.AABBs)

	s.HasEmissiveQuads = false
	for _, g := range s.Geometries {
		if g.Type != TypeQuad || int(g.MaterialID) >= len(s.Materials) {
			continue
		}
		if s.Materials[g.MaterialID].Flags&Emissive != 0 {
			s.HasEmissiveQuads = true
			break
		}
	}
}
