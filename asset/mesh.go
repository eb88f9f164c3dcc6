// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package asset reads the engine's own precomputed binary mesh and texture
// formats (§6) — distinct from source-asset readers like OBJ/PNG/FBX, which
// are out of scope per spec.md §1. Grounded on the teacher's load/iqm.go
// idiom: a fixed header struct decoded with encoding/binary.Read, followed
// by manual little-endian array reads.
package asset

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/mesh"
	"github.com/gazed/slimtrace/prim"
)

// numbers formats counts into error messages with locale-independent digit
// grouping, so a malformed file reporting a garbage count (a corrupt length
// field decodes as billions) still reads as a number at a glance.
var numbers = message.NewPrinter(language.AmericanEnglish)

// maxMeshCount bounds a single vertex/triangle count read from a file
// header, rejecting an obviously corrupt or truncated length field before
// it drives an enormous allocation.
const maxMeshCount = 1 << 24

// meshHeader mirrors §6's mesh file header exactly, field for field;
// encoding/binary.Read serializes struct fields in declaration order with
// no alignment padding, the same property load/iqm.go's iqmheader relies on.
type meshHeader struct {
	VertexCount   uint32
	NormalCount   uint32
	UVCount       uint32
	TriangleCount uint32
	BVHNodeCount  uint32
	BVHHeight     uint16
}

// triangleDerived is the precomputed per-triangle intersection data §6
// stores after the index arrays: everything prim.Triangle needs except the
// raw vertices, which are reconstructed from the position index triples.
type triangleDerived struct {
	Position, Normal         lin.Vec3
	LocalToTangent           lin.Mat3
	AreaParallelogram, AreaUV float32
}

// LoadMesh reads the engine's native binary mesh format (§6) and returns a
// ready-to-trace mesh.Mesh. r is expected to be opened and closed by the
// caller, following load.Iqm's convention.
//
// The file's own BVH node table and trailing AABB are the asset pipeline's
// precomputed hierarchy; rather than decode them into a second bvh.BVH,
// LoadMesh rebuilds the hierarchy with mesh.New (the same builder every
// in-memory scene in this engine uses) from the decoded triangles, and only
// validates that a BVH section is present. Keeping the file's node bytes as
// a second, undecoded source of truth avoids ever needing the two builders
// to agree bit-for-bit.
func LoadMesh(r io.Reader) (*mesh.Mesh, error) {
	hdr := meshHeader{}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("asset: reading mesh header: %w", err)
	}
	if hdr.VertexCount == 0 || hdr.TriangleCount == 0 {
		return nil, fmt.Errorf("asset: empty mesh (%s vertices, %s triangles)",
			numbers.Sprintf("%d", hdr.VertexCount), numbers.Sprintf("%d", hdr.TriangleCount))
	}
	if hdr.VertexCount > maxMeshCount || hdr.TriangleCount > maxMeshCount {
		return nil, fmt.Errorf("asset: mesh counts too large (%s vertices, %s triangles)",
			numbers.Sprintf("%d", hdr.VertexCount), numbers.Sprintf("%d", hdr.TriangleCount))
	}
	if hdr.BVHNodeCount == 0 {
		return nil, fmt.Errorf("asset: mesh file has no BVH node table")
	}

	positions := make([]lin.Vec3, hdr.VertexCount)
	if err := binary.Read(r, binary.LittleEndian, positions); err != nil {
		return nil, fmt.Errorf("asset: reading vertex positions: %w", err)
	}

	if hdr.NormalCount > 0 {
		if err := skip(r, int64(hdr.NormalCount)*12); err != nil {
			return nil, fmt.Errorf("asset: reading vertex normals: %w", err)
		}
	}
	if hdr.UVCount > 0 {
		if err := skip(r, int64(hdr.UVCount)*8); err != nil {
			return nil, fmt.Errorf("asset: reading vertex uvs: %w", err)
		}
	}

	posIndices := make([]uint32, 3*hdr.TriangleCount)
	if err := binary.Read(r, binary.LittleEndian, posIndices); err != nil {
		return nil, fmt.Errorf("asset: reading triangle position indices: %w", err)
	}
	if hdr.NormalCount > 0 {
		if err := skip(r, int64(hdr.TriangleCount)*3*4); err != nil {
			return nil, fmt.Errorf("asset: reading triangle normal indices: %w", err)
		}
	}
	if hdr.UVCount > 0 {
		if err := skip(r, int64(hdr.TriangleCount)*3*4); err != nil {
			return nil, fmt.Errorf("asset: reading triangle uv indices: %w", err)
		}
	}

	derivedData := make([]triangleDerived, hdr.TriangleCount)
	if err := binary.Read(r, binary.LittleEndian, derivedData); err != nil {
		return nil, fmt.Errorf("asset: reading triangle derived data: %w", err)
	}

	triangles := make([]prim.Triangle, hdr.TriangleCount)
	for i := range triangles {
		i0, i1, i2 := posIndices[3*i], posIndices[3*i+1], posIndices[3*i+2]
		if i0 >= hdr.VertexCount || i1 >= hdr.VertexCount || i2 >= hdr.VertexCount {
			return nil, fmt.Errorf("asset: triangle %s references an out-of-range vertex index", numbers.Sprintf("%d", i))
		}
		d := derivedData[i]
		triangles[i] = prim.Triangle{
			Position:          d.Position,
			Normal:            d.Normal,
			LocalToTangent:    d.LocalToTangent,
			AreaParallelogram: d.AreaParallelogram,
			AreaUV:            d.AreaUV,
			V0:                positions[i0],
			V1:                positions[i1],
			V2:                positions[i2],
		}
	}

	return mesh.New(triangles), nil
}

func skip(r io.Reader, n int64) error {
	_, err := io.CopyN(io.Discard, r, n)
	return err
}
