// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/gazed/slimtrace/math/lin"
	"github.com/gazed/slimtrace/mesh"
	"github.com/gazed/slimtrace/ray"
)

// writeMeshFile assembles a §6-format mesh file with no vertex normals or
// uvs, for one right-triangle at vertices (0,0,0),(1,0,0),(0,1,0) in the
// z=0 plane, matching mesh/mesh_test.go's xyTriangle fixture.
func writeMeshFile(t *testing.T) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	hdr := meshHeader{VertexCount: 3, TriangleCount: 1, BVHNodeCount: 1, BVHHeight: 1}
	must(t, binary.Write(buf, binary.LittleEndian, hdr))

	positions := []lin.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}}
	must(t, binary.Write(buf, binary.LittleEndian, positions))

	posIndices := []uint32{0, 1, 2}
	must(t, binary.Write(buf, binary.LittleEndian, posIndices))

	derived := triangleDerived{
		Position: positions[0],
		Normal:   lin.Vec3{Z: 1},
		LocalToTangent: lin.Mat3{
			X: lin.Vec3{X: 1},
			Y: lin.Vec3{Y: 1},
			Z: lin.Vec3{},
		},
		AreaParallelogram: 1,
		AreaUV:            1,
	}
	must(t, binary.Write(buf, binary.LittleEndian, []triangleDerived{derived}))
	return buf.Bytes()
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("writing test fixture: %v", err)
	}
}

func TestLoadMeshBuildsTraceableTriangle(t *testing.T) {
	data := writeMeshFile(t)
	m, err := LoadMesh(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadMesh: %v", err)
	}
	if len(m.Triangles) != 1 {
		t.Fatalf("got %d triangles want 1", len(m.Triangles))
	}
	tri := m.Triangles[0]
	if tri.V0 != (lin.Vec3{}) || tri.V1 != (lin.Vec3{X: 1}) || tri.V2 != (lin.Vec3{Y: 1}) {
		t.Errorf("got vertices %v,%v,%v want (0,0,0),(1,0,0),(0,1,0)", tri.V0, tri.V1, tri.V2)
	}

	r := ray.New(lin.Vec3{X: 0.25, Y: 0.25, Z: -10}, lin.Vec3{Z: 1})
	hit := ray.Miss()
	if !mesh.Trace(r, &hit, m, false) {
		t.Fatal("expected the loaded triangle to be hit")
	}
	if !lin.Aeq(hit.Distance, 10) {
		t.Errorf("got distance %v want 10", hit.Distance)
	}
}

func TestLoadMeshRejectsEmptyMesh(t *testing.T) {
	buf := &bytes.Buffer{}
	must(t, binary.Write(buf, binary.LittleEndian, meshHeader{}))
	if _, err := LoadMesh(bytes.NewReader(buf.Bytes())); err == nil {
		t.Error("expected an error loading a mesh with zero vertices/triangles")
	}
}

func TestLoadMeshRejectsOutOfRangeVertexIndex(t *testing.T) {
	buf := &bytes.Buffer{}
	hdr := meshHeader{VertexCount: 3, TriangleCount: 1, BVHNodeCount: 1, BVHHeight: 1}
	must(t, binary.Write(buf, binary.LittleEndian, hdr))
	positions := []lin.Vec3{{}, {X: 1}, {Y: 1}}
	must(t, binary.Write(buf, binary.LittleEndian, positions))
	posIndices := []uint32{0, 1, 99} // 99 is out of range for VertexCount=3
	must(t, binary.Write(buf, binary.LittleEndian, posIndices))
	derived := triangleDerived{AreaParallelogram: 1, AreaUV: 1}
	must(t, binary.Write(buf, binary.LittleEndian, []triangleDerived{derived}))

	if _, err := LoadMesh(bytes.NewReader(buf.Bytes())); err == nil {
		t.Error("expected an error for an out-of-range vertex index")
	}
}
