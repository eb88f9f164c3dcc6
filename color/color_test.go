// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package color

import (
	"testing"

	"github.com/gazed/slimtrace/math/lin"
)

func TestToneMapReinhardBlackRoundTrips(t *testing.T) {
	if got := ToneMapReinhard(Black); got != Black {
		t.Errorf("got %v want black", got)
	}
}

func TestToneMapReinhardCompressesHighValues(t *testing.T) {
	got := ToneMapReinhard(Color{X: 9})
	if !lin.Aeq(got.X, 0.9) {
		t.Errorf("got %v want 0.9 (9/(1+9))", got.X)
	}
}

// TestCubeMapFaceUVOppositeDirectionsLandOnOppositeFaces checks §4.G's
// invariant for a handful of axis-aligned and off-axis directions.
func TestCubeMapFaceUVOppositeDirectionsLandOnOppositeFaces(t *testing.T) {
	cases := []struct {
		d        lin.Vec3
		face, op CubeFace
	}{
		{lin.Vec3{X: 1}, FacePosX, FaceNegX},
		{lin.Vec3{Y: 1}, FacePosY, FaceNegY},
		{lin.Vec3{Z: 1}, FacePosZ, FaceNegZ},
		{lin.Vec3{X: 2, Y: 0.5, Z: 0.5}, FacePosX, FaceNegX},
	}
	for _, c := range cases {
		face, _, _ := CubeMapFaceUV(c.d)
		if face != c.face {
			t.Errorf("CubeMapFaceUV(%v) face got %v want %v", c.d, face, c.face)
		}
		oppFace, _, _ := CubeMapFaceUV(c.d.Neg())
		if oppFace != c.op {
			t.Errorf("CubeMapFaceUV(%v) face got %v want %v", c.d.Neg(), oppFace, c.op)
		}
	}
}

func TestCubeMapFaceUVIsScaleInvariant(t *testing.T) {
	d := lin.Vec3{X: 1, Y: 2, Z: 3}
	face1, u1, v1 := CubeMapFaceUV(d)
	face2, u2, v2 := CubeMapFaceUV(d.Scale(10))
	if face1 != face2 || !lin.Aeq(u1, u2) || !lin.Aeq(v1, v2) {
		t.Errorf("got (%v,%v,%v) and (%v,%v,%v) want them equal", face1, u1, v1, face2, u2, v2)
	}
}

func TestToNRGBAProducesOpaquePixels(t *testing.T) {
	img := ToNRGBA(2, 2, func(x, y int) Color { return Color{X: 1} })
	_, _, _, a := img.At(0, 0).RGBA()
	if a>>8 != 255 {
		t.Errorf("got alpha %v want opaque", a>>8)
	}
}
