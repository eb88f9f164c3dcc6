// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package color holds the engine's color type, the Reinhard tone mapper,
// and the cube-map face/uv projection shared by texture sampling (skybox,
// irradiance, radiance lookups) and the surface shader.
package color

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/chewxy/math32"
	"github.com/gazed/slimtrace/math/lin"
)

// Color is a linear RGB triple. It is a Vec3 by another name: shading math
// (add, scale, mul by albedo) is exactly vector math.
type Color = lin.Vec3

// Black is the zero color, returned by the shader on a full miss (§7).
var Black = Color{}

// White is used as the default albedo when a material has no albedo map.
var White = lin.V3(1)

// ToneMapReinhard applies c' = c/(1+c) per channel (§4.J), but only when c
// is non-black — an all-zero input must round-trip to all-zero exactly,
// which the formula already gives (0/(1+0)=0), so the early-out is purely
// the allocation-light path the spec calls out, not a correctness guard.
func ToneMapReinhard(c Color) Color {
	if c == Black {
		return Black
	}
	return Color{
		X: c.X / (1 + c.X),
		Y: c.Y / (1 + c.Y),
		Z: c.Z / (1 + c.Z),
	}
}

// CubeFace names one of the 6 faces of a cube map, in the file-format
// order +X,-X,+Y,-Y,+Z,-Z (§6).
type CubeFace uint8

const (
	FacePosX CubeFace = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// CubeMapFaceUV maps direction d to the cube face whose plane it strikes
// first (the face of largest absolute component) and that face's (u, v)
// in [0, 1]^2 (§4.G). Opposite directions land on opposite faces, and a
// direction's face/uv is invariant to d's length.
func CubeMapFaceUV(d lin.Vec3) (face CubeFace, u, v float32) {
	ax, ay, az := math32.Abs(d.X), math32.Abs(d.Y), math32.Abs(d.Z)

	switch {
	case ax >= ay && ax >= az:
		if d.X > 0 {
			return FacePosX, shiftToUnit(-d.Z / ax), shiftToUnit(-d.Y / ax)
		}
		return FaceNegX, shiftToUnit(d.Z / ax), shiftToUnit(-d.Y / ax)
	case ay >= ax && ay >= az:
		if d.Y > 0 {
			return FacePosY, shiftToUnit(d.X / ay), shiftToUnit(d.Z / ay)
		}
		return FaceNegY, shiftToUnit(d.X / ay), shiftToUnit(-d.Z / ay)
	default:
		if d.Z > 0 {
			return FacePosZ, shiftToUnit(d.X / az), shiftToUnit(-d.Y / az)
		}
		return FaceNegZ, shiftToUnit(-d.X / az), shiftToUnit(-d.Y / az)
	}
}

func shiftToUnit(x float32) float32 { return (x + 1) * 0.5 }

// ToNRGBA converts a rectangle of tone-mapped linear colors into a
// gamma-corrected image, using bild's adjust package for the final sRGB-ish
// gamma curve rather than hand-rolling the power function per pixel.
func ToNRGBA(width, height int, at func(x, y int) Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := at(x, y)
			img.Set(x, y, color.NRGBA{
				R: toByte(c.X), G: toByte(c.Y), B: toByte(c.Z), A: 255,
			})
		}
	}
	return adjust.Gamma(img, 0.84)
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
