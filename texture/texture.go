// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package texture implements the engine's precomputed mip chain and
// cube-map sampling (component G): bilinear lookup over a texel quad and
// ray-cone-driven mip selection.
package texture

import "github.com/gazed/slimtrace/color"

// TexelQuad is a precomputed bilinear patch: evaluating it at fractional
// cell coordinates (fu, fv) in [0,1)^2 needs no neighbor fetch, since the 3
// finite differences are baked in at load time.
//
//	value(fu, fv) = Color + DU*fu + DV*fv + DUV*(fu*fv)
type TexelQuad struct {
	Color, DU, DV, DUV color.Color
}

// Mip is one level of a texture's precomputed mip chain: (width+1) x
// (height+1) texel-quad records, one per texel-grid vertex (§6).
type Mip struct {
	Width, Height int
	Quads         []TexelQuad
}

// sample bilinearly samples one mip level at (u, v) in [0, 1)^2.
func (m Mip) sample(u, v float32) color.Color {
	if m.Width <= 0 || m.Height <= 0 || len(m.Quads) == 0 {
		return color.White
	}
	fx := u * float32(m.Width)
	fy := v * float32(m.Height)
	ix := clampInt(int(fx), 0, m.Width-1)
	iy := clampInt(int(fy), 0, m.Height-1)
	fu := fx - float32(ix)
	fv := fy - float32(iy)

	stride := m.Width + 1
	q := m.Quads[iy*stride+ix]
	return q.Color.Add(q.DU.Scale(fu)).Add(q.DV.Scale(fv)).Add(q.DUV.Scale(fu * fv))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// texelArea returns a mip level's per-texel footprint area in UV units.
func texelArea(m Mip) float32 {
	if m.Width <= 0 || m.Height <= 0 {
		return 1
	}
	return 1 / float32(m.Width) / float32(m.Height)
}

// MipLevel picks the coarsest mip whose per-texel area is <= coverage
// (§4.G): scanning from the finest mip upward, the last level that still
// satisfies the bound wins. If even the finest mip's texel area exceeds
// coverage, mip 0 is used (can't do better than full resolution).
func MipLevel(mips []Mip, coverage float32) int {
	level := 0
	for l := 1; l < len(mips); l++ {
		if texelArea(mips[l]) > coverage {
			break
		}
		level = l
	}
	return level
}

// Texture is a 2D image (with precomputed mips) or, if Cubemap is true, a
// cube map with one mip chain per face in +X,-X,+Y,-Y,+Z,-Z order (§6).
type Texture struct {
	Mips    []Mip
	Cubemap bool
	Faces   [6][]Mip
}

// Sample bilinearly samples the 2D texture at (u, v) and ray-cone
// coverage, selecting a mip level automatically.
func (t *Texture) Sample(u, v, coverage float32) color.Color {
	if len(t.Mips) == 0 {
		return color.White
	}
	level := MipLevel(t.Mips, coverage)
	return t.Mips[level].sample(wrapUnit(u), wrapUnit(v))
}

// SampleCube maps direction d to a face and (u, v) (color.CubeMapFaceUV)
// and samples that face's mip chain.
func (t *Texture) SampleCube(d color.Color, coverage float32) color.Color {
	if !t.Cubemap {
		return t.Sample(0, 0, coverage)
	}
	face, u, v := color.CubeMapFaceUV(d)
	mips := t.Faces[face]
	if len(mips) == 0 {
		return color.White
	}
	level := MipLevel(mips, coverage)
	return mips[level].sample(u, v)
}

// RayConeFootprint computes the local-space texture footprint area used to
// pick a mip level, per the engine's empirical ray-cone formula (§4.G; §9
// flags this as normative rather than a standard derivation):
//
//	area = coneWidth^3 / (uvRepeatU * uvRepeatV * |N.D| * |(1-N)*scale|)
func RayConeFootprint(coneWidth, uvRepeatU, uvRepeatV, absNdotD, absOneMinusNDotScale float32) float32 {
	denom := uvRepeatU * uvRepeatV * absNdotD * absOneMinusNDotScale
	area := coneWidth * coneWidth * coneWidth
	if denom <= 0 {
		return area
	}
	return area / denom
}

func wrapUnit(x float32) float32 {
	x -= float32(int32(x))
	if x < 0 {
		x += 1
	}
	return x
}
