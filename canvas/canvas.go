// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package canvas is the renderer's output surface (component L): a linear
// color + linear depth buffer, optionally backed by a 2x2 supersample grid
// that Resolve downsamples to window resolution.
package canvas

import (
	"image"
	imgcolor "image/color"

	"github.com/anthonynsimon/bild/transform"

	"github.com/gazed/slimtrace/color"
)

// Canvas is the per-sample color and depth buffer §4.J writes into. When
// Antialias is set the buffer holds 2x per axis (4x total) samples; window
// pixel (x, y) resolves from samples [2x, 2x+1] x [2y, 2y+1].
type Canvas struct {
	Width, Height int
	Antialias     bool

	Colors []color.Color
	Depths []float32
}

// New allocates a Canvas sized width x height window pixels. If antialias
// is set the sample buffer is 2x per axis.
func New(width, height int, antialias bool) *Canvas {
	sw, sh := width, height
	if antialias {
		sw, sh = width*2, height*2
	}
	return &Canvas{
		Width:     width,
		Height:    height,
		Antialias: antialias,
		Colors:    make([]color.Color, sw*sh),
		Depths:    make([]float32, sw*sh),
	}
}

// SampleDimensions returns the sample-grid width/height backing the
// canvas: width/height themselves when not antialiasing, double that
// when antialiasing.
func (c *Canvas) SampleDimensions() (int, int) {
	if !c.Antialias {
		return c.Width, c.Height
	}
	return c.Width * 2, c.Height * 2
}

// SetSample writes one sample's color and depth. x, y are sample-grid
// coordinates (see SampleDimensions), not window pixel coordinates.
func (c *Canvas) SetSample(x, y int, col color.Color, depth float32) {
	sw, _ := c.SampleDimensions()
	i := y*sw + x
	c.Colors[i] = col
	c.Depths[i] = depth
}

// Resolve downsamples the sample buffer to window resolution (§4.J): when
// antialiasing, each window pixel's color is the average of its 2x2
// sample block and its depth is the min of the block (the nearer of the
// four samples wins, matching how a single un-antialiased sample would
// have seen the nearest surface). Without antialiasing the buffer already
// is window resolution and is returned unchanged.
func (c *Canvas) Resolve() (colors []color.Color, depths []float32) {
	if !c.Antialias {
		return c.Colors, c.Depths
	}

	colors = resolveColors(c)
	depths = make([]float32, c.Width*c.Height)
	sw, _ := c.SampleDimensions()
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			d := c.Depths[(2*y)*sw+2*x]
			for _, off := range [3][2]int{{1, 0}, {0, 1}, {1, 1}} {
				sample := c.Depths[(2*y+off[1])*sw+2*x+off[0]]
				if sample < d {
					d = sample
				}
			}
			depths[y*c.Width+x] = d
		}
	}
	return colors, depths
}

// resolveColors downsamples the 2x supersampled, already tone-mapped color
// plane with bild's linear-filter Resize, the pack's box-downsample stand
// in (bild ships no dedicated box filter): a linear-filtered half-size
// resize of an exact 2x grid is the 2x2 box average. The intermediate
// image skips gamma correction (unlike color.ToNRGBA) since that belongs
// at final display time, not before averaging.
func resolveColors(c *Canvas) []color.Color {
	sw, sh := c.SampleDimensions()
	img := image.NewNRGBA(image.Rect(0, 0, sw, sh))
	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			s := c.Colors[y*sw+x]
			img.Set(x, y, imgcolor.NRGBA{R: quantize(s.X), G: quantize(s.Y), B: quantize(s.Z), A: 255})
		}
	}
	resized := transform.Resize(img, c.Width, c.Height, transform.Linear)

	out := make([]color.Color, c.Width*c.Height)
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			out[y*c.Width+x] = color.Color{
				X: float32(r) / 65535,
				Y: float32(g) / 65535,
				Z: float32(b) / 65535,
			}
		}
	}
	return out
}

func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
