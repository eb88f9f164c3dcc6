// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/gazed/slimtrace/color"
	"github.com/gazed/slimtrace/texture"
)

// TextureFromPNG decodes a PNG (load/png.go's idiom: image/png.Decode
// straight off the reader) into a precomputed mip chain for use as a test
// or demo texture fixture — not the native §6 format LoadTexture reads, but
// a convenience that produces the same texture.Texture shape from an
// ordinary source image. Each mip is generated from the previous one with
// x/image/draw's bilinear scaler, halving both dimensions down to 1x1.
func TextureFromPNG(r io.Reader) (*texture.Texture, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("asset: decoding png texture fixture: %w", err)
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("asset: png texture fixture has zero extent")
	}

	var mips []texture.Mip
	level := toRGBA(img)
	lw, lh := width, height
	for {
		mips = append(mips, buildMip(level, lw, lh))
		if lw <= 1 && lh <= 1 {
			break
		}
		nlw, nlh := halve(lw), halve(lh)
		scaled := image.NewRGBA(image.Rect(0, 0, nlw, nlh))
		draw.BiLinear.Scale(scaled, scaled.Bounds(), level, level.Bounds(), draw.Over, nil)
		level, lw, lh = scaled, nlw, nlh
	}
	return &texture.Texture{Mips: mips}, nil
}

func halve(n int) int {
	if n <= 1 {
		return 1
	}
	return n / 2
}

func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// buildMip samples img's (wrapped) pixel grid into a texel-quad table: each
// cell's color plus the 3 finite differences (§6's "derivatives") baked in
// at load time so Mip.Sample needs no neighbor fetch at render time.
func buildMip(img *image.RGBA, width, height int) texture.Mip {
	stride := width + 1
	quads := make([]texture.TexelQuad, stride*(height+1))
	at := func(x, y int) color.Color {
		r, g, b, _ := img.At(x%width, y%height).RGBA()
		return color.Color{X: float32(r) / 65535, Y: float32(g) / 65535, Z: float32(b) / 65535}
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c00 := at(x, y)
			c10 := at(x+1, y)
			c01 := at(x, y+1)
			c11 := at(x+1, y+1)
			quads[y*stride+x] = texture.TexelQuad{
				Color: c00,
				DU:    c10.Sub(c00),
				DV:    c01.Sub(c00),
				DUV:   c11.Sub(c10).Sub(c01).Add(c00),
			}
		}
	}
	return texture.Mip{Width: width, Height: height, Quads: quads}
}
