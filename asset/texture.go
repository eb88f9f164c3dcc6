// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package asset

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gazed/slimtrace/texture"
)

// maxMipDimension bounds a single mip level's width/height read from a
// file, the texture analogue of maxMeshCount.
const maxMipDimension = 1 << 14

// textureHeader mirrors §6's texture file header.
type textureHeader struct {
	Width, Height       uint16
	MipCount, IsCubemap uint8
}

// mipHeader precedes each mip level's texel-quad table.
type mipHeader struct {
	Width, Height uint16
}

// LoadTexture reads the engine's native binary texture format (§6): a
// header, then one mip chain (2D texture) or six in +X,-X,+Y,-Y,+Z,-Z face
// order (cube map). r is expected to be opened and closed by the caller.
func LoadTexture(r io.Reader) (*texture.Texture, error) {
	hdr := textureHeader{}
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("asset: reading texture header: %w", err)
	}
	if hdr.MipCount == 0 {
		return nil, fmt.Errorf("asset: texture has no mip levels")
	}

	faceCount := 1
	if hdr.IsCubemap != 0 {
		faceCount = 6
	}

	faces := make([][]texture.Mip, faceCount)
	for f := 0; f < faceCount; f++ {
		mips, err := readMipChain(r, int(hdr.MipCount))
		if err != nil {
			return nil, fmt.Errorf("asset: reading face %s: %w", numbers.Sprintf("%d", f), err)
		}
		faces[f] = mips
	}

	t := &texture.Texture{Cubemap: hdr.IsCubemap != 0}
	if t.Cubemap {
		for f := 0; f < 6; f++ {
			t.Faces[f] = faces[f]
		}
	} else {
		t.Mips = faces[0]
	}
	return t, nil
}

func readMipChain(r io.Reader, count int) ([]texture.Mip, error) {
	mips := make([]texture.Mip, count)
	for i := 0; i < count; i++ {
		mh := mipHeader{}
		if err := binary.Read(r, binary.LittleEndian, &mh); err != nil {
			return nil, fmt.Errorf("reading mip %s header: %w", numbers.Sprintf("%d", i), err)
		}
		if int(mh.Width) > maxMipDimension || int(mh.Height) > maxMipDimension {
			return nil, fmt.Errorf("mip %s dimensions too large (%dx%d)", numbers.Sprintf("%d", i), mh.Width, mh.Height)
		}
		quadCount := (int(mh.Width) + 1) * (int(mh.Height) + 1)
		quads := make([]texture.TexelQuad, quadCount)
		if err := binary.Read(r, binary.LittleEndian, quads); err != nil {
			return nil, fmt.Errorf("reading mip %s texels: %w", numbers.Sprintf("%d", i), err)
		}
		mips[i] = texture.Mip{Width: int(mh.Width), Height: int(mh.Height), Quads: quads}
	}
	return mips, nil
}
