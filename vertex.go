// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/batch/gfx"
)

// VertexStride is the byte size of one packed Vertex.
const VertexStride = 24

// Vertex is one batched vertex: a transformed position, a texture
// coordinate, a tint and the three paint-mode weights. The weights pick
// the fragment formula per vertex so textured, washed and filled
// geometry share a single shader:
//
//	Mult 255  sample * tint        (sprites)
//	Wash 255  sample.a * tint      (single-channel masks, bitmap text)
//	Fill 255  tint                 (untextured shapes)
type Vertex struct {
	X, Y float32
	U, V float32
	Col  Color

	Mult uint8
	Wash uint8
	Fill uint8

	_ uint8
}

// put packs the vertex little-endian into dst, which must hold at
// least VertexStride bytes.
func (v Vertex) put(dst []byte) {
	_ = dst[VertexStride-1]
	binary.LittleEndian.PutUint32(dst[0:], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(dst[4:], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(dst[8:], math.Float32bits(v.U))
	binary.LittleEndian.PutUint32(dst[12:], math.Float32bits(v.V))
	dst[16] = v.Col.R
	dst[17] = v.Col.G
	dst[18] = v.Col.B
	dst[19] = v.Col.A
	dst[20] = v.Mult
	dst[21] = v.Wash
	dst[22] = v.Fill
	dst[23] = 0
}

// VertexFormat returns the layout of packed vertices, matching the
// built-in batch shaders.
func VertexFormat() gfx.VertexFormat {
	return gfx.NewVertexFormat(
		gfx.VertexElement{Index: 0, Type: gfx.VertexFloat2},
		gfx.VertexElement{Index: 1, Type: gfx.VertexFloat2},
		gfx.VertexElement{Index: 2, Type: gfx.VertexUByte4, Normalized: true},
		gfx.VertexElement{Index: 3, Type: gfx.VertexUByte4, Normalized: true},
	)
}

// modeMult, modeWash and modeFill are the three paint weight presets.
var (
	modeMult = [3]uint8{255, 0, 0}
	modeWash = [3]uint8{0, 255, 0}
	modeFill = [3]uint8{0, 0, 255}
)
