// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

// TextureFilter selects how a sampler interpolates between texels.
type TextureFilter uint8

// Texture filters.
const (
	// FilterNearest picks the closest texel (pixel-art friendly).
	FilterNearest TextureFilter = iota

	// FilterLinear blends the four closest texels.
	FilterLinear
)

// TextureWrap selects how texture coordinates outside [0, 1] are resolved.
type TextureWrap uint8

// Texture wrap modes.
const (
	WrapRepeat TextureWrap = iota
	WrapMirroredRepeat
	WrapClampToEdge
	WrapClampToBorder
)

// Sampler describes how a bound texture is sampled.
// The zero value (nearest, repeat) is a valid sampler.
type Sampler struct {
	Filter TextureFilter
	WrapX  TextureWrap
	WrapY  TextureWrap
}

// NewSampler creates a sampler with the same wrap mode on both axes.
func NewSampler(filter TextureFilter, wrap TextureWrap) Sampler {
	return Sampler{Filter: filter, WrapX: wrap, WrapY: wrap}
}

// Cull selects which triangle winding is discarded.
// 2D batching normally renders with CullNone.
type Cull uint8

// Cull modes.
const (
	CullNone Cull = iota
	CullFront
	CullBack
)

// Compare is a depth/stencil comparison function.
type Compare uint8

// Comparison functions.
const (
	CompareNone Compare = iota
	CompareAlways
	CompareNever
	CompareLess
	CompareEqual
	CompareLessOrEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterOrEqual
)

// ClearMask selects which aspects of a target a ClearCommand clears.
type ClearMask uint8

// Clear mask bits.
const (
	ClearNone    ClearMask = 0
	ClearColor   ClearMask = 1 << 0
	ClearDepth   ClearMask = 1 << 1
	ClearStencil ClearMask = 1 << 2
	ClearAll               = ClearColor | ClearDepth | ClearStencil
)

// RectI is an integer pixel rectangle used for scissor, viewport and
// clear regions. W and H are never negative in a valid rect; a rect with
// zero W or H has zero area, which is a legal (fully clipping) scissor.
type RectI struct {
	X, Y, W, H int
}

// Empty reports whether the rect has zero area.
func (r RectI) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersect returns the intersection of two rects, clamped to
// non-negative extent. An empty result is valid, not an error.
func (r RectI) Intersect(o RectI) RectI {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	out := RectI{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// IndexFormat selects the width of mesh indices.
type IndexFormat uint8

// Index formats.
const (
	IndexUint16 IndexFormat = iota
	IndexUint32
)

// Size returns the byte size of one index.
func (f IndexFormat) Size() int {
	if f == IndexUint16 {
		return 2
	}
	return 4
}

// BufferKind selects what a GPU buffer holds.
type BufferKind uint8

// Buffer kinds.
const (
	BufferVertex BufferKind = iota
	BufferIndex
	BufferStorage
)

// String returns a human-readable name for the buffer kind.
func (k BufferKind) String() string {
	switch k {
	case BufferVertex:
		return "Vertex"
	case BufferIndex:
		return "Index"
	case BufferStorage:
		return "Storage"
	default:
		return "Unknown"
	}
}

// VertexType is the element type of a single vertex attribute.
type VertexType uint8

// Vertex attribute types.
const (
	VertexNone VertexType = iota
	VertexFloat
	VertexFloat2
	VertexFloat3
	VertexFloat4
	VertexByte4
	VertexUByte4
	VertexShort2
	VertexUShort2
	VertexShort4
	VertexUShort4
)

// vertexTypeSizes maps a VertexType ordinal to its byte size.
var vertexTypeSizes = [...]int{
	VertexNone:    0,
	VertexFloat:   4,
	VertexFloat2:  8,
	VertexFloat3:  12,
	VertexFloat4:  16,
	VertexByte4:   4,
	VertexUByte4:  4,
	VertexShort2:  4,
	VertexUShort2: 4,
	VertexShort4:  8,
	VertexUShort4: 8,
}

// Size returns the byte size of the attribute type.
func (t VertexType) Size() int {
	if int(t) >= len(vertexTypeSizes) {
		return 0
	}
	return vertexTypeSizes[t]
}

// VertexElement is one attribute in a vertex layout.
type VertexElement struct {
	// Index is the shader attribute location.
	Index int

	// Type is the element data type.
	Type VertexType

	// Normalized maps integer types to [0, 1] (unsigned) or [-1, 1]
	// (signed) in the shader. Ignored for float types.
	Normalized bool
}

// VertexFormat describes the full layout of one vertex.
type VertexFormat struct {
	Elements []VertexElement
	Stride   int
}

// NewVertexFormat builds a format from elements in declaration order,
// computing the packed stride.
func NewVertexFormat(elements ...VertexElement) VertexFormat {
	stride := 0
	for _, e := range elements {
		stride += e.Type.Size()
	}
	return VertexFormat{Elements: elements, Stride: stride}
}
