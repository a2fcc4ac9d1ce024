// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

// BlendOp combines source and destination terms in the blend equation.
type BlendOp uint8

// Blend operations.
const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
	BlendOpMin
	BlendOpMax
)

// BlendFactor scales a term of the blend equation.
type BlendFactor uint8

// Blend factors.
const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendDstColor
	BlendOneMinusDstColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendConstantColor
	BlendOneMinusConstantColor
	BlendConstantAlpha
	BlendOneMinusConstantAlpha
	BlendSrcAlphaSaturate
)

// BlendMask selects which color channels a draw writes.
type BlendMask uint8

// Blend channel masks.
const (
	BlendMaskNone  BlendMask = 0
	BlendMaskRed   BlendMask = 1 << 0
	BlendMaskGreen BlendMask = 1 << 1
	BlendMaskBlue  BlendMask = 1 << 2
	BlendMaskAlpha BlendMask = 1 << 3
	BlendMaskRGB             = BlendMaskRed | BlendMaskGreen | BlendMaskBlue
	BlendMaskRGBA            = BlendMaskRGB | BlendMaskAlpha
)

// BlendMode is a full fixed-function blend state. Two modes compare
// equal with == when they produce identical blending, which is how the
// batcher detects blend state changes.
type BlendMode struct {
	ColorOp  BlendOp
	ColorSrc BlendFactor
	ColorDst BlendFactor
	AlphaOp  BlendOp
	AlphaSrc BlendFactor
	AlphaDst BlendFactor
	Mask     BlendMask
	RGBA     uint32
}

// NewBlendMode creates a mode with the same equation for color and
// alpha and all channels writable.
func NewBlendMode(op BlendOp, src, dst BlendFactor) BlendMode {
	return BlendMode{
		ColorOp: op, ColorSrc: src, ColorDst: dst,
		AlphaOp: op, AlphaSrc: src, AlphaDst: dst,
		Mask: BlendMaskRGBA,
		RGBA: 0xFFFFFFFF,
	}
}

// Standard blend modes.
var (
	// BlendPremultiply is the default for textures with premultiplied
	// alpha, which is how atlas and font textures are stored.
	BlendPremultiply = NewBlendMode(BlendOpAdd, BlendOne, BlendOneMinusSrcAlpha)

	// BlendNonPremultiplied blends straight-alpha sources.
	BlendNonPremultiplied = NewBlendMode(BlendOpAdd, BlendSrcAlpha, BlendOneMinusSrcAlpha)

	// BlendAdd accumulates light additively.
	BlendAdd = NewBlendMode(BlendOpAdd, BlendOne, BlendDstAlpha)

	// BlendSubtract darkens by subtracting the source from the destination.
	BlendSubtract = NewBlendMode(BlendOpReverseSubtract, BlendOne, BlendOne)

	// BlendMultiply multiplies destination by source color.
	BlendMultiply = NewBlendMode(BlendOpAdd, BlendDstColor, BlendOneMinusSrcAlpha)

	// BlendScreen is the inverse of multiply, brightening the destination.
	BlendScreen = NewBlendMode(BlendOpAdd, BlendOne, BlendOneMinusSrcColor)
)
