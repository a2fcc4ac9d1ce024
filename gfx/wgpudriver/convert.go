// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpudriver

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/batch/gfx"
)

func convertBlendFactor(f gfx.BlendFactor) gputypes.BlendFactor {
	switch f {
	case gfx.BlendZero:
		return gputypes.BlendFactorZero
	case gfx.BlendOne:
		return gputypes.BlendFactorOne
	case gfx.BlendSrcColor:
		return gputypes.BlendFactorSrc
	case gfx.BlendOneMinusSrcColor:
		return gputypes.BlendFactorOneMinusSrc
	case gfx.BlendDstColor:
		return gputypes.BlendFactorDst
	case gfx.BlendOneMinusDstColor:
		return gputypes.BlendFactorOneMinusDst
	case gfx.BlendSrcAlpha:
		return gputypes.BlendFactorSrcAlpha
	case gfx.BlendOneMinusSrcAlpha:
		return gputypes.BlendFactorOneMinusSrcAlpha
	case gfx.BlendDstAlpha:
		return gputypes.BlendFactorDstAlpha
	case gfx.BlendOneMinusDstAlpha:
		return gputypes.BlendFactorOneMinusDstAlpha
	case gfx.BlendConstantColor:
		return gputypes.BlendFactorConstant
	case gfx.BlendOneMinusConstantColor:
		return gputypes.BlendFactorOneMinusConstant
	case gfx.BlendConstantAlpha:
		// WebGPU folds the constant alpha factors into the constant
		// factors; the alpha channel of the blend constant applies.
		return gputypes.BlendFactorConstant
	case gfx.BlendOneMinusConstantAlpha:
		return gputypes.BlendFactorOneMinusConstant
	case gfx.BlendSrcAlphaSaturate:
		return gputypes.BlendFactorSrcAlphaSaturated
	default:
		return gputypes.BlendFactorOne
	}
}

// blendUsesConstant reports whether any factor of the mode reads the
// blend constant color, which must then be set on the render pass.
func blendUsesConstant(mode gfx.BlendMode) bool {
	for _, f := range [...]gfx.BlendFactor{
		mode.ColorSrc, mode.ColorDst, mode.AlphaSrc, mode.AlphaDst,
	} {
		switch f {
		case gfx.BlendConstantColor, gfx.BlendOneMinusConstantColor,
			gfx.BlendConstantAlpha, gfx.BlendOneMinusConstantAlpha:
			return true
		}
	}
	return false
}

// convertBlendColor unpacks a 0xRRGGBBAA blend constant to normalized
// channels.
func convertBlendColor(rgba uint32) gputypes.Color {
	return gputypes.Color{
		R: float64(rgba>>24&0xFF) / 255,
		G: float64(rgba>>16&0xFF) / 255,
		B: float64(rgba>>8&0xFF) / 255,
		A: float64(rgba&0xFF) / 255,
	}
}

func convertBlendOp(op gfx.BlendOp) gputypes.BlendOperation {
	switch op {
	case gfx.BlendOpAdd:
		return gputypes.BlendOperationAdd
	case gfx.BlendOpSubtract:
		return gputypes.BlendOperationSubtract
	case gfx.BlendOpReverseSubtract:
		return gputypes.BlendOperationReverseSubtract
	case gfx.BlendOpMin:
		return gputypes.BlendOperationMin
	case gfx.BlendOpMax:
		return gputypes.BlendOperationMax
	default:
		return gputypes.BlendOperationAdd
	}
}

func convertBlend(mode gfx.BlendMode) gputypes.BlendState {
	return gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: convertBlendFactor(mode.ColorSrc),
			DstFactor: convertBlendFactor(mode.ColorDst),
			Operation: convertBlendOp(mode.ColorOp),
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: convertBlendFactor(mode.AlphaSrc),
			DstFactor: convertBlendFactor(mode.AlphaDst),
			Operation: convertBlendOp(mode.AlphaOp),
		},
	}
}

func convertWriteMask(mask gfx.BlendMask) gputypes.ColorWriteMask {
	var out gputypes.ColorWriteMask
	if mask&gfx.BlendMaskRed != 0 {
		out |= gputypes.ColorWriteMaskRed
	}
	if mask&gfx.BlendMaskGreen != 0 {
		out |= gputypes.ColorWriteMaskGreen
	}
	if mask&gfx.BlendMaskBlue != 0 {
		out |= gputypes.ColorWriteMaskBlue
	}
	if mask&gfx.BlendMaskAlpha != 0 {
		out |= gputypes.ColorWriteMaskAlpha
	}
	return out
}

func convertCull(cull gfx.Cull) gputypes.CullMode {
	switch cull {
	case gfx.CullFront:
		return gputypes.CullModeFront
	case gfx.CullBack:
		return gputypes.CullModeBack
	default:
		return gputypes.CullModeNone
	}
}

func convertCompare(c gfx.Compare) gputypes.CompareFunction {
	switch c {
	case gfx.CompareNever:
		return gputypes.CompareFunctionNever
	case gfx.CompareLess:
		return gputypes.CompareFunctionLess
	case gfx.CompareEqual:
		return gputypes.CompareFunctionEqual
	case gfx.CompareLessOrEqual:
		return gputypes.CompareFunctionLessEqual
	case gfx.CompareGreater:
		return gputypes.CompareFunctionGreater
	case gfx.CompareNotEqual:
		return gputypes.CompareFunctionNotEqual
	case gfx.CompareGreaterOrEqual:
		return gputypes.CompareFunctionGreaterEqual
	default:
		return gputypes.CompareFunctionAlways
	}
}

func convertFilter(f gfx.TextureFilter) gputypes.FilterMode {
	if f == gfx.FilterNearest {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}

func convertWrap(w gfx.TextureWrap) gputypes.AddressMode {
	switch w {
	case gfx.WrapRepeat:
		return gputypes.AddressModeRepeat
	case gfx.WrapMirroredRepeat:
		return gputypes.AddressModeMirrorRepeat
	default:
		return gputypes.AddressModeClampToEdge
	}
}

func convertIndexFormat(f gfx.IndexFormat) gputypes.IndexFormat {
	if f == gfx.IndexUint16 {
		return gputypes.IndexFormatUint16
	}
	return gputypes.IndexFormatUint32
}

func convertVertexType(t gfx.VertexType, normalized bool) (gputypes.VertexFormat, error) {
	switch t {
	case gfx.VertexFloat:
		return gputypes.VertexFormatFloat32, nil
	case gfx.VertexFloat2:
		return gputypes.VertexFormatFloat32x2, nil
	case gfx.VertexFloat3:
		return gputypes.VertexFormatFloat32x3, nil
	case gfx.VertexFloat4:
		return gputypes.VertexFormatFloat32x4, nil
	case gfx.VertexByte4:
		if normalized {
			return gputypes.VertexFormatSnorm8x4, nil
		}
		return gputypes.VertexFormatSint8x4, nil
	case gfx.VertexUByte4:
		if normalized {
			return gputypes.VertexFormatUnorm8x4, nil
		}
		return gputypes.VertexFormatUint8x4, nil
	case gfx.VertexShort2:
		if normalized {
			return gputypes.VertexFormatSnorm16x2, nil
		}
		return gputypes.VertexFormatSint16x2, nil
	case gfx.VertexUShort2:
		if normalized {
			return gputypes.VertexFormatUnorm16x2, nil
		}
		return gputypes.VertexFormatUint16x2, nil
	case gfx.VertexShort4:
		if normalized {
			return gputypes.VertexFormatSnorm16x4, nil
		}
		return gputypes.VertexFormatSint16x4, nil
	case gfx.VertexUShort4:
		if normalized {
			return gputypes.VertexFormatUnorm16x4, nil
		}
		return gputypes.VertexFormatUint16x4, nil
	default:
		return 0, fmt.Errorf("wgpudriver: unsupported vertex type %d", t)
	}
}

// convertVertexFormat builds the HAL vertex buffer layout for a gfx
// vertex format. Attribute shader locations follow element order.
func convertVertexFormat(format gfx.VertexFormat) ([]gputypes.VertexBufferLayout, error) {
	attrs := make([]gputypes.VertexAttribute, 0, len(format.Elements))
	offset := uint64(0)
	for _, el := range format.Elements {
		vf, err := convertVertexType(el.Type, el.Normalized)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, gputypes.VertexAttribute{
			Format:         vf,
			Offset:         offset,
			ShaderLocation: uint32(el.Index),
		})
		offset += uint64(el.Type.Size())
	}
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: uint64(format.Stride),
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes:  attrs,
		},
	}, nil
}

// vertexFormatKey builds a comparable signature of a vertex format for
// use in the pipeline cache key.
func vertexFormatKey(format gfx.VertexFormat) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "s%d", format.Stride)
	for _, el := range format.Elements {
		fmt.Fprintf(&sb, ":%d.%d.%t", el.Index, el.Type, el.Normalized)
	}
	return sb.String()
}
