// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpudriver

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/batch/gfx"
)

func TestConvertBlend(t *testing.T) {
	state := convertBlend(gfx.BlendPremultiply)
	if state.Color.SrcFactor != gputypes.BlendFactorOne {
		t.Errorf("Color.SrcFactor = %v, want One", state.Color.SrcFactor)
	}
	if state.Color.DstFactor != gputypes.BlendFactorOneMinusSrcAlpha {
		t.Errorf("Color.DstFactor = %v, want OneMinusSrcAlpha", state.Color.DstFactor)
	}
	if state.Color.Operation != gputypes.BlendOperationAdd {
		t.Errorf("Color.Operation = %v, want Add", state.Color.Operation)
	}
	if state.Alpha != state.Color {
		t.Error("alpha component differs from color for a symmetric mode")
	}

	sub := convertBlend(gfx.BlendSubtract)
	if sub.Color.Operation != gputypes.BlendOperationReverseSubtract {
		t.Errorf("subtract Operation = %v, want ReverseSubtract", sub.Color.Operation)
	}
}

func TestConvertBlendFactorConstant(t *testing.T) {
	tests := []struct {
		in   gfx.BlendFactor
		want gputypes.BlendFactor
	}{
		{gfx.BlendConstantColor, gputypes.BlendFactorConstant},
		{gfx.BlendOneMinusConstantColor, gputypes.BlendFactorOneMinusConstant},
		{gfx.BlendConstantAlpha, gputypes.BlendFactorConstant},
		{gfx.BlendOneMinusConstantAlpha, gputypes.BlendFactorOneMinusConstant},
	}
	for _, tt := range tests {
		if got := convertBlendFactor(tt.in); got != tt.want {
			t.Errorf("convertBlendFactor(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBlendUsesConstant(t *testing.T) {
	if blendUsesConstant(gfx.BlendPremultiply) {
		t.Error("blendUsesConstant(Premultiply) = true, want false")
	}
	tinted := gfx.NewBlendMode(gfx.BlendOpAdd, gfx.BlendConstantColor, gfx.BlendOneMinusSrcAlpha)
	if !blendUsesConstant(tinted) {
		t.Error("blendUsesConstant = false for constant color source")
	}
	alphaOnly := gfx.BlendPremultiply
	alphaOnly.AlphaDst = gfx.BlendOneMinusConstantAlpha
	if !blendUsesConstant(alphaOnly) {
		t.Error("blendUsesConstant = false for constant alpha destination")
	}
}

func TestConvertBlendColor(t *testing.T) {
	tests := []struct {
		rgba uint32
		want gputypes.Color
	}{
		{0xFFFFFFFF, gputypes.Color{R: 1, G: 1, B: 1, A: 1}},
		{0x00000000, gputypes.Color{}},
		{0xFF000080, gputypes.Color{R: 1, A: float64(0x80) / 255}},
		{0x3366CC00, gputypes.Color{R: float64(0x33) / 255, G: float64(0x66) / 255, B: float64(0xCC) / 255}},
	}
	for _, tt := range tests {
		if got := convertBlendColor(tt.rgba); got != tt.want {
			t.Errorf("convertBlendColor(%#x) = %+v, want %+v", tt.rgba, got, tt.want)
		}
	}
}

func TestConvertWriteMask(t *testing.T) {
	tests := []struct {
		mask gfx.BlendMask
		want gputypes.ColorWriteMask
	}{
		{gfx.BlendMaskNone, 0},
		{gfx.BlendMaskRed, gputypes.ColorWriteMaskRed},
		{gfx.BlendMaskRGB, gputypes.ColorWriteMaskRed | gputypes.ColorWriteMaskGreen | gputypes.ColorWriteMaskBlue},
		{gfx.BlendMaskRGBA, gputypes.ColorWriteMaskAll},
	}
	for _, tt := range tests {
		if got := convertWriteMask(tt.mask); got != tt.want {
			t.Errorf("convertWriteMask(%b) = %v, want %v", tt.mask, got, tt.want)
		}
	}
}

func TestConvertCompare(t *testing.T) {
	tests := []struct {
		in   gfx.Compare
		want gputypes.CompareFunction
	}{
		{gfx.CompareNever, gputypes.CompareFunctionNever},
		{gfx.CompareLess, gputypes.CompareFunctionLess},
		{gfx.CompareLessOrEqual, gputypes.CompareFunctionLessEqual},
		{gfx.CompareGreaterOrEqual, gputypes.CompareFunctionGreaterEqual},
		{gfx.CompareAlways, gputypes.CompareFunctionAlways},
		{gfx.CompareNone, gputypes.CompareFunctionAlways},
	}
	for _, tt := range tests {
		if got := convertCompare(tt.in); got != tt.want {
			t.Errorf("convertCompare(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConvertVertexType(t *testing.T) {
	tests := []struct {
		name       string
		in         gfx.VertexType
		normalized bool
		want       gputypes.VertexFormat
	}{
		{"float2", gfx.VertexFloat2, false, gputypes.VertexFormatFloat32x2},
		{"ubyte4 normalized", gfx.VertexUByte4, true, gputypes.VertexFormatUnorm8x4},
		{"ubyte4 raw", gfx.VertexUByte4, false, gputypes.VertexFormatUint8x4},
		{"short4 normalized", gfx.VertexShort4, true, gputypes.VertexFormatSnorm16x4},
		{"ushort2 raw", gfx.VertexUShort2, false, gputypes.VertexFormatUint16x2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := convertVertexType(tt.in, tt.normalized)
			if err != nil {
				t.Fatalf("convertVertexType() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("convertVertexType() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := convertVertexType(gfx.VertexNone, false); err == nil {
		t.Error("convertVertexType(VertexNone) succeeded, want error")
	}
}

func TestConvertVertexFormatLayout(t *testing.T) {
	format := gfx.NewVertexFormat(
		gfx.VertexElement{Index: 0, Type: gfx.VertexFloat2},
		gfx.VertexElement{Index: 1, Type: gfx.VertexFloat2},
		gfx.VertexElement{Index: 2, Type: gfx.VertexUByte4, Normalized: true},
		gfx.VertexElement{Index: 3, Type: gfx.VertexUByte4, Normalized: true},
	)
	layouts, err := convertVertexFormat(format)
	if err != nil {
		t.Fatalf("convertVertexFormat() error = %v", err)
	}
	if len(layouts) != 1 {
		t.Fatalf("layouts = %d, want 1", len(layouts))
	}
	l := layouts[0]
	if l.ArrayStride != 24 {
		t.Errorf("ArrayStride = %d, want 24", l.ArrayStride)
	}
	if l.StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("StepMode = %v, want per-vertex", l.StepMode)
	}
	wantOffsets := []uint64{0, 8, 16, 20}
	for i, attr := range l.Attributes {
		if attr.Offset != wantOffsets[i] {
			t.Errorf("attribute %d offset = %d, want %d", i, attr.Offset, wantOffsets[i])
		}
		if attr.ShaderLocation != uint32(i) {
			t.Errorf("attribute %d location = %d, want %d", i, attr.ShaderLocation, i)
		}
	}
}

func TestVertexFormatKeyStable(t *testing.T) {
	format := gfx.NewVertexFormat(
		gfx.VertexElement{Index: 0, Type: gfx.VertexFloat2},
		gfx.VertexElement{Index: 1, Type: gfx.VertexUByte4, Normalized: true},
	)
	a := vertexFormatKey(format)
	b := vertexFormatKey(format)
	if a != b {
		t.Errorf("vertexFormatKey not stable: %q vs %q", a, b)
	}
	other := gfx.NewVertexFormat(
		gfx.VertexElement{Index: 0, Type: gfx.VertexFloat2},
		gfx.VertexElement{Index: 1, Type: gfx.VertexUByte4},
	)
	if a == vertexFormatKey(other) {
		t.Error("vertexFormatKey does not distinguish normalized attributes")
	}
}
