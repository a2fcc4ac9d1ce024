// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import (
	"testing"

	"github.com/gogpu/batch/gfx"
)

func TestPushPopMatrixRelative(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	b.PushMatrix(Translate(10, 20))
	b.PushMatrix(Translate(1, 2))

	p := b.Matrix().TransformPoint(Point{})
	if p.X != 11 || p.Y != 22 {
		t.Errorf("nested transform maps origin to (%g, %g), want (11, 22)", p.X, p.Y)
	}

	b.PopMatrix()
	b.PopMatrix()
	if got := b.Matrix(); got != Identity() {
		t.Errorf("Matrix() after balanced pops = %+v, want identity", got)
	}
}

func TestPushMatrixAbsolute(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	b.PushMatrix(Translate(10, 20))
	b.PushMatrixAbsolute(Translate(1, 2))

	p := b.Matrix().TransformPoint(Point{})
	if p.X != 1 || p.Y != 2 {
		t.Errorf("absolute transform maps origin to (%g, %g), want (1, 2)", p.X, p.Y)
	}

	b.PopMatrix()
	p = b.Matrix().TransformPoint(Point{})
	if p.X != 10 || p.Y != 20 {
		t.Errorf("restored transform maps origin to (%g, %g), want (10, 20)", p.X, p.Y)
	}
	b.PopMatrix()
}

func TestPopUnderflowPanics(t *testing.T) {
	tests := []struct {
		name string
		pop  func(*Batcher)
	}{
		{"matrix", (*Batcher).PopMatrix},
		{"scissor", (*Batcher).PopScissor},
		{"layer", (*Batcher).PopLayer},
		{"blend", (*Batcher).PopBlend},
		{"sampler", (*Batcher).PopSampler},
		{"material", (*Batcher).PopMaterial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBatcher(t)
			defer b.Release()
			defer func() {
				if r := recover(); r != ErrStackUnderflow {
					t.Errorf("panic value = %v, want ErrStackUnderflow", r)
				}
			}()
			tt.pop(b)
		})
	}
}

func TestPushScissorIntersects(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	if _, has := b.Scissor(); has {
		t.Fatal("new batcher has a scissor set")
	}

	b.PushScissor(gfx.RectI{X: 0, Y: 0, W: 100, H: 100})
	b.PushScissor(gfx.RectI{X: 50, Y: 50, W: 100, H: 100})

	got, has := b.Scissor()
	if !has {
		t.Fatal("Scissor() has = false after push")
	}
	want := gfx.RectI{X: 50, Y: 50, W: 50, H: 50}
	if got != want {
		t.Errorf("nested scissor = %+v, want %+v", got, want)
	}

	b.PopScissor()
	got, _ = b.Scissor()
	if (got != gfx.RectI{X: 0, Y: 0, W: 100, H: 100}) {
		t.Errorf("restored scissor = %+v, want outer rect", got)
	}
	b.PopScissor()
	if _, has := b.Scissor(); has {
		t.Error("Scissor() still set after balanced pops")
	}
}

func TestPushScissorDisjointClampsToEmpty(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	b.PushScissor(gfx.RectI{X: 0, Y: 0, W: 10, H: 10})
	b.PushScissor(gfx.RectI{X: 50, Y: 50, W: 10, H: 10})

	got, _ := b.Scissor()
	if !got.Empty() {
		t.Errorf("disjoint scissor = %+v, want empty", got)
	}
	b.PopScissor()
	b.PopScissor()
}

func TestPushPopLayerAndBlend(t *testing.T) {
	b, _ := newTestBatcher(t)
	defer b.Release()

	b.PushLayer(5)
	if got := b.Layer(); got != 5 {
		t.Errorf("Layer() = %d, want 5", got)
	}
	b.PopLayer()
	if got := b.Layer(); got != 0 {
		t.Errorf("Layer() after pop = %d, want 0", got)
	}

	b.PushBlend(gfx.BlendScreen)
	if got := b.Blend(); got != gfx.BlendScreen {
		t.Errorf("Blend() = %+v, want BlendScreen", got)
	}
	b.PopBlend()
	if got := b.Blend(); got != gfx.BlendPremultiply {
		t.Errorf("Blend() after pop = %+v, want BlendPremultiply", got)
	}
}
