// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import "github.com/gogpu/batch/gfx"

// Matrix returns the current transform applied to emitted geometry.
func (b *Batcher) Matrix() Matrix {
	return b.matrix
}

// PushMatrix pushes the current transform and multiplies m onto it, so
// m is relative to the enclosing transform.
func (b *Batcher) PushMatrix(m Matrix) {
	b.matrixStack = append(b.matrixStack, b.matrix)
	b.matrix = b.matrix.Multiply(m)
}

// PushMatrixAbsolute pushes the current transform and replaces it with
// m, ignoring the enclosing transform.
func (b *Batcher) PushMatrixAbsolute(m Matrix) {
	b.matrixStack = append(b.matrixStack, b.matrix)
	b.matrix = m
}

// PopMatrix restores the transform saved by the matching push. Popping
// with nothing pushed panics with ErrStackUnderflow.
func (b *Batcher) PopMatrix() {
	n := len(b.matrixStack)
	if n == 0 {
		panic(ErrStackUnderflow)
	}
	b.matrix = b.matrixStack[n-1]
	b.matrixStack = b.matrixStack[:n-1]
}

// Scissor returns the current scissor rect and whether one is set.
func (b *Batcher) Scissor() (gfx.RectI, bool) {
	return b.scissor, b.hasScissor
}

// PushScissor pushes the current scissor and narrows it to the
// intersection with rect. The intersection clamps to zero extent, so a
// fully clipped scissor is legal and draws nothing.
func (b *Batcher) PushScissor(rect gfx.RectI) {
	b.scissorStack = append(b.scissorStack, scissorState{rect: b.scissor, has: b.hasScissor})
	if b.hasScissor {
		rect = b.scissor.Intersect(rect)
	}
	b.scissor = rect
	b.hasScissor = true
}

// PopScissor restores the scissor saved by the matching push. Popping
// with nothing pushed panics with ErrStackUnderflow.
func (b *Batcher) PopScissor() {
	n := len(b.scissorStack)
	if n == 0 {
		panic(ErrStackUnderflow)
	}
	saved := b.scissorStack[n-1]
	b.scissorStack = b.scissorStack[:n-1]
	b.scissor = saved.rect
	b.hasScissor = saved.has
}

// Layer returns the current draw layer.
func (b *Batcher) Layer() int {
	return b.layer
}

// SetLayer sets the draw layer for subsequent geometry. Higher layers
// draw on top; within a layer, emission order is preserved.
func (b *Batcher) SetLayer(layer int) {
	b.layer = layer
}

// PushLayer pushes the current layer and sets a new one.
func (b *Batcher) PushLayer(layer int) {
	b.layerStack = append(b.layerStack, b.layer)
	b.layer = layer
}

// PopLayer restores the layer saved by the matching push. Popping with
// nothing pushed panics with ErrStackUnderflow.
func (b *Batcher) PopLayer() {
	n := len(b.layerStack)
	if n == 0 {
		panic(ErrStackUnderflow)
	}
	b.layer = b.layerStack[n-1]
	b.layerStack = b.layerStack[:n-1]
}

// Blend returns the current blend mode.
func (b *Batcher) Blend() gfx.BlendMode {
	return b.blend
}

// PushBlend pushes the current blend mode and sets a new one.
func (b *Batcher) PushBlend(mode gfx.BlendMode) {
	b.blendStack = append(b.blendStack, b.blend)
	b.blend = mode
}

// PopBlend restores the blend mode saved by the matching push.
func (b *Batcher) PopBlend() {
	n := len(b.blendStack)
	if n == 0 {
		panic(ErrStackUnderflow)
	}
	b.blend = b.blendStack[n-1]
	b.blendStack = b.blendStack[:n-1]
}

// PushSampler pushes the current sampler state and sets a new one.
func (b *Batcher) PushSampler(s gfx.Sampler) {
	b.samplerStack = append(b.samplerStack, b.sampler)
	b.sampler = s
}

// PopSampler restores the sampler saved by the matching push.
func (b *Batcher) PopSampler() {
	n := len(b.samplerStack)
	if n == 0 {
		panic(ErrStackUnderflow)
	}
	b.sampler = b.samplerStack[n-1]
	b.samplerStack = b.samplerStack[:n-1]
}

// PushMaterial pushes the current material override and replaces it.
// Geometry emitted under a material override draws with that material
// instead of the built-in batch shader. The material must declare the
// u_matrix, u_texture and u_sampler uniforms.
func (b *Batcher) PushMaterial(m *gfx.Material) {
	b.materialStack = append(b.materialStack, b.material)
	b.material = m
}

// PopMaterial restores the material saved by the matching push.
func (b *Batcher) PopMaterial() {
	n := len(b.materialStack)
	if n == 0 {
		panic(ErrStackUnderflow)
	}
	b.material = b.materialStack[n-1]
	b.materialStack = b.materialStack[:n-1]
}
