// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

// DrawCommand is one draw, described with device-level resources.
// Submit resolves it into a driver DrawCall.
type DrawCommand struct {
	// Target is the render destination; nil means the backbuffer.
	Target *Target

	// Material supplies the shader and its uniform values.
	Material *Material

	// VertexBuffer and IndexBuffer hold the geometry. Format and
	// IndexFormat describe their layout.
	VertexBuffer *Buffer
	IndexBuffer  *Buffer
	Format       VertexFormat
	IndexFormat  IndexFormat

	// IndexStart and IndexCount select the indexed range to draw.
	IndexStart int
	IndexCount int

	// Instances is the instance count; zero draws one instance.
	Instances int

	Blend        BlendMode
	Cull         Cull
	DepthCompare Compare
	DepthWrite   bool

	Viewport    RectI
	HasViewport bool
	Scissor     RectI
	HasScissor  bool
}

// ClearCommand clears a target, or the backbuffer when Target is nil.
type ClearCommand struct {
	Target  *Target
	Color   [4]float32
	Depth   float32
	Stencil int
	Mask    ClearMask
	Clip    RectI
	HasClip bool
}
