// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"image"

	"github.com/gogpu/gputypes"
)

// Opaque driver-side resource handles. Drivers allocate IDs from a
// monotonic counter and never reuse them, so a stale handle held after
// destruction fails lookup instead of aliasing a newer resource.
type (
	// BufferID identifies a GPU buffer.
	BufferID uint64

	// TextureID identifies a GPU texture.
	TextureID uint64

	// TargetID identifies an offscreen render target.
	TargetID uint64

	// ShaderID identifies a compiled shader program.
	ShaderID uint64
)

// DrawCall is the fully resolved state for one draw, as handed to the
// driver. All handles are required except Target, where zero means the
// backbuffer.
type DrawCall struct {
	Target       TargetID
	Shader       ShaderID
	VertexBuffer BufferID
	IndexBuffer  BufferID
	Format       VertexFormat
	IndexFormat  IndexFormat
	IndexStart   int
	IndexCount   int
	Instances    int
	Blend        BlendMode
	Cull         Cull
	DepthCompare Compare
	DepthWrite   bool
	Viewport     RectI
	HasViewport  bool
	Scissor      RectI
	HasScissor   bool
}

// ClearCall clears a target, or the backbuffer when Target is zero.
type ClearCall struct {
	Target  TargetID
	Color   [4]float32
	Depth   float32
	Stencil int
	Mask    ClearMask
	Clip    RectI
	HasClip bool
}

// Driver is the backend boundary. A Driver owns all GPU resources and
// executes draw and clear calls. Implementations are not required to be
// safe for concurrent use; Device serializes access.
//
// Every method that takes a handle returns ErrResourceDisposed (or an
// error wrapping it) when the handle does not resolve.
type Driver interface {
	// Name identifies the backend for logging.
	Name() string

	// CreateBuffer allocates a buffer of the given kind and byte
	// capacity. Stride is recorded for vertex buffers and ignored
	// otherwise.
	CreateBuffer(kind BufferKind, stride, byteCapacity int) (BufferID, error)

	// UploadBufferData writes data at the given byte offset,
	// growing nothing: the range must fit the buffer capacity.
	UploadBufferData(id BufferID, byteOffset int, data []byte) error

	// DestroyBuffer releases the buffer. Destroying an unknown or
	// already destroyed handle is a no-op.
	DestroyBuffer(id BufferID)

	// CreateTexture allocates a w by h texture of the given format.
	CreateTexture(w, h int, format gputypes.TextureFormat) (TextureID, error)

	// SetTextureData replaces the texel rectangle rect with data,
	// which must hold exactly rect.W*rect.H texels of the texture's
	// format, tightly packed.
	SetTextureData(id TextureID, rect RectI, data []byte) error

	// GetTextureData reads the full texture back into an RGBA image.
	// Only RGBA8 formats are readable.
	GetTextureData(id TextureID) (*image.RGBA, error)

	// DestroyTexture releases the texture.
	DestroyTexture(id TextureID)

	// CreateTarget allocates an offscreen color target backed by the
	// given texture, with an optional depth-stencil attachment.
	CreateTarget(color TextureID, depthStencil bool) (TargetID, error)

	// DestroyTarget releases the target but not its color texture.
	DestroyTarget(id TargetID)

	// CreateShader compiles a vertex and fragment source pair and
	// reflects its uniforms.
	CreateShader(vertex, fragment string) (ShaderID, []UniformInfo, error)

	// SetUniform stages uniform data for the next draw using the
	// shader. Data length must match the uniform's byte size.
	SetUniform(id ShaderID, name string, data []byte) error

	// SetShaderTexture binds a texture to a sampled-texture uniform.
	SetShaderTexture(id ShaderID, name string, tex TextureID) error

	// SetShaderSampler binds sampler state to a sampler uniform.
	SetShaderSampler(id ShaderID, name string, s Sampler) error

	// DestroyShader releases the shader.
	DestroyShader(id ShaderID)

	// SupportsFormat reports whether textures of the format can be
	// created and sampled.
	SupportsFormat(format gputypes.TextureFormat) bool

	// SurfaceSize returns the backbuffer size in pixels.
	SurfaceSize() (w, h int)

	// Draw executes one draw call.
	Draw(call DrawCall) error

	// Clear executes one clear.
	Clear(call ClearCall) error
}
