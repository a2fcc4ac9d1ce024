// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"sync"

	"github.com/gogpu/gputypes"
)

// Device is the application-facing handle to a Driver. It wraps raw
// driver IDs in typed resources, owns the shared built-in shaders and
// the white texture, and serializes driver access.
type Device struct {
	driver Driver

	mu sync.Mutex

	white       *Texture
	batchShader *Shader
	msdfShader  *Shader
}

// NewDevice creates a device over the driver.
func NewDevice(driver Driver) (*Device, error) {
	if driver == nil {
		return nil, ErrNoDriver
	}
	if ls, ok := driver.(loggerSetter); ok {
		ls.SetLogger(Logger())
	}
	Logger().Info("gfx: device created", slog.String("driver", driver.Name()))
	return &Device{driver: driver}, nil
}

// Driver returns the underlying driver.
func (d *Device) Driver() Driver {
	return d.driver
}

// SurfaceSize returns the backbuffer size in pixels.
func (d *Device) SurfaceSize() (w, h int) {
	return d.driver.SurfaceSize()
}

// NewVertexBuffer allocates a vertex buffer for count vertices of the
// given stride.
func (d *Device) NewVertexBuffer(stride, count int) (*Buffer, error) {
	return d.newBuffer(BufferVertex, stride, stride*count)
}

// NewIndexBuffer allocates an index buffer for count indices.
func (d *Device) NewIndexBuffer(format IndexFormat, count int) (*Buffer, error) {
	return d.newBuffer(BufferIndex, format.Size(), format.Size()*count)
}

func (d *Device) newBuffer(kind BufferKind, stride, byteCapacity int) (*Buffer, error) {
	if byteCapacity <= 0 {
		return nil, ErrInvalidSize
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	id, err := d.driver.CreateBuffer(kind, stride, byteCapacity)
	if err != nil {
		return nil, fmt.Errorf("gfx: create %s buffer: %w", kind, err)
	}
	return &Buffer{device: d, id: id, kind: kind, stride: stride, capacity: byteCapacity}, nil
}

// NewTexture allocates a w by h texture of the given format.
func (d *Device) NewTexture(w, h int, format gputypes.TextureFormat) (*Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrInvalidSize
	}
	if !d.driver.SupportsFormat(format) {
		return nil, fmt.Errorf("gfx: %w: %v", ErrUnsupportedFormat, format)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	id, err := d.driver.CreateTexture(w, h, format)
	if err != nil {
		return nil, fmt.Errorf("gfx: create texture %dx%d: %w", w, h, err)
	}
	return &Texture{device: d, id: id, width: w, height: h, format: format}, nil
}

// NewTextureFromImage allocates an RGBA8 texture holding img.
func (d *Device) NewTextureFromImage(img image.Image) (*Texture, error) {
	b := img.Bounds()
	tex, err := d.NewTexture(b.Dx(), b.Dy(), gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		return nil, err
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != b.Dx()*4 {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	if err := tex.SetFullData(rgba.Pix); err != nil {
		tex.Release()
		return nil, err
	}
	return tex, nil
}

// NewTarget allocates an offscreen render target with an RGBA8 color
// texture and no depth attachment.
func (d *Device) NewTarget(w, h int) (*Target, error) {
	tex, err := d.NewTexture(w, h, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	id, err := d.driver.CreateTarget(tex.id, false)
	if err != nil {
		tex.disposed = true
		d.driver.DestroyTexture(tex.id)
		return nil, fmt.Errorf("gfx: create target %dx%d: %w", w, h, err)
	}
	return &Target{device: d, id: id, color: tex}, nil
}

// NewShader compiles a vertex and fragment source pair.
func (d *Device) NewShader(vertex, fragment string) (*Shader, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id, uniforms, err := d.driver.CreateShader(vertex, fragment)
	if err != nil {
		return nil, fmt.Errorf("gfx: compile shader: %w", err)
	}
	return &Shader{device: d, id: id, uniforms: uniforms}, nil
}

// White returns the shared 1x1 opaque white texture, creating it on
// first use. Untextured geometry samples it so that textured and
// untextured draws share one pipeline.
func (d *Device) White() (*Texture, error) {
	d.mu.Lock()
	white := d.white
	d.mu.Unlock()
	if white != nil {
		return white, nil
	}
	tex, err := d.NewTexture(1, 1, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		return nil, err
	}
	if err := tex.SetFullData([]byte{0xFF, 0xFF, 0xFF, 0xFF}); err != nil {
		tex.Release()
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.white != nil {
		tex.Release()
		return d.white, nil
	}
	d.white = tex
	return tex, nil
}

// BatchShader returns the shared sprite-batch shader, compiling it on
// first use.
func (d *Device) BatchShader() (*Shader, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.batchShader == nil {
		id, uniforms, err := d.driver.CreateShader(batchVertexSource, batchFragmentSource)
		if err != nil {
			return nil, fmt.Errorf("gfx: compile batch shader: %w", err)
		}
		d.batchShader = &Shader{device: d, id: id, uniforms: uniforms}
	}
	return d.batchShader, nil
}

// MSDFShader returns the shared multi-channel signed distance field
// text shader, compiling it on first use.
func (d *Device) MSDFShader() (*Shader, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.msdfShader == nil {
		id, uniforms, err := d.driver.CreateShader(batchVertexSource, msdfFragmentSource)
		if err != nil {
			return nil, fmt.Errorf("gfx: compile msdf shader: %w", err)
		}
		d.msdfShader = &Shader{device: d, id: id, uniforms: uniforms}
	}
	return d.msdfShader, nil
}

// Submit executes one draw command.
func (d *Device) Submit(cmd DrawCommand) error {
	if cmd.Material == nil || cmd.VertexBuffer == nil || cmd.IndexBuffer == nil {
		return ErrNoDriver
	}
	if cmd.VertexBuffer.disposed || cmd.IndexBuffer.disposed {
		panic(ErrResourceDisposed)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := cmd.Material.apply(d.driver); err != nil {
		return err
	}
	call := DrawCall{
		Shader:       cmd.Material.shader.id,
		VertexBuffer: cmd.VertexBuffer.id,
		IndexBuffer:  cmd.IndexBuffer.id,
		Format:       cmd.Format,
		IndexFormat:  cmd.IndexFormat,
		IndexStart:   cmd.IndexStart,
		IndexCount:   cmd.IndexCount,
		Instances:    max(cmd.Instances, 1),
		Blend:        cmd.Blend,
		Cull:         cmd.Cull,
		DepthCompare: cmd.DepthCompare,
		DepthWrite:   cmd.DepthWrite,
		Viewport:     cmd.Viewport,
		HasViewport:  cmd.HasViewport,
		Scissor:      cmd.Scissor,
		HasScissor:   cmd.HasScissor,
	}
	if cmd.Target != nil {
		if cmd.Target.disposed {
			panic(ErrResourceDisposed)
		}
		call.Target = cmd.Target.id
	}
	return d.driver.Draw(call)
}

// SubmitClear executes one clear command.
func (d *Device) SubmitClear(cmd ClearCommand) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	call := ClearCall{
		Color:   cmd.Color,
		Depth:   cmd.Depth,
		Stencil: cmd.Stencil,
		Mask:    cmd.Mask,
		Clip:    cmd.Clip,
		HasClip: cmd.HasClip,
	}
	if cmd.Target != nil {
		if cmd.Target.disposed {
			panic(ErrResourceDisposed)
		}
		call.Target = cmd.Target.id
	}
	return d.driver.Clear(call)
}

// Release destroys the device-owned built-in resources. Resources
// created through the device are released individually by their owners.
func (d *Device) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.white != nil {
		d.white.Release()
		d.white = nil
	}
	if d.batchShader != nil {
		d.batchShader.Release()
		d.batchShader = nil
	}
	if d.msdfShader != nil {
		d.msdfShader.Release()
		d.msdfShader = nil
	}
}
