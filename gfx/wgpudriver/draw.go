// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpudriver

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/batch/gfx"
)

// renderTarget is the resolved attachment state of a draw or clear.
type renderTarget struct {
	colorView hal.TextureView
	depthView hal.TextureView
	format    gputypes.TextureFormat
	width     int
	height    int
}

// resolveTarget maps a target handle to its attachments. A zero handle
// selects the surface set by SetSurface.
func (d *Driver) resolveTarget(id gfx.TargetID) (renderTarget, error) {
	if id == 0 {
		d.surfaceMu.RLock()
		defer d.surfaceMu.RUnlock()
		if d.surfaceView == nil {
			return renderTarget{}, fmt.Errorf("wgpudriver: no surface configured, call SetSurface first")
		}
		return renderTarget{
			colorView: d.surfaceView,
			format:    d.surfaceFormat,
			width:     d.surfaceWidth,
			height:    d.surfaceHeight,
		}, nil
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	entry, ok := d.targets[id]
	if !ok {
		return renderTarget{}, fmt.Errorf("wgpudriver: target %d: %w", id, gfx.ErrResourceDisposed)
	}
	color, ok := d.textures[entry.color]
	if !ok {
		return renderTarget{}, fmt.Errorf("wgpudriver: target %d color texture: %w", id, gfx.ErrResourceDisposed)
	}
	return renderTarget{
		colorView: color.view,
		depthView: entry.depthView,
		format:    color.format,
		width:     entry.width,
		height:    entry.height,
	}, nil
}

// stagedDraw is the snapshot of a shader's staged uniforms taken at
// draw time, so later stage calls cannot race the recorded pass.
type stagedDraw struct {
	blockData [][]byte
	textures  []gfx.TextureID
	samplers  []gfx.Sampler
}

func snapshotStaged(entry *shaderEntry) stagedDraw {
	entry.mu.Lock()
	defer entry.mu.Unlock()
	snap := stagedDraw{
		blockData: make([][]byte, len(entry.blockData)),
		textures:  append([]gfx.TextureID(nil), entry.boundTextures...),
		samplers:  append([]gfx.Sampler(nil), entry.boundSamplers...),
	}
	for i, data := range entry.blockData {
		snap.blockData[i] = append([]byte(nil), data...)
	}
	return snap
}

// Draw records and submits one draw call as a single render pass that
// loads the previous attachment contents.
func (d *Driver) Draw(call gfx.DrawCall) error {
	if call.IndexCount <= 0 {
		return nil
	}

	entry, err := d.shader(call.Shader)
	if err != nil {
		return err
	}
	target, err := d.resolveTarget(call.Target)
	if err != nil {
		return err
	}

	d.mu.RLock()
	vbuf, vok := d.buffers[call.VertexBuffer]
	ibuf, iok := d.buffers[call.IndexBuffer]
	d.mu.RUnlock()
	if !vok {
		return fmt.Errorf("wgpudriver: vertex buffer %d: %w", call.VertexBuffer, gfx.ErrResourceDisposed)
	}
	if !iok {
		return fmt.Errorf("wgpudriver: index buffer %d: %w", call.IndexBuffer, gfx.ErrResourceDisposed)
	}

	pipeline, err := d.pipeline(pipelineKey{
		shader:       call.Shader,
		blend:        call.Blend,
		format:       target.format,
		cull:         call.Cull,
		depthCompare: call.DepthCompare,
		depthWrite:   call.DepthWrite,
		hasDepth:     target.depthView != nil,
		vertexLayout: vertexFormatKey(call.Format),
	}, entry, call.Format)
	if err != nil {
		return err
	}

	staged := snapshotStaged(entry)

	// Per-draw uniform buffers. Destroyed after the fence wait, so
	// the GPU is done with them.
	var transient []hal.Buffer
	destroyTransient := func() {
		for _, buf := range transient {
			d.device.DestroyBuffer(buf)
		}
	}

	var bindEntries []gputypes.BindGroupEntry
	for bi, block := range entry.reflection.blocks {
		buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "batch_draw_uniforms",
			Size:  uint64(block.size),
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			destroyTransient()
			return fmt.Errorf("wgpudriver: create uniform buffer: %w", err)
		}
		transient = append(transient, buf)
		d.queue.WriteBuffer(buf, 0, staged.blockData[bi])
		bindEntries = append(bindEntries, gputypes.BindGroupEntry{
			Binding: block.binding,
			Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: 0, Size: uint64(block.size),
			},
		})
	}
	for ti, tex := range entry.reflection.textures {
		d.mu.RLock()
		texEntry, ok := d.textures[staged.textures[ti]]
		d.mu.RUnlock()
		if !ok {
			destroyTransient()
			return fmt.Errorf("wgpudriver: texture bound to %q: %w", tex.name, gfx.ErrResourceDisposed)
		}
		bindEntries = append(bindEntries, gputypes.BindGroupEntry{
			Binding:  tex.binding,
			Resource: gputypes.TextureViewBinding{TextureView: texEntry.view.NativeHandle()},
		})
	}
	for si, samp := range entry.reflection.samplers {
		sampler, err := d.halSampler(staged.samplers[si])
		if err != nil {
			destroyTransient()
			return err
		}
		bindEntries = append(bindEntries, gputypes.BindGroupEntry{
			Binding:  samp.binding,
			Resource: gputypes.SamplerBinding{Sampler: sampler.NativeHandle()},
		})
	}

	bindGroup, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "batch_draw_bind",
		Layout:  entry.bindLayout,
		Entries: bindEntries,
	})
	if err != nil {
		destroyTransient()
		return fmt.Errorf("wgpudriver: create bind group: %w", err)
	}
	defer d.device.DestroyBindGroup(bindGroup)
	defer destroyTransient()

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "batch_draw"})
	if err != nil {
		return fmt.Errorf("wgpudriver: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("batch_draw"); err != nil {
		return fmt.Errorf("wgpudriver: begin encoding: %w", err)
	}

	rpDesc := &hal.RenderPassDescriptor{
		Label: "batch_draw_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    target.colorView,
			LoadOp:  gputypes.LoadOpLoad,
			StoreOp: gputypes.StoreOpStore,
		}},
	}
	if target.depthView != nil {
		rpDesc.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
			View:              target.depthView,
			DepthLoadOp:       gputypes.LoadOpLoad,
			DepthStoreOp:      gputypes.StoreOpStore,
			DepthClearValue:   1.0,
			StencilLoadOp:     gputypes.LoadOpLoad,
			StencilStoreOp:    gputypes.StoreOpStore,
			StencilClearValue: 0,
		}
	}

	rp := encoder.BeginRenderPass(rpDesc)
	rp.SetPipeline(pipeline)
	if blendUsesConstant(call.Blend) {
		constant := convertBlendColor(call.Blend.RGBA)
		rp.SetBlendConstant(&constant)
	}
	rp.SetBindGroup(0, bindGroup, nil)
	rp.SetVertexBuffer(0, vbuf.buf, 0)
	rp.SetIndexBuffer(ibuf.buf, convertIndexFormat(call.IndexFormat), 0)
	if call.HasViewport {
		rp.SetViewport(float32(call.Viewport.X), float32(call.Viewport.Y),
			float32(call.Viewport.W), float32(call.Viewport.H), 0, 1)
	}
	if call.HasScissor {
		scissor := call.Scissor.Intersect(gfx.RectI{W: target.width, H: target.height})
		if scissor.Empty() {
			rp.End()
			encoder.DiscardEncoding()
			return nil
		}
		rp.SetScissorRect(uint32(scissor.X), uint32(scissor.Y),
			uint32(scissor.W), uint32(scissor.H))
	}

	instances := call.Instances
	if instances < 1 {
		instances = 1
	}
	rp.DrawIndexed(uint32(call.IndexCount), uint32(instances), uint32(call.IndexStart), 0, 0)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpudriver: end encoding: %w", err)
	}
	return d.submitAndWait(cmdBuf)
}

// Clear records a render pass that clears the selected attachments.
// Load op clears cover the whole attachment and ignore the dynamic
// scissor, so an empty clip skips the clear and a partial clip
// degrades to a full clear, matching the original GL semantics.
func (d *Driver) Clear(call gfx.ClearCall) error {
	if call.Mask == 0 {
		return nil
	}

	target, err := d.resolveTarget(call.Target)
	if err != nil {
		return err
	}

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "batch_clear"})
	if err != nil {
		return fmt.Errorf("wgpudriver: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("batch_clear"); err != nil {
		return fmt.Errorf("wgpudriver: begin encoding: %w", err)
	}

	colorLoad := gputypes.LoadOpLoad
	if call.Mask&gfx.ClearColor != 0 {
		colorLoad = gputypes.LoadOpClear
	}
	rpDesc := &hal.RenderPassDescriptor{
		Label: "batch_clear_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    target.colorView,
			LoadOp:  colorLoad,
			StoreOp: gputypes.StoreOpStore,
			ClearValue: gputypes.Color{
				R: float64(call.Color[0]),
				G: float64(call.Color[1]),
				B: float64(call.Color[2]),
				A: float64(call.Color[3]),
			},
		}},
	}
	if target.depthView != nil {
		depthLoad := gputypes.LoadOpLoad
		if call.Mask&gfx.ClearDepth != 0 {
			depthLoad = gputypes.LoadOpClear
		}
		stencilLoad := gputypes.LoadOpLoad
		if call.Mask&gfx.ClearStencil != 0 {
			stencilLoad = gputypes.LoadOpClear
		}
		rpDesc.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
			View:              target.depthView,
			DepthLoadOp:       depthLoad,
			DepthStoreOp:      gputypes.StoreOpStore,
			DepthClearValue:   call.Depth,
			StencilLoadOp:     stencilLoad,
			StencilStoreOp:    gputypes.StoreOpStore,
			StencilClearValue: uint32(call.Stencil),
		}
	}

	rp := encoder.BeginRenderPass(rpDesc)
	if call.HasClip {
		clip := call.Clip.Intersect(gfx.RectI{W: target.width, H: target.height})
		if clip.Empty() {
			rp.End()
			encoder.DiscardEncoding()
			return nil
		}
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpudriver: end encoding: %w", err)
	}
	return d.submitAndWait(cmdBuf)
}
