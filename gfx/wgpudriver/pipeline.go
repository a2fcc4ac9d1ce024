// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpudriver

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/batch/gfx"
)

// pipelineKey identifies one compiled render pipeline variant. Every
// field participates in equality so two draws share a pipeline exactly
// when the GPU state they need is identical.
type pipelineKey struct {
	shader       gfx.ShaderID
	blend        gfx.BlendMode
	format       gputypes.TextureFormat
	cull         gfx.Cull
	depthCompare gfx.Compare
	depthWrite   bool
	hasDepth     bool
	vertexLayout string
}

// pipeline returns the cached render pipeline for the key, compiling
// it on first use. Lookups are double checked so concurrent draws only
// compile once.
func (d *Driver) pipeline(key pipelineKey, entry *shaderEntry, format gfx.VertexFormat) (hal.RenderPipeline, error) {
	d.pipeMu.RLock()
	cached, ok := d.pipelines[key]
	d.pipeMu.RUnlock()
	if ok {
		return cached, nil
	}

	d.pipeMu.Lock()
	defer d.pipeMu.Unlock()
	if cached, ok := d.pipelines[key]; ok {
		return cached, nil
	}

	buffers, err := convertVertexFormat(format)
	if err != nil {
		return nil, err
	}

	blend := convertBlend(key.blend)
	desc := &hal.RenderPipelineDescriptor{
		Label:  "batch_pipeline",
		Layout: entry.pipeLayout,
		Vertex: hal.VertexState{
			Module:     entry.vertMod,
			EntryPoint: vertexEntryPoint,
			Buffers:    buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     entry.fragMod,
			EntryPoint: fragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    key.format,
					Blend:     &blend,
					WriteMask: convertWriteMask(key.blend.Mask),
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: convertCull(key.cull),
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}

	if key.hasDepth {
		desc.DepthStencil = &hal.DepthStencilState{
			Format:            gputypes.TextureFormatDepth24PlusStencil8,
			DepthWriteEnabled: key.depthWrite,
			DepthCompare:      convertCompare(key.depthCompare),
			StencilFront: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilBack: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilReadMask:  0x00,
			StencilWriteMask: 0x00,
		}
	}

	pipeline, err := d.device.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("wgpudriver: create render pipeline: %w", err)
	}
	d.pipelines[key] = pipeline

	d.log().Debug("pipeline compiled", "shader", uint64(key.shader),
		"format", key.format, "cull", key.cull)
	return pipeline, nil
}
