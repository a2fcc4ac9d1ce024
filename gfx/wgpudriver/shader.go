// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpudriver

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/batch/gfx"
)

// Shader entry point names expected in every WGSL source pair.
const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// shaderEntry holds the compiled modules, the reflected binding
// interface, and the uniform values staged for the next draw.
type shaderEntry struct {
	vertMod    hal.ShaderModule
	fragMod    hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	reflection *shaderReflection

	// staged state, guarded by mu because the driver allows
	// concurrent stage calls under its read lock
	mu            sync.Mutex
	blockData     [][]byte
	boundTextures []gfx.TextureID
	boundSamplers []gfx.Sampler

	memberIndex  map[string][2]int
	textureIndex map[string]int
	samplerIndex map[string]int
}

func (e *shaderEntry) destroy(device hal.Device) {
	device.DestroyPipelineLayout(e.pipeLayout)
	device.DestroyBindGroupLayout(e.bindLayout)
	device.DestroyShaderModule(e.fragMod)
	device.DestroyShaderModule(e.vertMod)
}

// compileWGSL compiles WGSL to SPIR-V words and wraps them in a HAL
// shader module.
func (d *Driver) compileWGSL(label, source string) (hal.ShaderModule, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("wgpudriver: compile %s: %w", label, err)
	}
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: words},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpudriver: create %s module: %w", label, err)
	}
	return module, nil
}

// CreateShader compiles the vertex and fragment sources, reflects
// their group-0 bindings, and builds the shared bind group and
// pipeline layouts.
func (d *Driver) CreateShader(vertex, fragment string) (gfx.ShaderID, []gfx.UniformInfo, error) {
	reflection, infos, err := reflectShader(vertex, fragment)
	if err != nil {
		return 0, nil, err
	}

	vertMod, err := d.compileWGSL("batch_vertex", vertex)
	if err != nil {
		return 0, nil, err
	}
	fragMod, err := d.compileWGSL("batch_fragment", fragment)
	if err != nil {
		d.device.DestroyShaderModule(vertMod)
		return 0, nil, err
	}

	var layoutEntries []gputypes.BindGroupLayoutEntry
	for _, block := range reflection.blocks {
		var visibility gputypes.ShaderStage
		if block.vertex {
			visibility |= gputypes.ShaderStageVertex
		}
		if block.fragment {
			visibility |= gputypes.ShaderStageFragment
		}
		layoutEntries = append(layoutEntries, gputypes.BindGroupLayoutEntry{
			Binding:    block.binding,
			Visibility: visibility,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		})
	}
	for _, tex := range reflection.textures {
		layoutEntries = append(layoutEntries, gputypes.BindGroupLayoutEntry{
			Binding:    tex.binding,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		})
	}
	for _, samp := range reflection.samplers {
		layoutEntries = append(layoutEntries, gputypes.BindGroupLayoutEntry{
			Binding:    samp.binding,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		})
	}

	bindLayout, err := d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "batch_shader_layout",
		Entries: layoutEntries,
	})
	if err != nil {
		d.device.DestroyShaderModule(fragMod)
		d.device.DestroyShaderModule(vertMod)
		return 0, nil, fmt.Errorf("wgpudriver: create bind group layout: %w", err)
	}

	pipeLayout, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "batch_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		d.device.DestroyBindGroupLayout(bindLayout)
		d.device.DestroyShaderModule(fragMod)
		d.device.DestroyShaderModule(vertMod)
		return 0, nil, fmt.Errorf("wgpudriver: create pipeline layout: %w", err)
	}

	entry := &shaderEntry{
		vertMod:       vertMod,
		fragMod:       fragMod,
		bindLayout:    bindLayout,
		pipeLayout:    pipeLayout,
		reflection:    reflection,
		blockData:     make([][]byte, len(reflection.blocks)),
		boundTextures: make([]gfx.TextureID, len(reflection.textures)),
		boundSamplers: make([]gfx.Sampler, len(reflection.samplers)),
		memberIndex:   make(map[string][2]int),
		textureIndex:  make(map[string]int),
		samplerIndex:  make(map[string]int),
	}
	for bi, block := range reflection.blocks {
		entry.blockData[bi] = make([]byte, block.size)
		for mi, mem := range block.members {
			entry.memberIndex[mem.name] = [2]int{bi, mi}
		}
	}
	for i, tex := range reflection.textures {
		entry.textureIndex[tex.name] = i
	}
	for i, samp := range reflection.samplers {
		entry.samplerIndex[samp.name] = i
	}

	id := gfx.ShaderID(d.newID())
	d.mu.Lock()
	d.shaders[id] = entry
	d.mu.Unlock()

	d.log().Debug("shader compiled", "id", uint64(id), "uniforms", len(infos))
	return id, infos, nil
}

func (d *Driver) shader(id gfx.ShaderID) (*shaderEntry, error) {
	d.mu.RLock()
	entry, ok := d.shaders[id]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("wgpudriver: shader %d: %w", id, gfx.ErrResourceDisposed)
	}
	return entry, nil
}

// SetUniform stages uniform bytes for the next draw with this shader.
func (d *Driver) SetUniform(id gfx.ShaderID, name string, data []byte) error {
	entry, err := d.shader(id)
	if err != nil {
		return err
	}
	ref, ok := entry.memberIndex[name]
	if !ok {
		return &gfx.UniformNotFoundError{Name: name}
	}
	block := entry.reflection.blocks[ref[0]]
	mem := block.members[ref[1]]
	if len(data) != mem.size {
		return fmt.Errorf("wgpudriver: uniform %q wants %d bytes, got %d: %w",
			name, mem.size, len(data), gfx.ErrDataSize)
	}
	entry.mu.Lock()
	copy(entry.blockData[ref[0]][mem.offset:mem.offset+mem.size], data)
	entry.mu.Unlock()
	return nil
}

// SetShaderTexture binds a texture for the next draw with this shader.
func (d *Driver) SetShaderTexture(id gfx.ShaderID, name string, tex gfx.TextureID) error {
	entry, err := d.shader(id)
	if err != nil {
		return err
	}
	idx, ok := entry.textureIndex[name]
	if !ok {
		return &gfx.UniformNotFoundError{Name: name}
	}
	entry.mu.Lock()
	entry.boundTextures[idx] = tex
	entry.mu.Unlock()
	return nil
}

// SetShaderSampler binds sampler state for the next draw.
func (d *Driver) SetShaderSampler(id gfx.ShaderID, name string, s gfx.Sampler) error {
	entry, err := d.shader(id)
	if err != nil {
		return err
	}
	idx, ok := entry.samplerIndex[name]
	if !ok {
		return &gfx.UniformNotFoundError{Name: name}
	}
	entry.mu.Lock()
	entry.boundSamplers[idx] = s
	entry.mu.Unlock()
	return nil
}

// DestroyShader releases the shader and every pipeline compiled from
// it.
func (d *Driver) DestroyShader(id gfx.ShaderID) {
	d.mu.Lock()
	entry, ok := d.shaders[id]
	if ok {
		delete(d.shaders, id)
	}
	d.mu.Unlock()
	if !ok {
		return
	}

	d.pipeMu.Lock()
	for key, pipeline := range d.pipelines {
		if key.shader == id {
			d.device.DestroyRenderPipeline(pipeline)
			delete(d.pipelines, key)
		}
	}
	d.pipeMu.Unlock()

	entry.destroy(d.device)
}
