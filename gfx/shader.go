// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"encoding/binary"
	"fmt"
	"math"
)

// UniformType is the reflected type of a shader uniform.
type UniformType uint8

// Uniform types.
const (
	UniformNone UniformType = iota
	UniformFloat
	UniformFloat2
	UniformFloat3
	UniformFloat4
	UniformMat3x2
	UniformMat4x4
	UniformTexture2D
	UniformSampler2D
)

// uniformTypeSizes maps a UniformType ordinal to its byte size.
// Texture and sampler uniforms carry no client data.
var uniformTypeSizes = [...]int{
	UniformNone:      0,
	UniformFloat:     4,
	UniformFloat2:    8,
	UniformFloat3:    12,
	UniformFloat4:    16,
	UniformMat3x2:    24,
	UniformMat4x4:    64,
	UniformTexture2D: 0,
	UniformSampler2D: 0,
}

// Size returns the byte size of one uniform value, times its array
// length for array uniforms.
func (t UniformType) Size() int {
	if int(t) >= len(uniformTypeSizes) {
		return 0
	}
	return uniformTypeSizes[t]
}

// UniformInfo describes one uniform reflected from a compiled shader.
type UniformInfo struct {
	Name        string
	Type        UniformType
	ArrayLength int
}

// byteSize returns the total client-side size of the uniform.
func (u UniformInfo) byteSize() int {
	n := u.ArrayLength
	if n < 1 {
		n = 1
	}
	return u.Type.Size() * n
}

// Shader is a compiled vertex and fragment program. Shaders hold no
// uniform values themselves; values live in Materials so one shader can
// be shared by many draws with different parameters.
type Shader struct {
	device   *Device
	id       ShaderID
	uniforms []UniformInfo
	disposed bool
}

// Uniforms returns the reflected uniform list.
func (s *Shader) Uniforms() []UniformInfo {
	return s.uniforms
}

// Release destroys the driver-side shader. Further use of the shader or
// any Material built on it panics with ErrResourceDisposed.
func (s *Shader) Release() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.device.driver.DestroyShader(s.id)
}

// Material pairs a Shader with a full set of uniform values. The
// batcher compares materials by pointer to detect state changes, so a
// material should be mutated only between frames.
type Material struct {
	shader   *Shader
	data     map[string][]byte
	textures map[string]*Texture
	samplers map[string]Sampler
}

// NewMaterial creates a material with zeroed uniform values.
func NewMaterial(shader *Shader) *Material {
	m := &Material{
		shader:   shader,
		data:     make(map[string][]byte),
		textures: make(map[string]*Texture),
		samplers: make(map[string]Sampler),
	}
	for _, u := range shader.uniforms {
		if sz := u.byteSize(); sz > 0 {
			m.data[u.Name] = make([]byte, sz)
		}
	}
	return m
}

// Shader returns the material's shader.
func (m *Material) Shader() *Shader {
	return m.shader
}

// Has reports whether the shader declares a uniform of the name.
func (m *Material) Has(name string) bool {
	for _, u := range m.shader.uniforms {
		if u.Name == name {
			return true
		}
	}
	return false
}

// SetFloats sets a float-typed uniform from a flat value slice. The
// value count must match the uniform size exactly.
func (m *Material) SetFloats(name string, values ...float32) error {
	buf, ok := m.data[name]
	if !ok {
		return &UniformNotFoundError{Name: name}
	}
	if len(values)*4 != len(buf) {
		return fmt.Errorf("gfx: uniform %q: %w: got %d floats, want %d",
			name, ErrDataSize, len(values), len(buf)/4)
	}
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return nil
}

// SetFloat sets a scalar float uniform.
func (m *Material) SetFloat(name string, v float32) error {
	return m.SetFloats(name, v)
}

// SetVec2 sets a two-component float uniform.
func (m *Material) SetVec2(name string, x, y float32) error {
	return m.SetFloats(name, x, y)
}

// SetVec4 sets a four-component float uniform.
func (m *Material) SetVec4(name string, x, y, z, w float32) error {
	return m.SetFloats(name, x, y, z, w)
}

// SetMat4x4 sets a 4x4 matrix uniform from column-major values.
func (m *Material) SetMat4x4(name string, values [16]float32) error {
	return m.SetFloats(name, values[:]...)
}

// SetTexture binds a texture to a sampled-texture uniform. A nil
// texture unbinds.
func (m *Material) SetTexture(name string, tex *Texture) error {
	if !m.Has(name) {
		return &UniformNotFoundError{Name: name}
	}
	if tex == nil {
		delete(m.textures, name)
		return nil
	}
	m.textures[name] = tex
	return nil
}

// SetSampler binds sampler state to a sampler uniform.
func (m *Material) SetSampler(name string, s Sampler) error {
	if !m.Has(name) {
		return &UniformNotFoundError{Name: name}
	}
	m.samplers[name] = s
	return nil
}

// apply stages all uniform values on the driver ahead of a draw.
func (m *Material) apply(drv Driver) error {
	if m.shader.disposed {
		panic(ErrResourceDisposed)
	}
	id := m.shader.id
	for name, buf := range m.data {
		if err := drv.SetUniform(id, name, buf); err != nil {
			return err
		}
	}
	for name, tex := range m.textures {
		if tex.disposed {
			panic(ErrResourceDisposed)
		}
		if err := drv.SetShaderTexture(id, name, tex.id); err != nil {
			return err
		}
	}
	for name, s := range m.samplers {
		if err := drv.SetShaderSampler(id, name, s); err != nil {
			return err
		}
	}
	return nil
}
