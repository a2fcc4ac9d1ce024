// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpudriver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gogpu/batch/gfx"
)

// blockMember is one field of a uniform buffer block.
type blockMember struct {
	name     string
	kind     gfx.UniformType
	arrayLen int
	offset   int
	size     int
}

// uniformBlock is a var<uniform> declaration with its resolved layout.
type uniformBlock struct {
	binding  uint32
	vertex   bool
	fragment bool
	members  []blockMember
	size     int
}

// resourceBinding is a texture or sampler declaration.
type resourceBinding struct {
	name    string
	binding uint32
}

// shaderReflection is the merged binding interface of a vertex and a
// fragment WGSL source.
type shaderReflection struct {
	blocks   []uniformBlock
	textures []resourceBinding
	samplers []resourceBinding
}

var (
	structRe = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	memberRe = regexp.MustCompile(`(\w+)\s*:\s*(array<(?:[^<>]|<[^<>]*>)*>|[^,;]+)`)
	varRe    = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var\s*(<uniform>)?\s*(\w+)\s*:\s*([^;]+);`)
)

// parseUniformType resolves a WGSL type expression to a uniform type
// and array length. Returns false for types that are not bindable
// uniforms (structs are handled by the caller).
func parseUniformType(expr string) (gfx.UniformType, int, bool) {
	expr = strings.TrimSpace(expr)
	arrayLen := 1
	if strings.HasPrefix(expr, "array<") {
		inner := strings.TrimSuffix(strings.TrimPrefix(expr, "array<"), ">")
		if i := strings.LastIndex(inner, ","); i >= 0 {
			n, err := strconv.Atoi(strings.TrimSpace(inner[i+1:]))
			if err != nil {
				return 0, 0, false
			}
			arrayLen = n
			expr = strings.TrimSpace(inner[:i])
		} else {
			return 0, 0, false
		}
	}
	switch expr {
	case "f32":
		return gfx.UniformFloat, arrayLen, true
	case "vec2<f32>", "vec2f":
		return gfx.UniformFloat2, arrayLen, true
	case "vec3<f32>", "vec3f":
		return gfx.UniformFloat3, arrayLen, true
	case "vec4<f32>", "vec4f":
		return gfx.UniformFloat4, arrayLen, true
	case "mat4x4<f32>", "mat4x4f":
		return gfx.UniformMat4x4, arrayLen, true
	case "texture_2d<f32>":
		return gfx.UniformTexture2D, arrayLen, true
	case "sampler":
		return gfx.UniformSampler2D, arrayLen, true
	default:
		return 0, 0, false
	}
}

// uniformAlign returns the WGSL uniform address space alignment of a
// member type.
func uniformAlign(kind gfx.UniformType) int {
	switch kind {
	case gfx.UniformFloat:
		return 4
	case gfx.UniformFloat2:
		return 8
	default:
		return 16
	}
}

// uniformByteSize returns the in-buffer size of one member element.
func uniformByteSize(kind gfx.UniformType) int {
	return kind.Size()
}

func alignUp(n, align int) int {
	return (n + align - 1) / align * align
}

// parseStructs collects struct definitions keyed by name.
func parseStructs(source string) map[string][]blockMember {
	out := make(map[string][]blockMember)
	for _, m := range structRe.FindAllStringSubmatch(source, -1) {
		name, body := m[1], m[2]
		var members []blockMember
		offset := 0
		ok := true
		for _, mm := range memberRe.FindAllStringSubmatch(body, -1) {
			kind, arrayLen, valid := parseUniformType(mm[2])
			if !valid {
				ok = false
				break
			}
			offset = alignUp(offset, uniformAlign(kind))
			size := uniformByteSize(kind) * arrayLen
			members = append(members, blockMember{
				name:     mm[1],
				kind:     kind,
				arrayLen: arrayLen,
				offset:   offset,
				size:     size,
			})
			offset += size
		}
		if ok && len(members) > 0 {
			out[name] = members
		}
	}
	return out
}

// reflectSource scans one WGSL source for group-0 bindings and merges
// them into the reflection. vertexStage marks which stage the source
// belongs to.
func (r *shaderReflection) reflectSource(source string, vertexStage bool) error {
	structs := parseStructs(source)
	for _, m := range varRe.FindAllStringSubmatch(source, -1) {
		group, _ := strconv.Atoi(m[1])
		if group != 0 {
			return fmt.Errorf("wgpudriver: bind group %d not supported, all bindings must use group 0", group)
		}
		binding64, _ := strconv.Atoi(m[2])
		binding := uint32(binding64)
		isUniform := m[3] != ""
		name := m[4]
		typeExpr := strings.TrimSpace(m[5])

		if isUniform {
			var members []blockMember
			if structMembers, ok := structs[typeExpr]; ok {
				members = structMembers
			} else if kind, arrayLen, ok := parseUniformType(typeExpr); ok {
				members = []blockMember{{name: name, kind: kind, arrayLen: arrayLen, size: uniformByteSize(kind) * arrayLen}}
			} else {
				return fmt.Errorf("wgpudriver: cannot reflect uniform %q of type %q", name, typeExpr)
			}
			merged := false
			for i := range r.blocks {
				if r.blocks[i].binding == binding {
					r.blocks[i].vertex = r.blocks[i].vertex || vertexStage
					r.blocks[i].fragment = r.blocks[i].fragment || !vertexStage
					merged = true
					break
				}
			}
			if !merged {
				size := 0
				for _, mem := range members {
					if end := mem.offset + mem.size; end > size {
						size = end
					}
				}
				r.blocks = append(r.blocks, uniformBlock{
					binding:  binding,
					vertex:   vertexStage,
					fragment: !vertexStage,
					members:  members,
					size:     alignUp(size, 16),
				})
			}
			continue
		}

		kind, _, ok := parseUniformType(typeExpr)
		if !ok {
			return fmt.Errorf("wgpudriver: cannot reflect binding %q of type %q", name, typeExpr)
		}
		switch kind {
		case gfx.UniformTexture2D:
			if !r.hasTexture(binding) {
				r.textures = append(r.textures, resourceBinding{name: name, binding: binding})
			}
		case gfx.UniformSampler2D:
			if !r.hasSampler(binding) {
				r.samplers = append(r.samplers, resourceBinding{name: name, binding: binding})
			}
		default:
			return fmt.Errorf("wgpudriver: binding %q must be a texture or sampler, got type %q", name, typeExpr)
		}
	}
	return nil
}

func (r *shaderReflection) hasTexture(binding uint32) bool {
	for _, t := range r.textures {
		if t.binding == binding {
			return true
		}
	}
	return false
}

func (r *shaderReflection) hasSampler(binding uint32) bool {
	for _, s := range r.samplers {
		if s.binding == binding {
			return true
		}
	}
	return false
}

// reflectShader parses both shader stages and returns the merged
// binding interface plus the flattened uniform list reported to gfx.
func reflectShader(vertexSource, fragmentSource string) (*shaderReflection, []gfx.UniformInfo, error) {
	r := &shaderReflection{}
	if err := r.reflectSource(vertexSource, true); err != nil {
		return nil, nil, err
	}
	if err := r.reflectSource(fragmentSource, false); err != nil {
		return nil, nil, err
	}

	var infos []gfx.UniformInfo
	for _, block := range r.blocks {
		for _, mem := range block.members {
			infos = append(infos, gfx.UniformInfo{
				Name:        mem.name,
				Type:        mem.kind,
				ArrayLength: mem.arrayLen,
			})
		}
	}
	for _, t := range r.textures {
		infos = append(infos, gfx.UniformInfo{Name: t.name, Type: gfx.UniformTexture2D, ArrayLength: 1})
	}
	for _, s := range r.samplers {
		infos = append(infos, gfx.UniformInfo{Name: s.name, Type: gfx.UniformSampler2D, ArrayLength: 1})
	}
	return r, infos, nil
}
