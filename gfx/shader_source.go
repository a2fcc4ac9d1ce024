// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

// Built-in WGSL shader sources. The batch vertex stage is shared by the
// sprite and MSDF fragment stages so both pipelines use the same vertex
// layout and matrix uniform.

// batchVertexSource transforms positions by u_matrix and passes through
// texture coordinates, color and per-vertex paint weights.
const batchVertexSource = `
struct Uniforms {
    u_matrix: mat4x4<f32>,
}

@group(0) @binding(0) var<uniform> uniforms: Uniforms;

struct VertexInput {
    @location(0) position: vec2<f32>,
    @location(1) tex: vec2<f32>,
    @location(2) color: vec4<f32>,
    @location(3) mode: vec4<f32>,
}

struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) tex: vec2<f32>,
    @location(1) color: vec4<f32>,
    @location(2) mode: vec4<f32>,
}

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.position = uniforms.u_matrix * vec4<f32>(in.position, 0.0, 1.0);
    out.tex = in.tex;
    out.color = in.color;
    out.mode = in.mode;
    return out;
}
`

// batchFragmentSource blends the three paint terms by the per-vertex
// mode weights so textured, washed and filled geometry draw in one
// pipeline:
//
//	mode.x  multiply: texture * color
//	mode.y  wash:     texture alpha * color
//	mode.z  fill:     color only
const batchFragmentSource = `
@group(0) @binding(1) var u_texture: texture_2d<f32>;
@group(0) @binding(2) var u_sampler: sampler;

@fragment
fn fs_main(
    @location(0) tex: vec2<f32>,
    @location(1) color: vec4<f32>,
    @location(2) mode: vec4<f32>,
) -> @location(0) vec4<f32> {
    let sampled = textureSample(u_texture, u_sampler, tex);
    return sampled * color * mode.x
        + sampled.a * color * mode.y
        + color * mode.z;
}
`

// msdfFragmentSource reconstructs glyph coverage from a multi-channel
// signed distance field. u_range.x is the field's distance range in
// texels; screen-space range is derived from the sampling derivatives
// so glyphs stay sharp at any scale.
const msdfFragmentSource = `
@group(0) @binding(1) var u_texture: texture_2d<f32>;
@group(0) @binding(2) var u_sampler: sampler;

struct MSDFUniforms {
    u_range: vec4<f32>,
}

@group(0) @binding(3) var<uniform> msdf: MSDFUniforms;

fn median3(v: vec3<f32>) -> f32 {
    return max(min(v.r, v.g), min(max(v.r, v.g), v.b));
}

@fragment
fn fs_main(
    @location(0) tex: vec2<f32>,
    @location(1) color: vec4<f32>,
    @location(2) mode: vec4<f32>,
) -> @location(0) vec4<f32> {
    let sampled = textureSample(u_texture, u_sampler, tex);
    let dims = vec2<f32>(textureDimensions(u_texture));
    let unit_range = vec2<f32>(msdf.u_range.x) / dims;
    let screen_size = vec2<f32>(1.0) / fwidth(tex);
    let px_range = max(0.5 * dot(unit_range, screen_size), 1.0);
    let dist = median3(sampled.rgb) - 0.5;
    let alpha = clamp(dist * px_range + 0.5, 0.0, 1.0);
    return color * alpha;
}
`
