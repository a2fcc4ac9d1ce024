// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gfx defines the graphics-device boundary for the batch library.
//
// # Overview
//
// gfx is a thin, explicit abstraction over a native GPU API. It owns no
// platform code itself: all GPU work is delegated to a [Driver], which a
// backend package (or the host application) implements. The package provides:
//
//   - Resource types with deterministic lifetime: [Texture], [Target],
//     [Buffer], [Shader]. Every resource is created through a [Device],
//     released with an explicit Destroy call, and fails closed with
//     [ErrResourceDisposed] when used after release. There are no
//     finalizers.
//   - Render state: [BlendMode] (full factor/op/mask taxonomy plus a
//     constant blend color), [Sampler], [Cull], [Compare].
//   - Command submission: [DrawCommand] and [ClearCommand], the only
//     points where the driver boundary is crossed for rendering.
//   - Shader reflection: [UniformInfo] describes the uniform slots a
//     compiled shader exposes, and [Material] holds concrete values for
//     them.
//
// Texture formats are the shared ecosystem formats from
// github.com/gogpu/gputypes, so textures can flow between this package and
// other GoGPU components without conversion.
//
// # Drivers
//
// The reference driver lives in gfx/wgpudriver and runs on gogpu/wgpu.
// Tests use an in-memory driver; any implementation of the [Driver]
// interface works.
package gfx
