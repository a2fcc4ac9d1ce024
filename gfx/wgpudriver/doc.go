// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpudriver implements gfx.Driver on top of gogpu/wgpu's
// hardware abstraction layer.
//
// The driver compiles WGSL shaders to SPIR-V with gogpu/naga, caches
// render pipelines per (shader, blend, target format, cull, vertex
// layout) state, and records one render pass per draw or clear call.
// Texture readback goes through a staging buffer with 256-byte row
// alignment as required by the HAL copy rules.
//
// All methods are safe for concurrent use.
package wgpudriver
