// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package batch is an immediate-mode 2D sprite and shape batcher.
//
// A Batcher accumulates textured quads, filled shapes and text into a
// growing vertex and index mesh, tracking the render state each run of
// geometry needs. Render compiles the accumulated geometry into the
// minimal sequence of draw calls for the emitted state changes, sorts
// draws by layer while preserving emission order within a layer,
// uploads the dirty buffer ranges and submits through a gfx.Device.
//
// Typical frame:
//
//	b.Clear()
//	b.Rect(batch.Rect{W: 64, H: 64}, batch.White)
//	b.Image(tex, 100, 100, batch.White)
//	b.Text(face, "score", 10, 10, batch.White)
//	if err := b.Render(nil); err != nil { ... }
//
// Matrix, scissor and layer state are stacks: Push/Pop pairs scope
// state to a subtree of the scene, and popping past the base panics
// with ErrStackUnderflow. All coordinates are float32.
package batch
