// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/gogpu/batch/gfx"
)

// drawBatch is one run of geometry sharing a render state tuple. The
// batcher opens a new batch only when the tuple changes, so the batch
// list is already minimal for the emission order.
type drawBatch struct {
	texture  *gfx.Texture
	sampler  gfx.Sampler
	material *gfx.Material // nil means the built-in batch material
	blend    gfx.BlendMode
	scissor  gfx.RectI
	hasScissor bool
	layer    int

	// offset and count locate the batch's indices in the mesh.
	offset int
	count  int

	// seq preserves emission order across the layer sort.
	seq int
}

// stateEqual reports whether two batches can share one draw call.
func (b *drawBatch) stateEqual(o *drawBatch) bool {
	return b.texture == o.texture &&
		b.sampler == o.sampler &&
		b.material == o.material &&
		b.blend == o.blend &&
		b.hasScissor == o.hasScissor &&
		(!b.hasScissor || b.scissor == o.scissor) &&
		b.layer == o.layer
}

// Batcher accumulates 2D geometry and compiles it into draw calls.
// A Batcher is not safe for concurrent use.
type Batcher struct {
	device *gfx.Device
	mesh   *Mesh

	defaultMaterial *gfx.Material

	matrix      Matrix
	matrixStack []Matrix

	scissor      gfx.RectI
	hasScissor   bool
	scissorStack []scissorState

	layer      int
	layerStack []int

	blend      gfx.BlendMode
	blendStack []gfx.BlendMode

	sampler      gfx.Sampler
	samplerStack []gfx.Sampler

	material      *gfx.Material
	materialStack []*gfx.Material

	batches []drawBatch
	seq     int

	disposed bool
}

type scissorState struct {
	rect gfx.RectI
	has  bool
}

// NewBatcher creates a batcher on the device, compiling the built-in
// batch shader on first use.
func NewBatcher(device *gfx.Device) (*Batcher, error) {
	shader, err := device.BatchShader()
	if err != nil {
		return nil, err
	}
	b := &Batcher{
		device:          device,
		mesh:            NewMesh(device),
		defaultMaterial: gfx.NewMaterial(shader),
		matrix:          Identity(),
		blend:           gfx.BlendPremultiply,
		sampler:         gfx.NewSampler(gfx.FilterLinear, gfx.WrapClampToEdge),
	}
	return b, nil
}

// Device returns the underlying device.
func (b *Batcher) Device() *gfx.Device {
	return b.device
}

// Clear drops all accumulated geometry and batches, retaining buffer
// capacity. State stacks are not reset; Clear on an empty batcher is a
// no-op, so clearing twice equals clearing once.
func (b *Batcher) Clear() {
	b.checkAlive()
	b.mesh.Clear()
	b.batches = b.batches[:0]
	b.seq = 0
}

// BatchCount returns the number of pending draw batches before
// compile-time merging. Mostly useful in tests and stats overlays.
func (b *Batcher) BatchCount() int {
	n := 0
	for i := range b.batches {
		if b.batches[i].count > 0 {
			n++
		}
	}
	return n
}

func (b *Batcher) checkAlive() {
	if b.disposed {
		panic(ErrResourceDisposed)
	}
}

// current returns the batch geometry must be appended to, opening a new
// one when the required state differs from the open batch. Texture may
// be nil for untextured geometry, which samples the shared white texel.
func (b *Batcher) current(texture *gfx.Texture, material *gfx.Material) *drawBatch {
	want := drawBatch{
		texture:    texture,
		sampler:    b.sampler,
		material:   material,
		blend:      b.blend,
		scissor:    b.scissor,
		hasScissor: b.hasScissor,
		layer:      b.layer,
	}
	if n := len(b.batches); n > 0 {
		open := &b.batches[n-1]
		if open.count == 0 {
			// Nothing emitted since the last state change, reuse.
			want.offset = open.offset
			want.seq = open.seq
			*open = want
			return open
		}
		if open.stateEqual(&want) {
			return open
		}
	}
	want.offset = b.mesh.IndexCount()
	want.seq = b.seq
	b.seq++
	b.batches = append(b.batches, want)
	return &b.batches[len(b.batches)-1]
}

// pushQuad appends a transformed quad to the batch for texture.
// Vertices arrive in clockwise order starting top-left; two triangles
// are emitted.
func (b *Batcher) pushQuad(batch *drawBatch, v0, v1, v2, v3 Vertex) {
	b.mesh.Reserve(4, 6)
	i0 := b.mesh.AppendVertex(v0)
	i1 := b.mesh.AppendVertex(v1)
	i2 := b.mesh.AppendVertex(v2)
	i3 := b.mesh.AppendVertex(v3)
	b.mesh.AppendIndices(i0, i1, i2, i0, i2, i3)
	batch.count += 6
}

// pushTriangle appends one transformed triangle.
func (b *Batcher) pushTriangle(batch *drawBatch, v0, v1, v2 Vertex) {
	b.mesh.Reserve(3, 3)
	i0 := b.mesh.AppendVertex(v0)
	i1 := b.mesh.AppendVertex(v1)
	i2 := b.mesh.AppendVertex(v2)
	b.mesh.AppendIndices(i0, i1, i2)
	batch.count += 3
}

// vert builds a vertex at the matrix-transformed position.
func (b *Batcher) vert(x, y, u, v float32, col Color, mode [3]uint8) Vertex {
	p := b.matrix.TransformPoint(Point{X: x, Y: y})
	return Vertex{
		X: p.X, Y: p.Y,
		U: u, V: v,
		Col:  col,
		Mult: mode[0], Wash: mode[1], Fill: mode[2],
	}
}

// Render compiles the accumulated batches, uploads dirty geometry and
// submits the draw calls to target, or the backbuffer when target is
// nil. The accumulated geometry stays valid, so a static scene can be
// rendered again without re-emitting.
func (b *Batcher) Render(target *gfx.Target) error {
	b.checkAlive()

	compiled := b.compile()
	if len(compiled) == 0 {
		return nil
	}

	// Upload strictly before any draw referencing the mesh.
	if err := b.mesh.Upload(); err != nil {
		return fmt.Errorf("batch: upload: %w", err)
	}

	w, h := b.device.SurfaceSize()
	if target != nil {
		w, h = target.Width(), target.Height()
	}
	projection := orthoMatrix(float32(w), float32(h))

	white, err := b.device.White()
	if err != nil {
		return err
	}

	for i := range compiled {
		batch := &compiled[i]
		material := batch.material
		if material == nil {
			material = b.defaultMaterial
		}
		if err := material.SetMat4x4("u_matrix", projection); err != nil {
			return err
		}
		texture := batch.texture
		if texture == nil {
			texture = white
		}
		if err := material.SetTexture("u_texture", texture); err != nil {
			return err
		}
		if err := material.SetSampler("u_sampler", batch.sampler); err != nil {
			return err
		}
		cmd := gfx.DrawCommand{
			Target:       target,
			Material:     material,
			VertexBuffer: b.mesh.vertexBuffer(),
			IndexBuffer:  b.mesh.indexBuffer(),
			Format:       VertexFormat(),
			IndexFormat:  gfx.IndexUint32,
			IndexStart:   batch.offset,
			IndexCount:   batch.count,
			Blend:        batch.blend,
			Scissor:      batch.scissor,
			HasScissor:   batch.hasScissor,
		}
		if err := b.device.Submit(cmd); err != nil {
			return fmt.Errorf("batch: draw: %w", err)
		}
	}

	Logger().Debug("batch: rendered",
		slog.Int("draws", len(compiled)),
		slog.Int("indices", b.mesh.IndexCount()))
	return nil
}

// compile produces the final draw list: empty batches dropped, batches
// sorted by layer with emission order preserved within a layer, the
// index stream reordered to match, and adjacent same-state batches
// merged. When every batch shares one layer the geometry is already in
// draw order and compile only filters and returns.
func (b *Batcher) compile() []drawBatch {
	live := make([]drawBatch, 0, len(b.batches))
	sameLayer := true
	for i := range b.batches {
		if b.batches[i].count == 0 {
			continue
		}
		if len(live) > 0 && b.batches[i].layer != live[0].layer {
			sameLayer = false
		}
		live = append(live, b.batches[i])
	}
	if len(live) == 0 {
		return nil
	}
	if sameLayer {
		return live
	}

	// Higher layers draw later. The sort is stable on emission order.
	sort.SliceStable(live, func(i, j int) bool {
		if live[i].layer != live[j].layer {
			return live[i].layer < live[j].layer
		}
		return live[i].seq < live[j].seq
	})

	// Rewrite the index stream into sorted batch order so every batch
	// occupies a contiguous range again. Vertices are untouched.
	total := b.mesh.IndexCount()
	reordered := make([]uint32, 0, total)
	for i := range live {
		batch := &live[i]
		lo := batch.offset
		batch.offset = len(reordered)
		reordered = append(reordered, b.mesh.indices[lo:lo+batch.count]...)
	}
	b.mesh.setIndexOrder(reordered)

	// Sorting can make batches that share state adjacent; merge them
	// so the draw count stays minimal.
	merged := make([]drawBatch, 0, len(live))
	merged = append(merged, live[0])
	for i := 1; i < len(live); i++ {
		last := &merged[len(merged)-1]
		if last.stateEqual(&live[i]) && last.offset+last.count == live[i].offset {
			last.count += live[i].count
			continue
		}
		merged = append(merged, live[i])
	}

	// The emission list now describes stale index positions; replace
	// it with the compiled list so a second Render stays consistent.
	b.batches = append(b.batches[:0], merged...)
	return merged
}

// Release frees the batcher's GPU buffers. Further use panics with
// ErrResourceDisposed.
func (b *Batcher) Release() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.mesh.Release()
}

// orthoMatrix builds the column-major orthographic projection mapping
// pixel space (origin top-left, y down) to clip space.
func orthoMatrix(w, h float32) [16]float32 {
	return [16]float32{
		2 / w, 0, 0, 0,
		0, -2 / h, 0, 0,
		0, 0, 1, 0,
		-1, 1, 0, 1,
	}
}
