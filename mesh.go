// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import (
	"encoding/binary"
	"log/slog"

	"github.com/gogpu/batch/gfx"
)

// initial mesh capacities, in elements.
const (
	initialVertexCapacity = 1024
	initialIndexCapacity  = 1536
)

// Mesh is a growable CPU-side vertex and index store with GPU mirrors.
// Appends go to CPU memory; Upload pushes only the ranges written since
// the last upload. Clearing retains capacity so a steady-state frame
// allocates nothing.
type Mesh struct {
	device *gfx.Device

	vertices    []byte // packed, VertexStride each
	vertexCount int
	indices     []uint32

	vbuf *gfx.Buffer
	ibuf *gfx.Buffer

	// dirty ranges in elements, half-open. lo > hi means clean.
	vDirtyLo, vDirtyHi int
	iDirtyLo, iDirtyHi int

	disposed bool
}

// NewMesh creates an empty mesh on the device. GPU buffers are created
// on first Upload.
func NewMesh(device *gfx.Device) *Mesh {
	m := &Mesh{device: device}
	m.resetDirty()
	return m
}

func (m *Mesh) resetDirty() {
	m.vDirtyLo, m.vDirtyHi = int(^uint(0)>>1), 0
	m.iDirtyLo, m.iDirtyHi = int(^uint(0)>>1), 0
}

func (m *Mesh) checkAlive() {
	if m.disposed {
		panic(ErrResourceDisposed)
	}
}

// VertexCount returns the number of appended vertices.
func (m *Mesh) VertexCount() int {
	return m.vertexCount
}

// IndexCount returns the number of appended indices.
func (m *Mesh) IndexCount() int {
	return len(m.indices)
}

// Reserve grows CPU capacity so that vcount more vertices and icount
// more indices can be appended without reallocating.
func (m *Mesh) Reserve(vcount, icount int) {
	m.checkAlive()
	needV := (m.vertexCount + vcount) * VertexStride
	if cap(m.vertices) < needV {
		grown := make([]byte, len(m.vertices), growCap(cap(m.vertices), needV, initialVertexCapacity*VertexStride))
		copy(grown, m.vertices)
		m.vertices = grown
	}
	needI := len(m.indices) + icount
	if cap(m.indices) < needI {
		grown := make([]uint32, len(m.indices), growCap(cap(m.indices), needI, initialIndexCapacity))
		copy(grown, m.indices)
		m.indices = grown
	}
}

// growCap doubles from old until need fits, starting at min.
func growCap(old, need, min int) int {
	c := old
	if c < min {
		c = min
	}
	for c < need {
		c *= 2
	}
	return c
}

// AppendVertex appends one vertex and returns its index.
func (m *Mesh) AppendVertex(v Vertex) uint32 {
	m.checkAlive()
	off := m.vertexCount * VertexStride
	if cap(m.vertices) < off+VertexStride {
		m.Reserve(1, 0)
	}
	m.vertices = m.vertices[:off+VertexStride]
	v.put(m.vertices[off:])
	idx := uint32(m.vertexCount)
	m.vertexCount++
	if off/VertexStride < m.vDirtyLo {
		m.vDirtyLo = off / VertexStride
	}
	m.vDirtyHi = m.vertexCount
	return idx
}

// AppendIndices appends indices referring to already appended vertices.
func (m *Mesh) AppendIndices(indices ...uint32) {
	m.checkAlive()
	if len(indices) == 0 {
		return
	}
	if cap(m.indices) < len(m.indices)+len(indices) {
		m.Reserve(0, len(indices))
	}
	lo := len(m.indices)
	m.indices = append(m.indices, indices...)
	if lo < m.iDirtyLo {
		m.iDirtyLo = lo
	}
	m.iDirtyHi = len(m.indices)
}

// Clear empties the mesh, retaining CPU and GPU capacity. Clearing an
// already empty mesh is a no-op.
func (m *Mesh) Clear() {
	m.checkAlive()
	m.vertices = m.vertices[:0]
	m.vertexCount = 0
	m.indices = m.indices[:0]
	m.resetDirty()
}

// setIndexOrder replaces the index stream wholesale, used when draws
// are reordered at compile time. The replacement must have the same
// length as the current stream.
func (m *Mesh) setIndexOrder(indices []uint32) {
	copy(m.indices, indices)
	m.iDirtyLo = 0
	m.iDirtyHi = len(m.indices)
}

// Upload pushes dirty vertex and index ranges to the GPU, creating or
// growing the GPU buffers as needed. A grown buffer is fully
// re-uploaded since its old contents are gone.
func (m *Mesh) Upload() error {
	m.checkAlive()

	fullV, err := m.ensureBuffer(&m.vbuf, gfx.BufferVertex, VertexStride, len(m.vertices))
	if err != nil {
		return err
	}
	if fullV {
		m.vDirtyLo, m.vDirtyHi = 0, m.vertexCount
	}
	if m.vDirtyLo < m.vDirtyHi {
		lo := m.vDirtyLo * VertexStride
		hi := m.vDirtyHi * VertexStride
		if err := m.vbuf.Upload(lo, m.vertices[lo:hi]); err != nil {
			return err
		}
	}

	fullI, err := m.ensureBuffer(&m.ibuf, gfx.BufferIndex, 4, len(m.indices)*4)
	if err != nil {
		return err
	}
	if fullI {
		m.iDirtyLo, m.iDirtyHi = 0, len(m.indices)
	}
	if m.iDirtyLo < m.iDirtyHi {
		packed := make([]byte, (m.iDirtyHi-m.iDirtyLo)*4)
		for i, idx := range m.indices[m.iDirtyLo:m.iDirtyHi] {
			binary.LittleEndian.PutUint32(packed[i*4:], idx)
		}
		if err := m.ibuf.Upload(m.iDirtyLo*4, packed); err != nil {
			return err
		}
	}

	m.resetDirty()
	return nil
}

// ensureBuffer creates or grows *buf to hold byteLen, doubling from the
// old capacity. It reports whether the buffer was (re)created.
func (m *Mesh) ensureBuffer(buf **gfx.Buffer, kind gfx.BufferKind, stride, byteLen int) (created bool, err error) {
	if byteLen == 0 {
		return false, nil
	}
	old := *buf
	if old != nil && old.Capacity() >= byteLen {
		return false, nil
	}
	oldCap := 0
	if old != nil {
		oldCap = old.Capacity()
	}
	newCap := growCap(oldCap, byteLen, initialVertexCapacity*stride)
	var next *gfx.Buffer
	switch kind {
	case gfx.BufferIndex:
		next, err = m.device.NewIndexBuffer(gfx.IndexUint32, newCap/stride)
	default:
		next, err = m.device.NewVertexBuffer(stride, newCap/stride)
	}
	if err != nil {
		return false, err
	}
	if old != nil {
		Logger().Debug("batch: mesh buffer grown",
			slog.String("kind", kind.String()),
			slog.Int("from", oldCap), slog.Int("to", newCap))
		old.Release()
	}
	*buf = next
	return true, nil
}

// vertexBuffer and indexBuffer expose the GPU mirrors after Upload.
func (m *Mesh) vertexBuffer() *gfx.Buffer { return m.vbuf }
func (m *Mesh) indexBuffer() *gfx.Buffer  { return m.ibuf }

// Release frees the GPU buffers. Any further use of the mesh panics
// with ErrResourceDisposed. Release is idempotent.
func (m *Mesh) Release() {
	if m.disposed {
		return
	}
	m.disposed = true
	if m.vbuf != nil {
		m.vbuf.Release()
		m.vbuf = nil
	}
	if m.ibuf != nil {
		m.ibuf.Release()
		m.ibuf = nil
	}
}
