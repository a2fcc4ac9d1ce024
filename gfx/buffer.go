// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

// Buffer is a GPU buffer with a fixed byte capacity. Growing is done by
// the caller creating a larger buffer and releasing the old one, so
// uploads never reallocate behind the batcher's back.
type Buffer struct {
	device   *Device
	id       BufferID
	kind     BufferKind
	stride   int
	capacity int
	disposed bool
}

// ID returns the driver handle for the buffer.
func (b *Buffer) ID() BufferID {
	return b.id
}

// Kind returns what the buffer holds.
func (b *Buffer) Kind() BufferKind {
	return b.kind
}

// Capacity returns the buffer byte capacity.
func (b *Buffer) Capacity() int {
	return b.capacity
}

// Upload writes data at the given byte offset. The range must fit the
// capacity; Upload never grows the buffer.
func (b *Buffer) Upload(byteOffset int, data []byte) error {
	if b.disposed {
		panic(ErrResourceDisposed)
	}
	if byteOffset < 0 || byteOffset+len(data) > b.capacity {
		return ErrDataSize
	}
	return b.device.driver.UploadBufferData(b.id, byteOffset, data)
}

// Release destroys the driver-side buffer. Release is idempotent;
// uploads after Release panic with ErrResourceDisposed.
func (b *Buffer) Release() {
	if b.disposed {
		return
	}
	b.disposed = true
	b.device.driver.DestroyBuffer(b.id)
}
